package prompts

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// FilterAll disables a category, tone or size filter.
const FilterAll = "all"

// SortKey selects the ordering of query results.
type SortKey string

const (
	SortNewest   SortKey = "newest"
	SortOldest   SortKey = "oldest"
	SortLongest  SortKey = "longest"
	SortShortest SortKey = "shortest"
	SortFavorite SortKey = "favorite"
)

// SortKeys lists the recognized sort keys.
var SortKeys = []SortKey{SortNewest, SortOldest, SortLongest, SortShortest, SortFavorite}

// ParseSortKey validates s. An empty string means newest.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNewest, nil
	}
	for _, k := range SortKeys {
		if string(k) == strings.ToLower(s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Filter holds the query parameters. Empty fields and FilterAll match everything.
type Filter struct {
	Search   string  `json:"search,omitempty"`
	Category string  `json:"category,omitempty"`
	Tone     string  `json:"tone,omitempty"`
	Size     string  `json:"size,omitempty"`
	Sort     SortKey `json:"sort,omitempty"`
}

// Match reports whether p satisfies every active predicate of f.
func (f Filter) Match(p Prompt) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Content), term) &&
			(p.Title == "" || !strings.Contains(strings.ToLower(p.Title), term)) {
			return false
		}
	}
	return tagMatches(f.Category, p.Category) &&
		tagMatches(f.Tone, p.Tone) &&
		tagMatches(f.Size, p.Size)
}

func tagMatches(want, got string) bool {
	return want == "" || want == FilterAll || want == got
}

// Query filters prompts by f and orders the result by f.Sort. Sorting is
// stable, and an unrecognized sort key keeps the input order. The input
// slices are not modified.
func Query(prompts, favorites []Prompt, f Filter) []Prompt {
	out := make([]Prompt, 0, len(prompts))
	for _, p := range prompts {
		if f.Match(p) {
			out = append(out, p)
		}
	}

	switch f.Sort {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	case SortLongest:
		sort.SliceStable(out, func(i, j int) bool { return contentLen(out[i]) > contentLen(out[j]) })
	case SortShortest:
		sort.SliceStable(out, func(i, j int) bool { return contentLen(out[i]) < contentLen(out[j]) })
	case SortFavorite:
		fav := make(map[string]bool, len(favorites))
		for _, p := range favorites {
			fav[p.ID] = true
		}
		sort.SliceStable(out, func(i, j int) bool { return fav[out[i].ID] && !fav[out[j].ID] })
	}
	return out
}

func contentLen(p Prompt) int {
	return utf8.RuneCountInString(p.Content)
}

// Stats summarizes a library for the home view.
type Stats struct {
	Total      int            `json:"total"`
	Favorites  int            `json:"favorites"`
	ByCategory map[string]int `json:"by_category"`
	ByTone     map[string]int `json:"by_tone"`
	BySize     map[string]int `json:"by_size"`
}

// ComputeStats counts prompts per category, tone and size.
func ComputeStats(prompts, favorites []Prompt) Stats {
	s := Stats{
		Total:      len(prompts),
		Favorites:  len(favorites),
		ByCategory: map[string]int{},
		ByTone:     map[string]int{},
		BySize:     map[string]int{},
	}
	for _, p := range prompts {
		s.ByCategory[p.Category]++
		s.ByTone[p.Tone]++
		s.BySize[p.Size]++
	}
	return s
}
