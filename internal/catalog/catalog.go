// Package catalog exposes the static taxonomies prompts are tagged with
// (categories, tones and sizes) and the directory of third-party AI tools.
//
// The data is embedded at build time and is read-only.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Category is a prompt category.
type Category struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Samples     []string `yaml:"samples" json:"samples"`
}

// Tone is a writing tone.
type Tone struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Size is a target prompt length.
type Size struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	MaxLength   int    `yaml:"max_length" json:"max_length"`
}

// Tool is an entry in the AI tool directory.
type Tool struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Link        string  `yaml:"link" json:"link"`
	Rating      float64 `yaml:"rating" json:"rating"`
	Free        bool    `yaml:"free" json:"free"`
}

// ToolGroup is a set of tools under one heading.
type ToolGroup struct {
	Category string `yaml:"category" json:"category"`
	Tools    []Tool `yaml:"tools" json:"tools"`
}

// Catalog is the full set of reference data.
type Catalog struct {
	Categories []Category  `yaml:"categories" json:"categories"`
	Tones      []Tone      `yaml:"tones" json:"tones"`
	Sizes      []Size      `yaml:"sizes" json:"sizes"`
	Tools      []ToolGroup `yaml:"tools" json:"tools"`
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Default returns the embedded catalog. It panics if the embedded data is
// malformed, which is a build defect.
func Default() *Catalog {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(catalogYAML)
	})
	if loadErr != nil {
		panic(fmt.Sprintf("catalog: embedded data is invalid: %v", loadErr))
	}
	return loaded
}

// Parse decodes catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Categories) == 0 || len(c.Tones) == 0 || len(c.Sizes) == 0 {
		return nil, fmt.Errorf("catalog must define categories, tones and sizes")
	}
	return &c, nil
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (Category, bool) {
	for _, v := range c.Categories {
		if v.ID == id {
			return v, true
		}
	}
	return Category{}, false
}

// Tone looks up a tone by id.
func (c *Catalog) Tone(id string) (Tone, bool) {
	for _, v := range c.Tones {
		if v.ID == id {
			return v, true
		}
	}
	return Tone{}, false
}

// Size looks up a size by id.
func (c *Catalog) Size(id string) (Size, bool) {
	for _, v := range c.Sizes {
		if v.ID == id {
			return v, true
		}
	}
	return Size{}, false
}

// IsKnownCategory reports whether id names a category.
func (c *Catalog) IsKnownCategory(id string) bool {
	_, ok := c.Category(id)
	return ok
}

// IsKnownTone reports whether id names a tone.
func (c *Catalog) IsKnownTone(id string) bool {
	_, ok := c.Tone(id)
	return ok
}

// IsKnownSize reports whether id names a size.
func (c *Catalog) IsKnownSize(id string) bool {
	_, ok := c.Size(id)
	return ok
}

// UnknownTags returns the tags among category, tone and size that do not
// reference a catalog entry, as "field=value" strings.
func (c *Catalog) UnknownTags(category, tone, size string) []string {
	var out []string
	if category != "" && !c.IsKnownCategory(category) {
		out = append(out, "category="+category)
	}
	if tone != "" && !c.IsKnownTone(tone) {
		out = append(out, "tone="+tone)
	}
	if size != "" && !c.IsKnownSize(size) {
		out = append(out, "size="+size)
	}
	return out
}

// ToolCount returns the number of tools across all groups.
func (c *Catalog) ToolCount() int {
	n := 0
	for _, g := range c.Tools {
		n += len(g.Tools)
	}
	return n
}
