package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jackzampolin/promptshelf/internal/prompts"
)

// Layout for A4 portrait with the origin in the upper left corner.
const (
	pdfMarginX     = 50
	pdfMarginTop   = 60
	pdfLineHeight  = 16
	pdfLinesPage   = 45
	pdfWrapColumns = 90
	pdfFontSize    = 11
	pdfTitleSize   = 16
)

// pdfcpu JSON page description.
type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type pdfText struct {
	Value string  `json:"value"`
	Pos   [2]int  `json:"pos"`
	Font  pdfFont `json:"font"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfDescription struct {
	Paper  string             `json:"paper"`
	Origin string             `json:"origin"`
	Pages  map[string]pdfPage `json:"pages"`
}

type pdfLine struct {
	text string
	size int
}

func renderPDF(p prompts.Prompt) ([]byte, error) {
	desc, err := json.Marshal(pdfLayout(p))
	if err != nil {
		return nil, fmt.Errorf("failed to build pdf description: %w", err)
	}

	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &out, nil); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}
	return out.Bytes(), nil
}

func pdfLayout(p prompts.Prompt) pdfDescription {
	header := Header(p)
	lines := []pdfLine{{text: header[0], size: pdfTitleSize}}
	for _, h := range header[1:] {
		lines = append(lines, pdfLine{text: h, size: pdfFontSize})
	}
	lines = append(lines, pdfLine{text: "", size: pdfFontSize})
	for _, l := range wrap(p.Content, pdfWrapColumns) {
		lines = append(lines, pdfLine{text: l, size: pdfFontSize})
	}

	desc := pdfDescription{Paper: "A4P", Origin: "UpperLeft", Pages: map[string]pdfPage{}}
	for i := 0; i < len(lines); i += pdfLinesPage {
		end := min(i+pdfLinesPage, len(lines))
		var page pdfPage
		for j, l := range lines[i:end] {
			if l.text == "" {
				continue
			}
			page.Content.Text = append(page.Content.Text, pdfText{
				Value: l.text,
				Pos:   [2]int{pdfMarginX, pdfMarginTop + j*pdfLineHeight},
				Font:  pdfFont{Name: "Helvetica", Size: l.size},
			})
		}
		desc.Pages[strconv.Itoa(i/pdfLinesPage+1)] = page
	}
	return desc
}

// wrap splits s into lines of at most width characters, breaking on spaces
// where possible and keeping existing line breaks.
func wrap(s string, width int) []string {
	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for len([]rune(w)) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				r := []rune(w)
				out = append(out, string(r[:width]))
				w = string(r[width:])
			}
			switch {
			case line == "":
				line = w
			case len([]rune(line))+1+len([]rune(w)) <= width:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
