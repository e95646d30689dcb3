package ai

import (
	"regexp"
	"strings"
)

// GeneratedItem is one structured entry pulled from free-form model output
type GeneratedItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ItemParser extracts structured items from free-form completion text.
// Parsing is best-effort: when no structure is detected, implementations
// return a single raw-text pseudo-item and structured=false so callers can
// still show something useful. Kept behind an interface so it can later be
// swapped for structured-output prompting without touching callers.
type ItemParser interface {
	Parse(raw string) (items []GeneratedItem, structured bool)
}

// Matches numbered entries like:
//
//	1. **Widget** - does things
//	2) Widget: does things
//	3. Widget
var numberedItemRe = regexp.MustCompile(`(?m)^\s*\d+[.)]\s*(?:\*\*)?([^:\n*-][^:\n*]*?)(?:\*\*)?\s*(?:[-:\x{2013}\x{2014}]\s*(.*))?$`)

// numberedListParser handles the "1. Name - description" shape both the
// project-ideas and startup-names prompts tend to produce.
type numberedListParser struct {
	fallbackName string
}

func NewProjectIdeasParser() ItemParser { return &numberedListParser{fallbackName: "Ideas"} }
func NewStartupNamesParser() ItemParser { return &numberedListParser{fallbackName: "Suggestions"} }

func (p *numberedListParser) Parse(raw string) ([]GeneratedItem, bool) {
	matches := numberedItemRe.FindAllStringSubmatch(raw, -1)

	var items []GeneratedItem
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		items = append(items, GeneratedItem{
			Name:        name,
			Description: strings.TrimSpace(m[2]),
		})
	}
	if len(items) > 0 {
		return items, true
	}

	// No structure detected; hand the whole response back as one item
	return []GeneratedItem{{
		Name:        p.fallbackName,
		Description: strings.TrimSpace(raw),
	}}, false
}
