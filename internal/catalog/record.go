// Package catalog holds the reference records shown by refgraph and the
// loaders that read them from YAML or JSON files.
package catalog

import (
	"strconv"
	"strings"
)

// Category groups references for color coding.
type Category string

// Known categories. Any other value is kept as-is and drawn with the
// default color.
const (
	CategoryHapticNav      Category = "haptic-nav"
	CategoryUrbanAccess    Category = "urban-access"
	CategoryEmbodiedTheory Category = "embodied-theory"
)

// Label renders the category as shown in list badges ("HAPTIC NAV").
// Only the first hyphen is replaced.
func (c Category) Label() string {
	return strings.ToUpper(strings.Replace(string(c), "-", " ", 1))
}

// Known reports whether c is one of the predefined categories.
func (c Category) Known() bool {
	switch c {
	case CategoryHapticNav, CategoryUrbanAccess, CategoryEmbodiedTheory:
		return true
	}
	return false
}

// Record is a single reference in the catalog.
type Record struct {
	ID       string   `yaml:"id" json:"id"`
	Year     int      `yaml:"year" json:"year"`
	Title    string   `yaml:"title" json:"title"`
	Authors  string   `yaml:"authors" json:"authors"`
	Category Category `yaml:"category" json:"category"`
	Summary  string   `yaml:"summary" json:"summary"`
	URL      string   `yaml:"url" json:"url"`
	Tags     []string `yaml:"tags" json:"tags"`
}

// ShortLabel is the compact node label: the first word of the author list
// followed by the year without its first two digits ("Ross '02").
func (r Record) ShortLabel() string {
	first := r.Authors
	if i := strings.IndexByte(first, ' '); i >= 0 {
		first = first[:i]
	}
	year := strconv.Itoa(r.Year)
	if len(year) > 2 {
		year = year[2:]
	} else {
		year = ""
	}
	return first + " '" + year
}

// Meta is the secondary tooltip line ("2015 // Manduchi et al.").
func (r Record) Meta() string {
	return strconv.Itoa(r.Year) + " // " + r.Authors
}

// normalizeTags trims tags, drops empties and duplicates, and keeps the
// first-seen order.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
