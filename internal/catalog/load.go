package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is a catalog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrMissingID is returned when a record has no id.
	ErrMissingID = errors.New("record has no id")
	// ErrDuplicateID is returned when two records share an id.
	ErrDuplicateID = errors.New("duplicate record id")
	// ErrUnknownFormat is returned for unsupported file extensions.
	ErrUnknownFormat = errors.New("unknown catalog format")
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// rawRecord is the on-disk shape. "type" is accepted as an alias for
// "category".
type rawRecord struct {
	ID       string   `yaml:"id" json:"id"`
	Year     int      `yaml:"year" json:"year"`
	Title    string   `yaml:"title" json:"title"`
	Authors  string   `yaml:"authors" json:"authors"`
	Type     string   `yaml:"type" json:"type"`
	Category string   `yaml:"category" json:"category"`
	Summary  string   `yaml:"summary" json:"summary"`
	URL      string   `yaml:"url" json:"url"`
	Tags     []string `yaml:"tags" json:"tags"`
}

type document struct {
	References []rawRecord `yaml:"references" json:"references"`
}

func (r rawRecord) record() Record {
	category := r.Category
	if category == "" {
		category = r.Type
	}
	return Record{
		ID:       strings.TrimSpace(r.ID),
		Year:     r.Year,
		Title:    r.Title,
		Authors:  r.Authors,
		Category: Category(category),
		Summary:  r.Summary,
		URL:      strings.TrimSpace(r.URL),
		Tags:     normalizeTags(r.Tags),
	}
}

// Default returns the built-in catalog. Each call returns a fresh slice.
func Default() []Record {
	records, err := Parse(defaultCatalog, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return records
}

// Load reads a catalog file. An empty path yields the built-in catalog.
func Load(path string) ([]Record, error) {
	if path == "" {
		return Default(), nil
	}

	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	records, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// FormatFor infers the encoding from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (want .yaml, .yml or .json)", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Parse decodes a catalog document. The document is either a bare list of
// records or a mapping with a "references" list.
func Parse(data []byte, format Format) ([]Record, error) {
	var raws []rawRecord
	var err error

	switch format {
	case FormatYAML:
		raws, err = parseYAML(data)
	case FormatJSON:
		raws, err = parseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, raw.record())
	}
	if err := Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}

func parseYAML(data []byte) ([]rawRecord, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, nil
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.SequenceNode:
		var raws []rawRecord
		if err := node.Decode(&raws); err != nil {
			return nil, err
		}
		return raws, nil
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.References, nil
	default:
		return nil, fmt.Errorf("catalog must be a list or a mapping with a references key")
	}
}

func parseJSON(data []byte) ([]rawRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var raws []rawRecord
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, err
		}
		return raws, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.References, nil
}

// Validate checks record identity. Ids must be present and unique; every
// other field is optional.
func Validate(records []Record) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if r.ID == "" {
			return fmt.Errorf("record %d: %w", i, ErrMissingID)
		}
		if prev, ok := seen[r.ID]; ok {
			return fmt.Errorf("records %d and %d: %w: %s", prev, i, ErrDuplicateID, r.ID)
		}
		seen[r.ID] = i
	}
	return nil
}
