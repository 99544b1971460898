package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Persisted categories exist in two shapes: the current array of Category
// objects, and the legacy record keyed by category name
// ({"常用": [engine, ...]}). Both are accepted on load and normalized to
// the array shape exactly once; nothing downstream re-checks the shape.

// DecodeCategories normalizes a persisted categories document.
func DecodeCategories(raw []byte) ([]Category, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var categories []Category
		if err := json.Unmarshal(trimmed, &categories); err != nil {
			return nil, fmt.Errorf("failed to decode categories: %w", err)
		}
		for i := range categories {
			if categories[i].ID == "" {
				categories[i].ID = NewID()
			}
		}
		return categories, nil
	case '{':
		var record map[string][]SearchEngine
		if err := json.Unmarshal(trimmed, &record); err != nil {
			return nil, fmt.Errorf("failed to decode legacy categories: %w", err)
		}
		return fromLegacyRecord(record), nil
	default:
		return nil, fmt.Errorf("failed to decode categories: unrecognized shape")
	}
}

// fromLegacyRecord converts the name-keyed record. The record shape never
// carried an order, so names are sorted for a deterministic result.
func fromLegacyRecord(record map[string][]SearchEngine) []Category {
	names := make([]string, 0, len(record))
	for name := range record {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, Category{
			ID:      NewID(),
			Name:    name,
			Engines: record[name],
		})
	}
	return categories
}
