package domain

import "testing"

func TestDecodeCategoriesArrayShape(t *testing.T) {
	raw := []byte(`[
		{"id": "common", "name": "常用", "engines": [
			{"name": "Google", "color": "bg-red-500", "url": "https://www.google.com/search?q={q}", "suggestionSource": "google"}
		]}
	]`)

	categories, err := DecodeCategories(raw)
	if err != nil {
		t.Fatalf("DecodeCategories() error = %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("categories = %d, want 1", len(categories))
	}
	if categories[0].ID != "common" || categories[0].Name != "常用" {
		t.Errorf("category = %+v", categories[0])
	}
	if categories[0].Engines[0].SuggestionSource != SuggestGoogle {
		t.Errorf("engine source = %q", categories[0].Engines[0].SuggestionSource)
	}
}

func TestDecodeCategoriesLegacyRecordShape(t *testing.T) {
	raw := []byte(`{
		"常用": [{"name": "Google", "color": "bg-red-500", "url": "https://www.google.com/search?q={q}", "suggestionSource": "google"}],
		"开发": [{"name": "GitHub", "color": "bg-slate-800", "url": "https://github.com/search?q={q}", "suggestionSource": "none"}]
	}`)

	categories, err := DecodeCategories(raw)
	if err != nil {
		t.Fatalf("DecodeCategories() error = %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(categories))
	}
	// Legacy record carries no order; names are sorted.
	if categories[0].Name != "常用" && categories[1].Name != "常用" {
		t.Errorf("missing 常用 category: %+v", categories)
	}
	for _, c := range categories {
		if c.ID == "" {
			t.Errorf("category %q has no generated id", c.Name)
		}
		if len(c.Engines) != 1 {
			t.Errorf("category %q engines = %d, want 1", c.Name, len(c.Engines))
		}
	}
}

func TestDecodeCategoriesArrayAssignsMissingIDs(t *testing.T) {
	raw := []byte(`[{"name": "常用", "engines": []}]`)

	categories, err := DecodeCategories(raw)
	if err != nil {
		t.Fatalf("DecodeCategories() error = %v", err)
	}
	if categories[0].ID == "" {
		t.Error("missing id was not assigned")
	}
}

func TestDecodeCategoriesEmptyAndInvalid(t *testing.T) {
	if got, err := DecodeCategories(nil); err != nil || got != nil {
		t.Errorf("DecodeCategories(nil) = %v, %v", got, err)
	}
	if got, err := DecodeCategories([]byte("null")); err != nil || got != nil {
		t.Errorf("DecodeCategories(null) = %v, %v", got, err)
	}
	if _, err := DecodeCategories([]byte(`"nope"`)); err == nil {
		t.Error("DecodeCategories(string) expected error")
	}
}
