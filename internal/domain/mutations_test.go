package domain

import (
	"errors"
	"testing"
)

func TestNormalizeEngineURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "template kept",
			input: "https://www.google.com/search?q={q}",
			want:  "https://www.google.com/search?q={q}",
		},
		{
			name:  "bare domain gets default path",
			input: "example.com",
			want:  "example.com/search?q={q}",
		},
		{
			name:  "trailing slash trimmed before append",
			input: "https://example.com/",
			want:  "https://example.com/search?q={q}",
		},
		{
			name:  "empty stays empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEngineURL(tt.input); got != tt.want {
				t.Errorf("NormalizeEngineURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAddSectionThenItem(t *testing.T) {
	var d Dataset

	section, err := d.AddSection(Section{ID: "news", Title: "News", Icon: "📰"})
	if err != nil {
		t.Fatalf("AddSection() error = %v", err)
	}
	if section.ID != "news" || len(section.Items) != 0 {
		t.Fatalf("AddSection() = %+v, want empty news section", section)
	}

	item, err := d.AddItem("news", BookmarkItem{Title: "HN", Icon: "🔗", URL: "https://news.ycombinator.com"})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if item.ID == "" {
		t.Error("AddItem() did not generate an id")
	}

	if len(d.Sections) != 1 || len(d.Sections[0].Items) != 1 {
		t.Fatalf("dataset = %+v, want one section with one item", d)
	}
	if got := d.Sections[0].Items[0].URL; got != "https://news.ycombinator.com" {
		t.Errorf("item URL = %q, want literal input", got)
	}
}

func TestAddItemValidation(t *testing.T) {
	d := Dataset{Sections: []Section{{ID: "s", Title: "S"}}}

	tests := []struct {
		name    string
		item    BookmarkItem
		wantErr error
	}{
		{name: "missing title", item: BookmarkItem{URL: "https://x.example"}, wantErr: ErrEmptyField},
		{name: "missing url", item: BookmarkItem{Title: "X"}, wantErr: ErrEmptyField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := d.AddItem("s", tt.item); !errors.Is(err, tt.wantErr) {
				t.Errorf("AddItem() error = %v, want %v", err, tt.wantErr)
			}
			if len(d.Sections[0].Items) != 0 {
				t.Error("rejected item was persisted")
			}
		})
	}
}

func TestSwapItems(t *testing.T) {
	d := Dataset{Sections: []Section{{
		ID: "s", Title: "S",
		Items: []BookmarkItem{
			{ID: "a", Title: "A", URL: "https://a.example"},
			{ID: "b", Title: "B", URL: "https://b.example"},
			{ID: "c", Title: "C", URL: "https://c.example"},
		},
	}}}

	if err := d.SwapItems("s", 0, 2); err != nil {
		t.Fatalf("SwapItems() error = %v", err)
	}
	if d.Sections[0].Items[0].ID != "c" || d.Sections[0].Items[2].ID != "a" {
		t.Errorf("items after swap = %+v", d.Sections[0].Items)
	}

	if err := d.SwapItems("s", 0, 5); !errors.Is(err, ErrIndexRange) {
		t.Errorf("SwapItems() out of range error = %v, want ErrIndexRange", err)
	}
	if err := d.SwapItems("missing", 0, 1); !errors.Is(err, ErrSectionNotFound) {
		t.Errorf("SwapItems() missing section error = %v, want ErrSectionNotFound", err)
	}
}

func TestDeleteLastCategoryRejected(t *testing.T) {
	d := Dataset{Categories: []Category{{
		ID: "only", Name: "Only",
		Engines: []SearchEngine{{Name: "E", URL: "https://e.example/?q={q}"}},
	}}}

	err := d.DeleteCategory("only")
	if !errors.Is(err, ErrLastCategory) {
		t.Fatalf("DeleteCategory() error = %v, want ErrLastCategory", err)
	}
	if len(d.Categories) != 1 {
		t.Errorf("category count = %d, want unchanged 1", len(d.Categories))
	}
}

func TestDeleteLastEngineRejected(t *testing.T) {
	d := Dataset{Categories: []Category{{
		ID: "c", Name: "C",
		Engines: []SearchEngine{{Name: "E", URL: "https://e.example/?q={q}"}},
	}}}

	err := d.DeleteEngine("c", "E")
	if !errors.Is(err, ErrLastEngine) {
		t.Fatalf("DeleteEngine() error = %v, want ErrLastEngine", err)
	}
	if len(d.Categories[0].Engines) != 1 {
		t.Errorf("engine count = %d, want unchanged 1", len(d.Categories[0].Engines))
	}
}

func TestDeleteEngineKeepsOthers(t *testing.T) {
	d := Dataset{Categories: []Category{{
		ID: "c", Name: "C",
		Engines: []SearchEngine{
			{Name: "A", URL: "https://a.example/?q={q}"},
			{Name: "B", URL: "https://b.example/?q={q}"},
		},
	}}}

	if err := d.DeleteEngine("c", "A"); err != nil {
		t.Fatalf("DeleteEngine() error = %v", err)
	}
	if len(d.Categories[0].Engines) != 1 || d.Categories[0].Engines[0].Name != "B" {
		t.Errorf("engines = %+v, want only B", d.Categories[0].Engines)
	}
}

func TestAddEngineNormalizesURL(t *testing.T) {
	d := Dataset{Categories: []Category{{
		ID: "c", Name: "C",
		Engines: []SearchEngine{{Name: "A", URL: "https://a.example/?q={q}"}},
	}}}

	engine, err := d.AddEngine("c", SearchEngine{Name: "Plain", URL: "example.com"})
	if err != nil {
		t.Fatalf("AddEngine() error = %v", err)
	}
	if engine.URL != "example.com/search?q={q}" {
		t.Errorf("engine URL = %q, want normalized template", engine.URL)
	}
	if engine.SuggestionSource != SuggestNone {
		t.Errorf("engine source = %q, want none default", engine.SuggestionSource)
	}
}

func TestSwapSections(t *testing.T) {
	d := Dataset{Sections: []Section{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
	}}

	if err := d.SwapSections(0, 1); err != nil {
		t.Fatalf("SwapSections() error = %v", err)
	}
	if d.Sections[0].ID != "b" {
		t.Errorf("sections after swap = %+v", d.Sections)
	}
}
