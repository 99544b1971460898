package domain

import (
	"reflect"
	"testing"
)

func defaultsFixture() Dataset {
	return Dataset{
		Sections: []Section{
			{
				ID: "fav", Title: "Favorites", Icon: "⭐",
				Items: []BookmarkItem{
					{ID: "gh", Title: "GitHub", Description: "Code hosting", Icon: "https://github.com/icon.png", URL: "https://github.com"},
					{ID: "hn", Title: "Hacker News", Description: "News", Icon: "🔶", URL: "https://news.ycombinator.com"},
				},
			},
			{
				ID: "tools", Title: "Tools", Icon: "🛠️",
				Items: []BookmarkItem{
					{ID: "regex", Title: "Regex101", Description: "Regex tester", Icon: "🧪", URL: "https://regex101.com"},
				},
			},
		},
		Categories: []Category{
			{
				ID: "common", Name: "常用",
				Engines: []SearchEngine{
					{Name: "Google", Color: "bg-red-500", URL: "https://www.google.com/search?q={q}", SuggestionSource: SuggestGoogle},
					{Name: "Bing", Color: "bg-teal-500", URL: "https://www.bing.com/search?q={q}", SuggestionSource: SuggestBing},
				},
			},
		},
	}
}

func TestReconcileHealsPlaceholders(t *testing.T) {
	defaults := defaultsFixture()

	tests := []struct {
		name     string
		local    BookmarkItem
		wantURL  string
		wantDesc string
		wantIcon string
	}{
		{
			name:     "empty url healed",
			local:    BookmarkItem{ID: "gh", Title: "GitHub", Description: "my notes", Icon: "🐙", URL: ""},
			wantURL:  "https://github.com",
			wantDesc: "my notes",
			wantIcon: "🐙",
		},
		{
			name:     "hash url healed",
			local:    BookmarkItem{ID: "gh", Title: "GitHub", Description: "my notes", Icon: "🐙", URL: "#"},
			wantURL:  "https://github.com",
			wantDesc: "my notes",
			wantIcon: "🐙",
		},
		{
			name:     "user url preserved",
			local:    BookmarkItem{ID: "gh", Title: "GitHub", Description: "my notes", Icon: "🐙", URL: "https://github.com/mkbkakwk"},
			wantURL:  "https://github.com/mkbkakwk",
			wantDesc: "my notes",
			wantIcon: "🐙",
		},
		{
			name:     "stale description and icon healed",
			local:    BookmarkItem{ID: "gh", Title: "GitHub", Description: "暂无描述", Icon: "🔗", URL: "https://github.com/mkbkakwk"},
			wantURL:  "https://github.com/mkbkakwk",
			wantDesc: "Code hosting",
			wantIcon: "https://github.com/icon.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := Dataset{
				Sections: []Section{{ID: "fav", Title: "Favorites", Icon: "⭐", Items: []BookmarkItem{tt.local}}},
			}

			merged := Reconcile(local, defaults)

			item := merged.Sections[0].Items[0]
			if item.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", item.URL, tt.wantURL)
			}
			if item.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", item.Description, tt.wantDesc)
			}
			if item.Icon != tt.wantIcon {
				t.Errorf("Icon = %q, want %q", item.Icon, tt.wantIcon)
			}
		})
	}
}

func TestReconcileIsAdditive(t *testing.T) {
	defaults := defaultsFixture()
	local := Dataset{
		Sections: []Section{
			// User-created section with no default counterpart.
			{ID: "mine", Title: "Mine", Icon: "📦", Items: []BookmarkItem{
				{ID: "blog", Title: "Blog", URL: "https://example.org"},
			}},
			// Known section missing one default item.
			{ID: "fav", Title: "Favorites", Icon: "⭐", Items: []BookmarkItem{
				{ID: "gh", Title: "GitHub", Description: "d", Icon: "🐙", URL: "https://github.com"},
			}},
		},
	}

	merged := Reconcile(local, defaults)

	// Every local section survives, in order, ahead of appended defaults.
	wantOrder := []string{"mine", "fav", "tools"}
	var gotOrder []string
	for _, s := range merged.Sections {
		gotOrder = append(gotOrder, s.ID)
	}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Fatalf("section order = %v, want %v", gotOrder, wantOrder)
	}

	// The default-only item was appended at the end of its section.
	fav := merged.Sections[1]
	if len(fav.Items) != 2 || fav.Items[1].ID != "hn" {
		t.Errorf("fav items = %+v, want gh then appended hn", fav.Items)
	}

	// Default categories appended since local had none.
	if len(merged.Categories) != 1 || merged.Categories[0].Name != "常用" {
		t.Errorf("categories = %+v, want appended 常用", merged.Categories)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	defaults := defaultsFixture()
	local := Dataset{
		Sections: []Section{
			{ID: "fav", Title: "Favorites", Icon: "⭐", Items: []BookmarkItem{
				{ID: "gh", Title: "GitHub", Description: "", Icon: "", URL: "#"},
				{ID: "custom", Title: "Custom", Description: "mine", Icon: "✨", URL: "https://custom.example"},
			}},
		},
		Categories: []Category{
			{ID: "common", Name: "常用", Engines: []SearchEngine{
				{Name: "Google", Color: "", URL: "", SuggestionSource: ""},
			}},
		},
	}

	once := Reconcile(local, defaults)
	twice := Reconcile(once, defaults)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("reconcile not idempotent:\nonce  = %+v\ntwice = %+v", once, twice)
	}
}

func TestReconcileHealsEngines(t *testing.T) {
	defaults := defaultsFixture()
	local := Dataset{
		Categories: []Category{
			{ID: "common", Name: "常用", Engines: []SearchEngine{
				{Name: "Google", Color: "", URL: "#", SuggestionSource: ""},
				{Name: "Custom", Color: "bg-black", URL: "https://search.example/?q={q}", SuggestionSource: SuggestNone},
			}},
		},
	}

	merged := Reconcile(local, defaults)

	engines := merged.Categories[0].Engines
	if engines[0].URL != "https://www.google.com/search?q={q}" {
		t.Errorf("engine URL = %q, want default", engines[0].URL)
	}
	if engines[0].SuggestionSource != SuggestGoogle {
		t.Errorf("engine source = %q, want google", engines[0].SuggestionSource)
	}
	// User engine untouched, default Bing appended last.
	if engines[1].Name != "Custom" {
		t.Errorf("engine[1] = %q, want Custom kept in place", engines[1].Name)
	}
	if engines[2].Name != "Bing" {
		t.Errorf("engine[2] = %q, want appended Bing", engines[2].Name)
	}
}

func TestReconcileEmptyLocal(t *testing.T) {
	defaults := defaultsFixture()

	merged := Reconcile(Dataset{}, defaults)

	if len(merged.Sections) != len(defaults.Sections) {
		t.Errorf("sections = %d, want %d", len(merged.Sections), len(defaults.Sections))
	}
	if len(merged.Categories) != len(defaults.Categories) {
		t.Errorf("categories = %d, want %d", len(merged.Categories), len(defaults.Categories))
	}
}
