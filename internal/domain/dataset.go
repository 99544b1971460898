package domain

// BookmarkItem is a single bookmark card inside a Section.
type BookmarkItem struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is unique within the parent Section.
	// Generated when the item is created without one.
	ID string `json:"id"`

	// ─────────────────────────────
	// Display
	// ─────────────────────────────

	// Title is the card label. Required.
	Title string `json:"title"`

	// Description is the card subtitle. May be empty.
	Description string `json:"description"`

	// Icon is either an emoji literal or an absolute image URL.
	Icon string `json:"icon"`

	// URL is the navigation target. Required.
	URL string `json:"url"`
}

// Section is a titled, ordered group of bookmark cards.
// Render order equals navigation order, so slice position is meaningful.
type Section struct {
	// ID is unique across the whole dataset.
	ID string `json:"id"`

	// Title is the section heading.
	Title string `json:"title"`

	// Icon is an emoji literal shown next to the heading.
	Icon string `json:"icon"`

	// Items is the ordered card list.
	Items []BookmarkItem `json:"items"`
}

// SuggestionSource identifies which autocomplete upstream an engine uses.
type SuggestionSource string

const (
	SuggestBaidu  SuggestionSource = "baidu"
	SuggestGoogle SuggestionSource = "google"
	SuggestBing   SuggestionSource = "bing"
	Suggest360    SuggestionSource = "360"
	SuggestNone   SuggestionSource = "none"
)

// SearchEngine is one selectable engine inside a Category.
type SearchEngine struct {
	// Name is unique within the parent Category.
	Name string `json:"name"`

	// Color is a UI color token. Opaque to the server.
	Color string `json:"color"`

	// URL is the search template and must contain the {q} placeholder.
	// Templates without it are normalized at creation time.
	URL string `json:"url"`

	// SuggestionSource selects the autocomplete upstream.
	SuggestionSource SuggestionSource `json:"suggestionSource"`
}

// Category is a titled, ordered group of search engines.
type Category struct {
	// ID is unique across the whole dataset.
	ID string `json:"id"`

	// Name is the historical merge key for categories.
	Name string `json:"name"`

	// Engines is the ordered engine list. Never empty after creation.
	Engines []SearchEngine `json:"engines"`
}

// Dataset is the full in-memory state: bookmark sections plus
// search categories. It is also the canonical remote document shape.
type Dataset struct {
	Sections   []Section  `json:"sections"`
	Categories []Category `json:"categories"`
}

// SyncSettings holds the credentials for the remote JSON store.
// Values are never validated beyond presence.
type SyncSettings struct {
	Token   string `json:"token"`
	Owner   string `json:"owner"`
	Repo    string `json:"repo"`
	Enabled bool   `json:"enabled"`
}

// Complete reports whether the settings carry everything a push needs.
func (s SyncSettings) Complete() bool {
	return s.Token != "" && s.Owner != "" && s.Repo != ""
}

// Clone returns a deep copy of the dataset so callers can hand it out
// without exposing the live slices.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Sections:   make([]Section, len(d.Sections)),
		Categories: make([]Category, len(d.Categories)),
	}
	for i, s := range d.Sections {
		cp := s
		cp.Items = append([]BookmarkItem(nil), s.Items...)
		out.Sections[i] = cp
	}
	for i, c := range d.Categories {
		cp := c
		cp.Engines = append([]SearchEngine(nil), c.Engines...)
		out.Categories[i] = cp
	}
	return out
}
