package domain

import (
	"fmt"
	"strings"
)

// DefaultSearchPath is appended to engine URLs entered without a {q}
// placeholder. "example.com" becomes "example.com/search?q={q}".
const DefaultSearchPath = "/search?q={q}"

// QueryPlaceholder is the token replaced by the encoded query at search time.
const QueryPlaceholder = "{q}"

// NormalizeEngineURL guarantees the template contains {q}.
func NormalizeEngineURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if strings.Contains(raw, QueryPlaceholder) {
		return raw
	}
	return strings.TrimRight(raw, "/") + DefaultSearchPath
}

// ─────────────────────────────────────────────────────────────────
// Section / item mutations
// ─────────────────────────────────────────────────────────────────

// AddSection appends a section. An empty id is generated, an empty title
// is rejected.
func (d *Dataset) AddSection(s Section) (Section, error) {
	if strings.TrimSpace(s.Title) == "" {
		return Section{}, fmt.Errorf("section title: %w", ErrEmptyField)
	}
	if s.ID == "" {
		s.ID = NewID()
	}
	if _, ok := d.findSection(s.ID); ok {
		return Section{}, fmt.Errorf("section %q: %w", s.ID, ErrDuplicateID)
	}
	if s.Items == nil {
		s.Items = []BookmarkItem{}
	}
	d.Sections = append(d.Sections, s)
	return s, nil
}

// UpdateSection replaces title and icon of an existing section.
// Items are not touched through this path.
func (d *Dataset) UpdateSection(id, title, icon string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("section title: %w", ErrEmptyField)
	}
	i, ok := d.findSection(id)
	if !ok {
		return fmt.Errorf("section %q: %w", id, ErrSectionNotFound)
	}
	d.Sections[i].Title = title
	d.Sections[i].Icon = icon
	return nil
}

// DeleteSection removes a section and everything it contains.
func (d *Dataset) DeleteSection(id string) error {
	i, ok := d.findSection(id)
	if !ok {
		return fmt.Errorf("section %q: %w", id, ErrSectionNotFound)
	}
	d.Sections = append(d.Sections[:i], d.Sections[i+1:]...)
	return nil
}

// SwapSections exchanges two sections by position.
func (d *Dataset) SwapSections(i, j int) error {
	if i < 0 || j < 0 || i >= len(d.Sections) || j >= len(d.Sections) {
		return ErrIndexRange
	}
	d.Sections[i], d.Sections[j] = d.Sections[j], d.Sections[i]
	return nil
}

// AddItem appends a bookmark item to a section. Title and URL are
// required; an empty id is generated.
func (d *Dataset) AddItem(sectionID string, item BookmarkItem) (BookmarkItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return BookmarkItem{}, fmt.Errorf("item title: %w", ErrEmptyField)
	}
	if strings.TrimSpace(item.URL) == "" {
		return BookmarkItem{}, fmt.Errorf("item url: %w", ErrEmptyField)
	}
	si, ok := d.findSection(sectionID)
	if !ok {
		return BookmarkItem{}, fmt.Errorf("section %q: %w", sectionID, ErrSectionNotFound)
	}
	if item.ID == "" {
		item.ID = NewID()
	}
	for _, existing := range d.Sections[si].Items {
		if existing.ID == item.ID {
			return BookmarkItem{}, fmt.Errorf("item %q: %w", item.ID, ErrDuplicateID)
		}
	}
	d.Sections[si].Items = append(d.Sections[si].Items, item)
	return item, nil
}

// UpdateItem replaces an existing item in place, keeping its position.
func (d *Dataset) UpdateItem(sectionID string, item BookmarkItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("item title: %w", ErrEmptyField)
	}
	if strings.TrimSpace(item.URL) == "" {
		return fmt.Errorf("item url: %w", ErrEmptyField)
	}
	si, ok := d.findSection(sectionID)
	if !ok {
		return fmt.Errorf("section %q: %w", sectionID, ErrSectionNotFound)
	}
	for i, existing := range d.Sections[si].Items {
		if existing.ID == item.ID {
			d.Sections[si].Items[i] = item
			return nil
		}
	}
	return fmt.Errorf("item %q: %w", item.ID, ErrItemNotFound)
}

// DeleteItem removes one item from a section.
func (d *Dataset) DeleteItem(sectionID, itemID string) error {
	si, ok := d.findSection(sectionID)
	if !ok {
		return fmt.Errorf("section %q: %w", sectionID, ErrSectionNotFound)
	}
	items := d.Sections[si].Items
	for i, existing := range items {
		if existing.ID == itemID {
			d.Sections[si].Items = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("item %q: %w", itemID, ErrItemNotFound)
}

// SwapItems exchanges two items of a section by position. This is the
// drag-reorder primitive: applied synchronously and atomically.
func (d *Dataset) SwapItems(sectionID string, i, j int) error {
	si, ok := d.findSection(sectionID)
	if !ok {
		return fmt.Errorf("section %q: %w", sectionID, ErrSectionNotFound)
	}
	items := d.Sections[si].Items
	if i < 0 || j < 0 || i >= len(items) || j >= len(items) {
		return ErrIndexRange
	}
	items[i], items[j] = items[j], items[i]
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Category / engine mutations
// ─────────────────────────────────────────────────────────────────

// AddCategory appends a category. It must ship with at least one engine
// so the "every category retains one engine" guard holds from birth.
func (d *Dataset) AddCategory(c Category) (Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Category{}, fmt.Errorf("category name: %w", ErrEmptyField)
	}
	if len(c.Engines) == 0 {
		return Category{}, fmt.Errorf("category engines: %w", ErrEmptyField)
	}
	if c.ID == "" {
		c.ID = NewID()
	}
	if _, ok := d.findCategory(c.ID); ok {
		return Category{}, fmt.Errorf("category %q: %w", c.ID, ErrDuplicateID)
	}
	for i := range c.Engines {
		c.Engines[i].URL = NormalizeEngineURL(c.Engines[i].URL)
	}
	d.Categories = append(d.Categories, c)
	return c, nil
}

// DeleteCategory removes a category. The last remaining category is
// protected: the delete is rejected and the dataset left untouched.
func (d *Dataset) DeleteCategory(id string) error {
	i, ok := d.findCategory(id)
	if !ok {
		return fmt.Errorf("category %q: %w", id, ErrCategoryNotFound)
	}
	if len(d.Categories) == 1 {
		return ErrLastCategory
	}
	d.Categories = append(d.Categories[:i], d.Categories[i+1:]...)
	return nil
}

// SwapCategories exchanges two categories by position.
func (d *Dataset) SwapCategories(i, j int) error {
	if i < 0 || j < 0 || i >= len(d.Categories) || j >= len(d.Categories) {
		return ErrIndexRange
	}
	d.Categories[i], d.Categories[j] = d.Categories[j], d.Categories[i]
	return nil
}

// AddEngine appends an engine to a category, normalizing its template.
func (d *Dataset) AddEngine(categoryID string, e SearchEngine) (SearchEngine, error) {
	if strings.TrimSpace(e.Name) == "" {
		return SearchEngine{}, fmt.Errorf("engine name: %w", ErrEmptyField)
	}
	if strings.TrimSpace(e.URL) == "" {
		return SearchEngine{}, fmt.Errorf("engine url: %w", ErrEmptyField)
	}
	ci, ok := d.findCategory(categoryID)
	if !ok {
		return SearchEngine{}, fmt.Errorf("category %q: %w", categoryID, ErrCategoryNotFound)
	}
	for _, existing := range d.Categories[ci].Engines {
		if existing.Name == e.Name {
			return SearchEngine{}, fmt.Errorf("engine %q: %w", e.Name, ErrDuplicateID)
		}
	}
	if e.SuggestionSource == "" {
		e.SuggestionSource = SuggestNone
	}
	e.URL = NormalizeEngineURL(e.URL)
	d.Categories[ci].Engines = append(d.Categories[ci].Engines, e)
	return e, nil
}

// DeleteEngine removes an engine by name. The sole engine of a category
// is protected: the delete is rejected and the category left untouched.
func (d *Dataset) DeleteEngine(categoryID, name string) error {
	ci, ok := d.findCategory(categoryID)
	if !ok {
		return fmt.Errorf("category %q: %w", categoryID, ErrCategoryNotFound)
	}
	engines := d.Categories[ci].Engines
	for i, existing := range engines {
		if existing.Name == name {
			if len(engines) == 1 {
				return ErrLastEngine
			}
			d.Categories[ci].Engines = append(engines[:i], engines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("engine %q: %w", name, ErrEngineNotFound)
}

// FindEngine looks an engine up across all categories by name.
func (d *Dataset) FindEngine(name string) (SearchEngine, bool) {
	for _, c := range d.Categories {
		for _, e := range c.Engines {
			if e.Name == name {
				return e, true
			}
		}
	}
	return SearchEngine{}, false
}

func (d *Dataset) findSection(id string) (int, bool) {
	for i, s := range d.Sections {
		if s.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (d *Dataset) findCategory(id string) (int, bool) {
	for i, c := range d.Categories {
		if c.ID == id {
			return i, true
		}
	}
	return 0, false
}
