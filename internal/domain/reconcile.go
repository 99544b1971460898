package domain

// Placeholder sentinels the reconciler treats as "not yet customized".
// Known risk: a user value that legitimately equals one of these strings
// is indistinguishable from a stale default and will be healed over.
var (
	urlPlaceholders = map[string]bool{
		"":  true,
		"#": true,
	}
	staleDescriptions = map[string]bool{
		"":               true,
		"暂无描述":           true,
		"No description": true,
	}
	staleIcons = map[string]bool{
		"":   true,
		"🔗": true,
	}
)

// Reconcile merges a locally persisted dataset with the shipped defaults.
//
// The merge is one-directional: defaults fill gaps, they never overwrite a
// non-placeholder user value. Structure is additive only — every local
// entry survives, every default entry ends up present. Pre-existing order
// is preserved; healed-in entries are appended at the end of their parent.
// Reconcile(Reconcile(l, d), d) == Reconcile(l, d).
func Reconcile(local, defaults Dataset) Dataset {
	out := local.Clone()
	out.Sections = reconcileSections(out.Sections, defaults.Sections)
	out.Categories = reconcileCategories(out.Categories, defaults.Categories)
	return out
}

func reconcileSections(local, defaults []Section) []Section {
	byID := make(map[string]int, len(local))
	for i, s := range local {
		byID[s.ID] = i
	}

	for _, def := range defaults {
		li, ok := byID[def.ID]
		if !ok {
			// Section shipped after the user last persisted: append wholesale.
			cp := def
			cp.Items = append([]BookmarkItem(nil), def.Items...)
			local = append(local, cp)
			byID[def.ID] = len(local) - 1
			continue
		}
		local[li].Items = reconcileItems(local[li].Items, def.Items)
	}
	return local
}

func reconcileItems(local, defaults []BookmarkItem) []BookmarkItem {
	byID := make(map[string]int, len(local))
	for i, it := range local {
		byID[it.ID] = i
	}

	for _, def := range defaults {
		li, ok := byID[def.ID]
		if !ok {
			// Ships new items to existing users.
			local = append(local, def)
			byID[def.ID] = len(local) - 1
			continue
		}
		healItem(&local[li], def)
	}
	return local
}

func healItem(it *BookmarkItem, def BookmarkItem) {
	if urlPlaceholders[it.URL] && def.URL != "" {
		it.URL = def.URL
	}
	if staleDescriptions[it.Description] && def.Description != "" {
		it.Description = def.Description
	}
	if staleIcons[it.Icon] && def.Icon != "" {
		it.Icon = def.Icon
	}
}

// Categories are keyed by name, not id: name was the historical key of the
// record-shaped persisted format and survives the migration to ids.
func reconcileCategories(local, defaults []Category) []Category {
	byName := make(map[string]int, len(local))
	for i, c := range local {
		byName[c.Name] = i
	}

	for _, def := range defaults {
		li, ok := byName[def.Name]
		if !ok {
			cp := def
			cp.Engines = append([]SearchEngine(nil), def.Engines...)
			if cp.ID == "" {
				cp.ID = NewID()
			}
			local = append(local, cp)
			byName[def.Name] = len(local) - 1
			continue
		}
		if local[li].ID == "" {
			local[li].ID = def.ID
		}
		local[li].Engines = reconcileEngines(local[li].Engines, def.Engines)
	}
	return local
}

func reconcileEngines(local, defaults []SearchEngine) []SearchEngine {
	byName := make(map[string]int, len(local))
	for i, e := range local {
		byName[e.Name] = i
	}

	for _, def := range defaults {
		li, ok := byName[def.Name]
		if !ok {
			local = append(local, def)
			byName[def.Name] = len(local) - 1
			continue
		}
		healEngine(&local[li], def)
	}
	return local
}

func healEngine(e *SearchEngine, def SearchEngine) {
	if urlPlaceholders[e.URL] && def.URL != "" {
		e.URL = def.URL
	}
	if e.Color == "" {
		e.Color = def.Color
	}
	if e.SuggestionSource == "" {
		e.SuggestionSource = def.SuggestionSource
	}
}
