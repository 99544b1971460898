package defaults

import "gopkg.in/yaml.v3"

// FileConfig represents the top-level structure of defaults.yaml.
// Categories is kept as a raw node because two shapes are accepted:
// the current list of category objects and the legacy record keyed by
// category name. The mapper normalizes both to the list shape.
type FileConfig struct {
	Sections   []SectionConfig `yaml:"sections"`
	Categories yaml.Node       `yaml:"categories"`
}

// SectionConfig is one bookmark section entry.
type SectionConfig struct {
	ID    string       `yaml:"id"`
	Title string       `yaml:"title"`
	Icon  string       `yaml:"icon,omitempty"`
	Items []ItemConfig `yaml:"items"`
}

// ItemConfig is one bookmark card entry.
type ItemConfig struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
	URL         string `yaml:"url"`
}

// CategoryConfig is one search category entry (current shape).
type CategoryConfig struct {
	ID      string         `yaml:"id,omitempty"`
	Name    string         `yaml:"name"`
	Engines []EngineConfig `yaml:"engines"`
}

// EngineConfig is one search engine entry.
type EngineConfig struct {
	Name             string `yaml:"name"`
	Color            string `yaml:"color,omitempty"`
	URL              string `yaml:"url"`
	SuggestionSource string `yaml:"suggestionSource,omitempty"`
}
