package defaults

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkbkakwk/mynav/internal/domain"
)

// Writer serializes a dataset back into a defaults file. This is the
// promote path: a developer edits the live dataset through the UI and
// writes the result back into the shipped file. Only wired up in dev mode.
type Writer struct {
	filePath string
}

// NewWriter creates a writer targeting the given defaults file.
func NewWriter(filePath string) *Writer {
	return &Writer{
		filePath: filePath,
	}
}

// Write marshals the dataset in the current (list-shaped) format and
// replaces the defaults file on disk.
func (w *Writer) Write(dataset domain.Dataset) error {
	config := FileConfig{
		Sections: make([]SectionConfig, 0, len(dataset.Sections)),
	}

	for _, s := range dataset.Sections {
		sc := SectionConfig{
			ID:    s.ID,
			Title: s.Title,
			Icon:  s.Icon,
			Items: make([]ItemConfig, 0, len(s.Items)),
		}
		for _, it := range s.Items {
			sc.Items = append(sc.Items, ItemConfig{
				ID:          it.ID,
				Title:       it.Title,
				Description: it.Description,
				Icon:        it.Icon,
				URL:         it.URL,
			})
		}
		config.Sections = append(config.Sections, sc)
	}

	categories := make([]CategoryConfig, 0, len(dataset.Categories))
	for _, c := range dataset.Categories {
		cc := CategoryConfig{
			ID:      c.ID,
			Name:    c.Name,
			Engines: make([]EngineConfig, 0, len(c.Engines)),
		}
		for _, e := range c.Engines {
			cc.Engines = append(cc.Engines, EngineConfig{
				Name:             e.Name,
				Color:            e.Color,
				URL:              e.URL,
				SuggestionSource: string(e.SuggestionSource),
			})
		}
		categories = append(categories, cc)
	}
	if err := config.Categories.Encode(categories); err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}

	data, err := yaml.Marshal(&config)
	if err != nil {
		return fmt.Errorf("failed to marshal defaults: %w", err)
	}

	if err := os.WriteFile(w.filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write defaults file: %w", err)
	}

	return nil
}
