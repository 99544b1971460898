package defaults

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkbkakwk/mynav/internal/domain"
)

// Mapper converts a parsed defaults file into a domain.Dataset
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapDataset converts a FileConfig to a domain.Dataset.
// Entries missing their required fields are skipped rather than failing
// the whole load; a file that yields no sections at all is an error.
func (m *Mapper) MapDataset(config *FileConfig) (domain.Dataset, error) {
	var out domain.Dataset

	for _, sc := range config.Sections {
		if sc.ID == "" || strings.TrimSpace(sc.Title) == "" {
			continue
		}
		section := domain.Section{
			ID:    sc.ID,
			Title: sc.Title,
			Icon:  sc.Icon,
			Items: make([]domain.BookmarkItem, 0, len(sc.Items)),
		}
		for _, ic := range sc.Items {
			if ic.ID == "" || strings.TrimSpace(ic.Title) == "" {
				continue
			}
			section.Items = append(section.Items, domain.BookmarkItem{
				ID:          ic.ID,
				Title:       ic.Title,
				Description: ic.Description,
				Icon:        ic.Icon,
				URL:         ic.URL,
			})
		}
		out.Sections = append(out.Sections, section)
	}

	if len(out.Sections) == 0 {
		return domain.Dataset{}, fmt.Errorf("no valid sections found in defaults config")
	}

	categories, err := m.mapCategories(config.Categories)
	if err != nil {
		return domain.Dataset{}, err
	}
	out.Categories = categories

	return out, nil
}

// mapCategories normalizes both accepted category shapes to the list form.
func (m *Mapper) mapCategories(node yaml.Node) ([]domain.Category, error) {
	switch node.Kind {
	case 0, yaml.ScalarNode:
		// Absent or explicit null.
		return nil, nil

	case yaml.SequenceNode:
		var configs []CategoryConfig
		if err := node.Decode(&configs); err != nil {
			return nil, fmt.Errorf("failed to decode categories list: %w", err)
		}
		return m.buildCategories(configs)

	case yaml.MappingNode:
		// Legacy record shape: category name -> engines.
		var record map[string][]EngineConfig
		if err := node.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode legacy categories record: %w", err)
		}
		names := make([]string, 0, len(record))
		for name := range record {
			names = append(names, name)
		}
		sort.Strings(names)
		configs := make([]CategoryConfig, 0, len(names))
		for _, name := range names {
			configs = append(configs, CategoryConfig{Name: name, Engines: record[name]})
		}
		return m.buildCategories(configs)

	default:
		return nil, fmt.Errorf("unsupported categories shape in defaults config")
	}
}

func (m *Mapper) buildCategories(configs []CategoryConfig) ([]domain.Category, error) {
	var categories []domain.Category
	for _, cc := range configs {
		if strings.TrimSpace(cc.Name) == "" || len(cc.Engines) == 0 {
			continue
		}
		category := domain.Category{
			ID:      cc.ID,
			Name:    cc.Name,
			Engines: make([]domain.SearchEngine, 0, len(cc.Engines)),
		}
		if category.ID == "" {
			category.ID = domain.NewID()
		}
		for _, ec := range cc.Engines {
			if strings.TrimSpace(ec.Name) == "" || strings.TrimSpace(ec.URL) == "" {
				continue
			}
			source := domain.SuggestionSource(ec.SuggestionSource)
			if source == "" {
				source = domain.SuggestNone
			}
			category.Engines = append(category.Engines, domain.SearchEngine{
				Name:             ec.Name,
				Color:            ec.Color,
				URL:              domain.NormalizeEngineURL(ec.URL),
				SuggestionSource: source,
			})
		}
		if len(category.Engines) == 0 {
			continue
		}
		categories = append(categories, category)
	}
	return categories, nil
}
