package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/mkbkakwk/mynav/internal/domain"
	"github.com/mkbkakwk/mynav/internal/logger"
	"github.com/mkbkakwk/mynav/internal/service"
	"github.com/mkbkakwk/mynav/internal/sources/defaults"
	redisstore "github.com/mkbkakwk/mynav/internal/store/redis"
)

const defaultsFixture = `
sections:
  - id: fav
    title: 常用站点
    icon: "⭐"
    items:
      - id: "1"
        title: 数据搜索
        description: 聚合搜索
        icon: "🔍"
        url: https://search.example.com/
      - id: "2"
        title: 豆包 AI
        description: 写作、摘要、数据
        icon: "🤖"
        url: https://www.doubao.com/
  - id: tools
    title: 在线工具
    icon: "🛠️"
    items:
      - id: t1
        title: 看板工具
        description: 可视化项目管理
        icon: "📋"
        url: https://trello.com/

categories:
  - name: 常用
    engines:
      - name: 谷歌
        color: bg-red-500
        url: https://www.google.com/search?q={q}
        suggestionSource: google
      - name: 百度
        color: bg-blue-500
        url: https://www.baidu.com/s?wd={q}
        suggestionSource: baidu
`

type memoryStore struct {
	mu         sync.Mutex
	sections   []domain.Section
	categories []domain.Category
	settings   *domain.SyncSettings
}

func (m *memoryStore) SaveSections(_ context.Context, s []domain.Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sections = s
	return nil
}

func (m *memoryStore) GetSections(context.Context) ([]domain.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sections == nil {
		return nil, redisstore.ErrNotFound
	}
	return m.sections, nil
}

func (m *memoryStore) SaveCategories(_ context.Context, c []domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = c
	return nil
}

func (m *memoryStore) GetCategories(context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.categories == nil {
		return nil, redisstore.ErrNotFound
	}
	return m.categories, nil
}

func (m *memoryStore) SaveSyncSettings(_ context.Context, s domain.SyncSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &s
	return nil
}

func (m *memoryStore) GetSyncSettings(context.Context) (domain.SyncSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return domain.SyncSettings{}, redisstore.ErrNotFound
	}
	return *m.settings, nil
}

func loadFixtureDefaults(t *testing.T) domain.Dataset {
	t.Helper()

	path := filepath.Join(t.TempDir(), "defaults.yaml")
	assert.NilError(t, os.WriteFile(path, []byte(defaultsFixture), 0o644))

	config, err := defaults.NewLoader(path).Load()
	assert.NilError(t, err)

	dataset, err := defaults.NewMapper().MapDataset(config)
	assert.NilError(t, err)
	return dataset
}

// TestDatasetLifecycle walks the whole flow: first boot from defaults,
// user edits, restart, and a defaults upgrade that must not clobber the
// user's changes.
func TestDatasetLifecycle(t *testing.T) {
	ctx := context.Background()
	shipped := loadFixtureDefaults(t)
	store := &memoryStore{}
	log := logger.New("error", false)

	// First boot: snapshots empty, defaults win.
	svc := service.NewService(store, nil, shipped, log)
	assert.NilError(t, svc.Load(ctx))

	data := svc.Dataset()
	assert.Equal(t, len(data.Sections), 2)
	assert.Equal(t, len(data.Categories), 1)
	assert.Equal(t, data.Categories[0].Name, "常用")

	// User adds a section and a bookmark with a literal URL.
	created, err := svc.AddSection(ctx, domain.Section{Title: "news", Icon: "📰"})
	assert.NilError(t, err)

	item, err := svc.AddItem(ctx, created.ID, domain.BookmarkItem{
		Title: "Hacker News",
		URL:   "https://news.ycombinator.com",
	})
	assert.NilError(t, err)
	assert.Equal(t, item.URL, "https://news.ycombinator.com")

	// Engines keep their guard rails through the service layer.
	commonID := data.Categories[0].ID
	assert.NilError(t, svc.DeleteEngine(ctx, commonID, "百度"))
	err = svc.DeleteEngine(ctx, commonID, "谷歌")
	assert.Assert(t, errors.Is(err, domain.ErrLastEngine))

	// Restart: a fresh service over the same store sees the user's
	// sections. The deleted default engine comes back, since the merge
	// is additive and re-appends absent defaults by name.
	svc2 := service.NewService(store, nil, shipped, log)
	assert.NilError(t, svc2.Load(ctx))

	data = svc2.Dataset()
	assert.Equal(t, len(data.Sections), 3)
	assert.Equal(t, data.Sections[2].Title, "news")
	assert.Equal(t, len(data.Categories[0].Engines), 2)

	// Defaults upgrade ships a new section; user content is untouched
	// and the new section is appended.
	upgraded := shipped
	upgraded.Sections = append(upgraded.Sections, domain.Section{
		ID:    "design",
		Title: "设计资源",
		Icon:  "🎨",
		Items: []domain.BookmarkItem{{ID: "ds1", Title: "配色", Icon: "🎨", URL: "https://coolors.co/"}},
	})
	assert.NilError(t, svc2.ReloadDefaults(ctx, upgraded))

	data = svc2.Dataset()
	assert.Equal(t, len(data.Sections), 4)
	assert.Equal(t, data.Sections[2].Title, "news")
	assert.Equal(t, data.Sections[3].ID, "design")
	assert.Equal(t, len(data.Categories[0].Engines), 2)
}

// TestPlaceholderHealingAcrossRestart covers the broken-snapshot path:
// placeholder URLs and stale descriptions in the stored copy heal from
// the shipped defaults at load.
func TestPlaceholderHealingAcrossRestart(t *testing.T) {
	ctx := context.Background()
	shipped := loadFixtureDefaults(t)
	log := logger.New("error", false)

	store := &memoryStore{
		sections: []domain.Section{{
			ID:    "fav",
			Title: "常用站点",
			Icon:  "⭐",
			Items: []domain.BookmarkItem{
				{ID: "1", Title: "数据搜索", Description: "暂无描述", Icon: "🔗", URL: "#"},
				{ID: "2", Title: "豆包 AI", Description: "my own note", Icon: "🤖", URL: "https://www.doubao.com/"},
			},
		}},
		categories: []domain.Category{{
			ID:   "c1",
			Name: "常用",
			Engines: []domain.SearchEngine{
				{Name: "谷歌", Color: "", URL: "", SuggestionSource: "google"},
			},
		}},
	}

	svc := service.NewService(store, nil, shipped, log)
	assert.NilError(t, svc.Load(ctx))

	data := svc.Dataset()
	fav := data.Sections[0]
	assert.Equal(t, fav.Items[0].URL, "https://search.example.com/")
	assert.Equal(t, fav.Items[0].Description, "聚合搜索")
	assert.Equal(t, fav.Items[0].Icon, "🔍")

	// User-authored values survive healing.
	assert.Equal(t, fav.Items[1].Description, "my own note")

	// The healed engine gets its url and color back, and the default
	// engine missing from the snapshot is re-added.
	engines := data.Categories[0].Engines
	assert.Equal(t, engines[0].URL, "https://www.google.com/search?q={q}")
	assert.Equal(t, engines[0].Color, "bg-red-500")
	assert.Equal(t, len(engines), 2)
}
