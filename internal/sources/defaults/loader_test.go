package defaults

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "defaults.yaml")

	yamlContent := `---
sections:
  - id: fav
    title: 常用站点
    icon: ⭐
    items:
      - id: gh
        title: GitHub
        description: Code hosting
        icon: 🐙
        url: https://github.com
categories:
  - id: common
    name: 常用
    engines:
      - name: 谷歌
        color: bg-red-500
        url: https://www.google.com/search?q={q}
        suggestionSource: google
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(config.Sections) != 1 {
		t.Fatalf("Load() sections = %d, want 1", len(config.Sections))
	}
	if config.Sections[0].Items[0].URL != "https://github.com" {
		t.Errorf("item url = %q", config.Sections[0].Items[0].URL)
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := loader.Load(); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestWriterRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "defaults.yaml")

	yamlContent := `---
sections:
  - id: tools
    title: Tools
    icon: 🛠️
    items:
      - id: regex
        title: Regex101
        url: https://regex101.com
categories:
  - id: common
    name: 常用
    engines:
      - name: Google
        url: https://www.google.com/search?q={q}
        suggestionSource: google
`
	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	config, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	dataset, err := NewMapper().MapDataset(config)
	if err != nil {
		t.Fatalf("MapDataset() error = %v", err)
	}

	outPath := filepath.Join(tmpDir, "out.yaml")
	if err := NewWriter(outPath).Write(dataset); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	reloaded, err := NewLoader(outPath).Load()
	if err != nil {
		t.Fatalf("Load() after Write() error = %v", err)
	}
	roundTripped, err := NewMapper().MapDataset(reloaded)
	if err != nil {
		t.Fatalf("MapDataset() after Write() error = %v", err)
	}

	if len(roundTripped.Sections) != 1 || roundTripped.Sections[0].ID != "tools" {
		t.Errorf("round-tripped sections = %+v", roundTripped.Sections)
	}
	if len(roundTripped.Categories) != 1 || roundTripped.Categories[0].Name != "常用" {
		t.Errorf("round-tripped categories = %+v", roundTripped.Categories)
	}
}
