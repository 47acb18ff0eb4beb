package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("expected version 1.0, got %s", cfg.Version)
	}

	if cfg.Workspace.Document != "dashboard.html" {
		t.Errorf("expected document dashboard.html, got %s", cfg.Workspace.Document)
	}

	if cfg.Providers.Timeout() != 30*time.Second {
		t.Errorf("expected 30s provider timeout, got %s", cfg.Providers.Timeout())
	}

	if len(cfg.Goals.Categories) != 4 {
		t.Errorf("expected 4 default goal categories, got %d", len(cfg.Goals.Categories))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing document path",
			modify:  func(c *Config) { c.Workspace.Document = "" },
			wantErr: true,
		},
		{
			name:    "missing snapshot path",
			modify:  func(c *Config) { c.Workspace.Snapshot = "" },
			wantErr: true,
		},
		{
			name:    "invalid rock number in category",
			modify:  func(c *Config) { c.Goals.Categories["income"] = []int{0} },
			wantErr: true,
		},
		{
			name:    "rock in several categories",
			modify: func(c *Config) {
				c.Goals.Categories["income"] = []int{1, 2}
				c.Goals.Categories["freedom"] = []int{2, 3}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeadlineTime(t *testing.T) {
	g := GoalsConfig{Deadline: "2026-09-30"}
	want := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	if got := g.DeadlineTime(); !got.Equal(want) {
		t.Errorf("DeadlineTime() = %v, want %v", got, want)
	}

	g = GoalsConfig{Deadline: "not-a-date"}
	if !g.DeadlineTime().IsZero() {
		t.Error("malformed deadline should yield zero time")
	}
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lifeboard.yaml")

	cfg := DefaultConfig()
	cfg.Workspace.Document = "board.html"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Workspace.Document != cfg.Workspace.Document {
		t.Errorf("expected document %s, got %s", cfg.Workspace.Document, loaded.Workspace.Document)
	}
}

func TestLoadNonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/lifeboard.yaml")
	if err != nil {
		t.Fatalf("Load() should not error for missing file, got %v", err)
	}

	if cfg.Workspace.Document != "dashboard.html" {
		t.Errorf("expected default document, got %s", cfg.Workspace.Document)
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	subdir := filepath.Join(dir, "subdir")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(dir, "lifeboard.yaml")
	if err := os.WriteFile(configPath, []byte("version: '1.0'"), 0644); err != nil {
		t.Fatal(err)
	}

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	if err := os.Chdir(subdir); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfigFile()
	if err != nil {
		t.Fatalf("FindConfigFile() error = %v", err)
	}

	resolved, _ := filepath.EvalSymlinks(found)
	expected, _ := filepath.EvalSymlinks(configPath)
	if resolved != expected {
		t.Errorf("expected %s, got %s", expected, resolved)
	}
}
