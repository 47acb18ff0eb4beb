// Package config handles lifeboard configuration parsing and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the lifeboard.yaml configuration file.
type Config struct {
	Version   string          `yaml:"version"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Providers ProvidersConfig `yaml:"providers"`
	Display   DisplayConfig   `yaml:"display"`
	Goals     GoalsConfig     `yaml:"goals"`
}

// WorkspaceConfig names the files the refresh pass reads and rewrites.
type WorkspaceConfig struct {
	Document  string `yaml:"document"`
	Snapshot  string `yaml:"snapshot"`
	Activity  string `yaml:"activity"`
	HistoryDB string `yaml:"history_db"`
}

// ProvidersConfig configures the external data sources. Command entries
// are space-separated invocations run with a per-call timeout; path
// entries are read from disk.
type ProvidersConfig struct {
	TasksCommand         string `yaml:"tasks_command"`
	PriorityTasksCommand string `yaml:"priority_tasks_command"`
	CronCommand          string `yaml:"cron_command"`
	BodyCommand          string `yaml:"body_command"`
	SessionsPath         string `yaml:"sessions_path"`
	SessionLabelsPath    string `yaml:"session_labels_path"`
	AwaitingPath         string `yaml:"awaiting_path"`
	GoalsPath            string `yaml:"goals_path"`
	QueuePath            string `yaml:"queue_path"`
	TimeoutSeconds       int    `yaml:"timeout_seconds"`
}

// Timeout returns the per-provider call timeout.
func (p ProvidersConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// DisplayConfig caps how many entries each rendered list shows.
type DisplayConfig struct {
	CronLimit      int `yaml:"cron_limit"`
	TaskLimit      int `yaml:"task_limit"`
	SessionLimit   int `yaml:"session_limit"`
	ActivityLimit  int `yaml:"activity_limit"`
	AttentionLimit int `yaml:"attention_limit"`
}

// GoalsConfig holds the quarter deadline and the rock-number to
// goal-category table. The table is configuration data, not logic: a
// rock may appear under several categories.
type GoalsConfig struct {
	Deadline   string           `yaml:"deadline"` // YYYY-MM-DD
	Categories map[string][]int `yaml:"categories"`
}

// DeadlineTime parses the configured deadline, zero time when unset or
// malformed.
func (g GoalsConfig) DeadlineTime() time.Time {
	t, err := time.Parse("2006-01-02", g.Deadline)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Workspace: WorkspaceConfig{
			Document:  "dashboard.html",
			Snapshot:  ".lifeboard/snapshot.json",
			Activity:  ".lifeboard/activity.json",
			HistoryDB: ".lifeboard/history.db",
		},
		Providers: ProvidersConfig{
			TimeoutSeconds: 30,
		},
		Display: DisplayConfig{
			CronLimit:      6,
			TaskLimit:      5,
			SessionLimit:   8,
			ActivityLimit:  10,
			AttentionLimit: 10,
		},
		Goals: GoalsConfig{
			Categories: map[string][]int{
				"income":       {1, 2, 3},
				"body":         {4, 5},
				"relationship": {6},
				"freedom":      {7, 8},
			},
		},
	}
}

// Load reads and parses the lifeboard.yaml config file. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "lifeboard.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Workspace.Document == "" {
		return fmt.Errorf("workspace.document must be set")
	}
	if c.Workspace.Snapshot == "" {
		return fmt.Errorf("workspace.snapshot must be set")
	}
	if c.Workspace.Activity == "" {
		return fmt.Errorf("workspace.activity must be set")
	}
	for name, numbers := range c.Goals.Categories {
		for _, n := range numbers {
			if n < 1 {
				return fmt.Errorf("goal category %s references invalid rock number %d", name, n)
			}
		}
	}
	return nil
}

// FindConfigFile searches for lifeboard.yaml in current and parent
// directories.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := cwd; ; dir = filepath.Dir(dir) {
		configPath := filepath.Join(dir, "lifeboard.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		if dir == filepath.Dir(dir) {
			break
		}
	}

	return "", fmt.Errorf("lifeboard.yaml not found in %s or parent directories", cwd)
}
