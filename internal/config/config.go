// Package config resolves where transcripts live and the interactive
// tunables. Precedence: flags (handled by the CLI) over the config file over
// environment detection over defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	// ProjectsDir is the conversation-log root, normally ~/.claude/projects.
	ProjectsDir string
	// LogDir holds the rotating log files.
	LogDir string
	// ExportDir is where `show` writes extracted markdown.
	ExportDir string

	DebounceMS int
	PollMS     int
	MaxResults int
	LogLevel   string
}

// Load reads ~/.config/claude-sessions/config.yaml when present and fills in
// detection-based defaults for everything unset. A missing config file is
// not an error.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(home, ".config", "claude-sessions"))
	v.SetEnvPrefix("CLAUDE_SESSIONS")
	v.AutomaticEnv()

	v.SetDefault("debounce_ms", 300)
	v.SetDefault("poll_ms", 50)
	v.SetDefault("max_results", 20)
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		ProjectsDir: v.GetString("projects_dir"),
		LogDir:      v.GetString("log_dir"),
		ExportDir:   v.GetString("export_dir"),
		DebounceMS:  v.GetInt("debounce_ms"),
		PollMS:      v.GetInt("poll_ms"),
		MaxResults:  v.GetInt("max_results"),
		LogLevel:    v.GetString("log_level"),
	}

	if cfg.ProjectsDir == "" {
		cfg.ProjectsDir = DetectProjectsDir("")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(home, ".local", "share", "claude-sessions")
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = filepath.Join(home, "claude-sessions")
	}
	return cfg, nil
}

// DetectProjectsDir resolves the transcript root: an explicit path wins,
// then $CLAUDE_HOME/projects, then ~/.claude/projects.
func DetectProjectsDir(explicit string) string {
	if explicit != "" {
		return filepath.Clean(explicit)
	}
	if fromEnv := os.Getenv("CLAUDE_HOME"); fromEnv != "" {
		return filepath.Join(filepath.Clean(fromEnv), "projects")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude", "projects")
}
