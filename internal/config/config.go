package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AIConfig points at the OpenAI-compatible endpoint used for summaries and
// command parsing. An empty APIKey disables the model entirely; the server
// then relies on local fallbacks.
type AIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

type Config struct {
	// DataDir holds the key-value store.
	DataDir string `mapstructure:"data_dir"`
	// ExportDir receives exported workbooks and PDFs.
	ExportDir string `mapstructure:"export_dir"`
	// DatabaseFile, if it exists at startup, is imported and the server
	// switches to workbook mode.
	DatabaseFile string `mapstructure:"database_file"`
	// DefaultMode applies until a mode has been persisted.
	DefaultMode string `mapstructure:"default_mode"`
	AI          AIConfig `mapstructure:"ai"`
}

// Load reads config.yaml from ~/.contracts-mcp (or the working directory),
// with CONTRACTS_* environment overrides. A missing file is fine; defaults
// cover everything.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	base := filepath.Join(home, ".contracts-mcp")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(base)
	v.AddConfigPath(".")

	v.SetEnvPrefix("CONTRACTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", base)
	v.SetDefault("export_dir", filepath.Join(home, "Downloads"))
	v.SetDefault("database_file", filepath.Join(base, "database.xlsx"))
	v.SetDefault("default_mode", "local")
	v.SetDefault("ai.model", "gpt-4o-mini")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
