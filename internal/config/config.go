package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Catalog source
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`

	// Metrics
	TopCountries int `mapstructure:"top_countries" yaml:"top_countries"`
	TopGenres    int `mapstructure:"top_genres" yaml:"top_genres"`

	// Row table
	DefaultColumns []string `mapstructure:"default_columns" yaml:"default_columns"`
	RowLimit       int      `mapstructure:"row_limit" yaml:"row_limit"`

	// Logging; an empty LogFile logs to stderr
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultColumns mirrors the table shown by the dashboard.
var DefaultColumns = []string{"title", "type", "release_year", "country", "duration"}

// Keys lists the settable configuration keys.
var Keys = []string{"data_path", "delimiter", "sheet_name", "top_countries", "top_genres", "default_columns", "row_limit", "log_file", "log_level"}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".catalogdash"), nil
}

// Path returns the file Save writes to for cfgFile.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.catalogdash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CATALOGDASH")
	v.AutomaticEnv()

	v.SetDefault("data_path", filepath.Join("data", "netflix_titles.csv"))
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("top_countries", 10)
	v.SetDefault("top_genres", 5)
	v.SetDefault("default_columns", DefaultColumns)
	v.SetDefault("row_limit", 0)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "ERROR")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(c.DefaultColumns) == 0 {
		c.DefaultColumns = append([]string(nil), DefaultColumns...)
	}
	return &c, nil
}

// DelimiterRune returns the configured delimiter, or 0 to pick one from the file extension.
// "\t" and "tab" select a tab.
func (c *Global) DelimiterRune() rune {
	switch c.Delimiter {
	case "":
		return 0
	case `\t`, "tab", "\t":
		return '\t'
	}
	return []rune(c.Delimiter)[0]
}
