package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/ailink/internal/branding"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys. Dotted keys map to nested YAML and to underscored env vars
// (log.level → AILINK_LOG_LEVEL).
const (
	KeyYes           = "yes"
	KeyCanonical     = "canonical"
	KeyIgnoreFile    = "ignore_file"
	KeyNoTUI         = "no_tui"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyLogMaxSizeMB  = "log.max_size_mb"
	KeyLogMaxBackups = "log.max_backups"
)

// Keys lists every setting that config get and config set accept.
func Keys() []string {
	return []string{
		KeyYes,
		KeyCanonical,
		KeyIgnoreFile,
		KeyNoTUI,
		KeyLogLevel,
		KeyLogFile,
		KeyLogMaxSizeMB,
		KeyLogMaxBackups,
	}
}

// IsKey reports whether key is a known setting.
func IsKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Dir returns the path to the config directory (~/.ailink/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.ailink/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes viper defaults and reads the config file and environment.
func Load() {
	viper.SetDefault(KeyYes, false)
	viper.SetDefault(KeyCanonical, branding.CanonicalFile())
	viper.SetDefault(KeyIgnoreFile, branding.IgnoreFile())
	viper.SetDefault(KeyNoTUI, false)
	viper.SetDefault(KeyLogLevel, "")
	viper.SetDefault(KeyLogFile, "")
	viper.SetDefault(KeyLogMaxSizeMB, 5)
	viper.SetDefault(KeyLogMaxBackups, 3)

	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// MergeProject layers project-file values above the user config file.
// Flags and environment variables still take precedence.
func MergeProject(values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	if err := viper.MergeConfigMap(values); err != nil {
		return fmt.Errorf("merging project settings: %w", err)
	}
	return nil
}

// BindFlag wires a cobra flag to a config key so that an explicitly set flag
// overrides the environment and config files.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("flag for config key %q not found", key)
	}
	return viper.BindPFlag(key, flag)
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetInt returns an integer config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// Set writes a config key-value pair and saves the config file. Only keys
// already in the file and the one being set are written; defaults, flags and
// environment values stay out of it.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	file.Set(key, value)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, value)
	return nil
}
