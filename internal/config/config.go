package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete vslaunch configuration
type Config struct {
	Editor   EditorConfig   `mapstructure:"editor" yaml:"editor"`
	Instance InstanceConfig `mapstructure:"instance" yaml:"instance"`
	Spawn    SpawnConfig    `mapstructure:"spawn" yaml:"spawn"`
	Solution SolutionConfig `mapstructure:"solution" yaml:"solution"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// EditorConfig describes the editor binary and how its instances are named
// in the instance registry
type EditorConfig struct {
	// Executable is the editor binary started when no instance can be reused (default: "devenv.exe")
	Executable string `mapstructure:"executable" yaml:"executable"`
	// Args are extra arguments passed to Executable when spawning
	Args []string `mapstructure:"args" yaml:"args"`
	// RegistryPrefix is the identity prefix shared by all editor entries in the registry
	RegistryPrefix string `mapstructure:"registry_prefix" yaml:"registry_prefix"`
	// WindowTitleSuffix is what a freshly spawned editor's main window title ends with once it is up
	WindowTitleSuffix string `mapstructure:"window_title_suffix" yaml:"window_title_suffix"`
}

// InstanceConfig controls how discovered instances are initialized
type InstanceConfig struct {
	// InitMaxRetries is how many times a failed solution read is retried (default: 40)
	InitMaxRetries int `mapstructure:"init_max_retries" yaml:"init_max_retries"`
	// InitRetryIntervalMs is the pause between solution reads in milliseconds (default: 100)
	InitRetryIntervalMs int `mapstructure:"init_retry_interval_ms" yaml:"init_retry_interval_ms"`
	// InitConcurrency bounds how many instances are initialized in parallel (default: 1).
	// Windows only accepts 1: DTE objects must be called from the thread that
	// enumerated them.
	InitConcurrency int `mapstructure:"init_concurrency" yaml:"init_concurrency"`
}

// SpawnConfig controls how a new editor process is waited on
type SpawnConfig struct {
	// MaxRetries is how many times the window title is re-checked (default: 60)
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`
	// RetryIntervalMs is the pause between window title checks in milliseconds (default: 100)
	RetryIntervalMs int `mapstructure:"retry_interval_ms" yaml:"retry_interval_ms"`
	// SettleDelayMs is how long to wait after the window appears before the
	// registry lookup (default: 1000)
	SettleDelayMs int `mapstructure:"settle_delay_ms" yaml:"settle_delay_ms"`
}

// SolutionConfig controls solution auto-location
type SolutionConfig struct {
	// Patterns are glob patterns matched against file names while walking up
	// from the target file (default: ["*.sln"])
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
	// Autofind looks for a parent solution when none is given (default: true)
	Autofind bool `mapstructure:"autofind" yaml:"autofind"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is written (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the directory holding vslaunch.log (default: the config directory)
	Dir string `mapstructure:"dir" yaml:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Executable:        "devenv.exe",
			Args:              []string{},
			RegistryPrefix:    "!VisualStudio.DTE",
			WindowTitleSuffix: "Visual Studio",
		},
		Instance: InstanceConfig{
			InitMaxRetries:      40,
			InitRetryIntervalMs: 100,
			InitConcurrency:     1, // DTE objects are apartment-bound; parallel use is opt-in
		},
		Spawn: SpawnConfig{
			MaxRetries:      60,
			RetryIntervalMs: 100,
			SettleDelayMs:   1000,
		},
		Solution: SolutionConfig{
			Patterns: []string{"*.sln"},
			Autofind: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        "", // Empty means ConfigDir()
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// InitRetryInterval returns the init retry interval as a time.Duration
func (c *InstanceConfig) InitRetryInterval() time.Duration {
	return time.Duration(c.InitRetryIntervalMs) * time.Millisecond
}

// RetryInterval returns the window title poll interval as a time.Duration
func (c *SpawnConfig) RetryInterval() time.Duration {
	return time.Duration(c.RetryIntervalMs) * time.Millisecond
}

// SettleDelay returns the post-window settle delay as a time.Duration
func (c *SpawnConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// ResolveDir returns the log directory, falling back to ConfigDir()
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir == "" {
		return ConfigDir()
	}
	return expandHome(c.Dir)
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Editor defaults
	viper.SetDefault("editor.executable", defaults.Editor.Executable)
	viper.SetDefault("editor.args", defaults.Editor.Args)
	viper.SetDefault("editor.registry_prefix", defaults.Editor.RegistryPrefix)
	viper.SetDefault("editor.window_title_suffix", defaults.Editor.WindowTitleSuffix)

	// Instance defaults
	viper.SetDefault("instance.init_max_retries", defaults.Instance.InitMaxRetries)
	viper.SetDefault("instance.init_retry_interval_ms", defaults.Instance.InitRetryIntervalMs)
	viper.SetDefault("instance.init_concurrency", defaults.Instance.InitConcurrency)

	// Spawn defaults
	viper.SetDefault("spawn.max_retries", defaults.Spawn.MaxRetries)
	viper.SetDefault("spawn.retry_interval_ms", defaults.Spawn.RetryIntervalMs)
	viper.SetDefault("spawn.settle_delay_ms", defaults.Spawn.SettleDelayMs)

	// Solution defaults
	viper.SetDefault("solution.patterns", defaults.Solution.Patterns)
	viper.SetDefault("solution.autofind", defaults.Solution.Autofind)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vslaunch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vslaunch"
	}
	return filepath.Join(home, ".config", "vslaunch")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

func expandHome(path string) string {
	if len(path) < 2 || path[0] != '~' || (path[1] != '/' && path[1] != '\\') {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
