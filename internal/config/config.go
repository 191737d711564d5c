// Package config loads stencil configuration from file, environment,
// and defaults, with optional hot reload.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all stencil settings.
type Config struct {
	// Home is the root directory for stencil state.
	Home string `mapstructure:"home" yaml:"home"`

	// TemplateDir holds registered, cleaned template copies.
	TemplateDir string `mapstructure:"template_dir" yaml:"template_dir"`

	// StoreDir holds the template schema index.
	StoreDir string `mapstructure:"store_dir" yaml:"store_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`
}

// WatchConfig configures the template-directory watcher.
type WatchConfig struct {
	// Inbox receives new template .docx files.
	Inbox string `mapstructure:"inbox" yaml:"inbox"`

	// Done receives templates that registered cleanly.
	Done string `mapstructure:"done" yaml:"done"`

	// Review receives templates that failed registration.
	Review string `mapstructure:"review" yaml:"review"`

	// SettleMillis is how long a file must stop growing before it is
	// considered fully written.
	SettleMillis int `mapstructure:"settle_millis" yaml:"settle_millis"`
}

// DefaultConfig returns the built-in defaults rooted at home.
func DefaultConfig(home string) *Config {
	if home == "" {
		if userHome, err := os.UserHomeDir(); err == nil {
			home = filepath.Join(userHome, ".stencil")
		} else {
			home = ".stencil"
		}
	}
	return &Config{
		Home:        home,
		TemplateDir: filepath.Join(home, "templates"),
		StoreDir:    filepath.Join(home, "store"),
		LogLevel:    "info",
		Watch: WatchConfig{
			Inbox:        filepath.Join(home, "inbox"),
			Done:         filepath.Join(home, "done"),
			Review:       filepath.Join(home, "review"),
			SettleMillis: 500,
		},
	}
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile, home string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile, home); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile, home string) error {
	defaults := DefaultConfig(home)
	viper.SetDefault("home", defaults.Home)
	viper.SetDefault("template_dir", defaults.TemplateDir)
	viper.SetDefault("store_dir", defaults.StoreDir)
	viper.SetDefault("log_level", defaults.LogLevel)
	viper.SetDefault("watch.inbox", defaults.Watch.Inbox)
	viper.SetDefault("watch.done", defaults.Watch.Done)
	viper.SetDefault("watch.review", defaults.Watch.Review)
	viper.SetDefault("watch.settle_millis", defaults.Watch.SettleMillis)

	// Environment variables with STENCIL_ prefix
	viper.SetEnvPrefix("STENCIL")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.stencil")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// EnsureDirs creates every directory the configuration names.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{
		c.Home, c.TemplateDir, c.StoreDir,
		c.Watch.Inbox, c.Watch.Done, c.Watch.Review,
	} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path, home string) error {
	cfg := DefaultConfig(home)
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Stencil configuration
# Values may also be set via STENCIL_* environment variables.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
