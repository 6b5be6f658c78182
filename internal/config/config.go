// Package config provides configuration management for mcpgen using Viper.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/paths"
	"github.com/thoreinstein/mcpgen/internal/registry"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "MCPGEN"

// ConfigDirEnv names an extra directory searched for config.yaml first.
const ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"

// Default values.
const (
	DefaultRegistry  = "servers.yaml"
	DefaultEnvFile   = ".env"
	DefaultRetention = 5
)

// Config represents the top-level configuration structure.
type Config struct {
	Version   int                     `mapstructure:"version" yaml:"version"`
	Registry  string                  `mapstructure:"registry" yaml:"registry"`
	EnvFile   string                  `mapstructure:"env_file" yaml:"env_file"`
	Clients   map[string]ClientConfig `mapstructure:"clients" yaml:"clients"`
	Backup    BackupConfig            `mapstructure:"backup" yaml:"backup"`
	Overrides OverridesConfig         `mapstructure:"overrides" yaml:"overrides"`
}

// ClientConfig adjusts where and whether a client file is written.
type ClientConfig struct {
	Path    string `mapstructure:"path" yaml:"path"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
}

// BackupConfig controls backups taken before client files are replaced.
type BackupConfig struct {
	Enabled   bool `mapstructure:"enabled" yaml:"enabled"`
	Retention int  `mapstructure:"retention" yaml:"retention"`
	// Dir replaces the default <data home>/mcpgen/backups root.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// OverridesConfig extends the built-in exception tables, keyed by server id.
type OverridesConfig struct {
	Archetype map[string]string   `mapstructure:"archetype" yaml:"archetype"`
	Cmd       map[string][]string `mapstructure:"cmd" yaml:"cmd"`
}

// Init resets Viper and installs search paths, env binding and defaults.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), paths.AppName))

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("registry", DefaultRegistry)
	viper.SetDefault("env_file", DefaultEnvFile)
	viper.SetDefault("backup.enabled", true)
	viper.SetDefault("backup.retention", DefaultRetention)
	for _, c := range paths.Clients() {
		viper.SetDefault("clients."+c+".enabled", true)
		viper.SetDefault("clients."+c+".path", "")
	}
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when nothing is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Nothing in the search paths; defaults apply.
		case os.IsNotExist(err) || errors.As(err, &notFound):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Errs: errs}
	}
	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Version:  1,
		Registry: DefaultRegistry,
		EnvFile:  DefaultEnvFile,
		Clients:  make(map[string]ClientConfig),
		Backup:   BackupConfig{Enabled: true, Retention: DefaultRetention},
	}
	for _, c := range paths.Clients() {
		cfg.Clients[c] = ClientConfig{Enabled: true}
	}
	return cfg
}

// ClientPath returns the configured path for client, or its default
// location. A leading "~" is expanded.
func (c *Config) ClientPath(client string) string {
	if cc, ok := c.Clients[client]; ok && cc.Path != "" {
		return paths.ExpandHome(cc.Path)
	}
	return paths.ClientConfigPath(client)
}

// EnabledClients returns the clients that should be written, in emission
// order. A client missing from the map is enabled.
func (c *Config) EnabledClients() []string {
	var out []string
	for _, name := range paths.Clients() {
		if cc, ok := c.Clients[name]; ok && !cc.Enabled {
			continue
		}
		out = append(out, name)
	}
	return out
}

// ArchetypeOverrides converts the configured archetype overrides. Values
// are checked by Validate.
func (c *Config) ArchetypeOverrides() map[string]registry.Archetype {
	out := make(map[string]registry.Archetype, len(c.Overrides.Archetype))
	for id, v := range c.Overrides.Archetype {
		if a, err := registry.ParseArchetype(v); err == nil {
			out[id] = a
		}
	}
	return out
}

// CommandOverrides returns a copy of the configured cmd overrides.
func (c *Config) CommandOverrides() map[string][]string {
	out := make(map[string][]string, len(c.Overrides.Cmd))
	for id, args := range c.Overrides.Cmd {
		out[id] = slices.Clone(args)
	}
	return out
}
