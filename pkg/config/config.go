// Package config loads moddeps settings from defaults, an optional TOML
// config file, MODDEPS_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/moddeps/pkg/errors"
	"github.com/matzehuels/moddeps/pkg/manifest"
	"github.com/matzehuels/moddeps/pkg/scan"
)

const (
	// AppName is the application name used for directories and env vars.
	AppName = "moddeps"
	// FileName is the config file name looked up in Dir.
	FileName = "config.toml"
	// EnvPrefix prefixes environment overrides (MODDEPS_MANDATORY_ONLY=true).
	EnvPrefix = "MODDEPS"
)

// Config keys, shared by the file, env vars and flag bindings.
const (
	KeyExtensions     = "extensions"
	KeyExcluded       = "excluded"
	KeyMandatoryOnly  = "mandatory_only"
	KeyForgeManifest  = "forge_manifest"
	KeyFabricManifest = "fabric_manifest"
)

// Config holds every user-tunable setting.
type Config struct {
	Extensions     []string `mapstructure:"extensions" toml:"extensions"`
	Excluded       []string `mapstructure:"excluded" toml:"excluded"`
	MandatoryOnly  bool     `mapstructure:"mandatory_only" toml:"mandatory_only"`
	ForgeManifest  string   `mapstructure:"forge_manifest" toml:"forge_manifest"`
	FabricManifest string   `mapstructure:"fabric_manifest" toml:"fabric_manifest"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Extensions:     append([]string(nil), scan.DefaultExtensions...),
		Excluded:       manifest.DefaultExcluded(),
		MandatoryOnly:  false,
		ForgeManifest:  manifest.DefaultForgeFile,
		FabricManifest: manifest.DefaultFabricFile,
	}
}

// ManifestOptions converts the config into parser options.
func (c Config) ManifestOptions() manifest.Options {
	return manifest.Options{
		ForgeFile:     c.ForgeManifest,
		FabricFile:    c.FabricManifest,
		Excluded:      c.Excluded,
		MandatoryOnly: c.MandatoryOnly,
	}
}

// Dir returns the configuration directory using XDG conventions
// (~/.config/moddeps/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// Dir overrides the directory searched for FileName when Path is empty.
	Dir string
	// Flags maps config keys to command-line flags. A flag only overrides
	// the file and env when it was set explicitly.
	Flags map[string]*pflag.Flag
}

// Load resolves the configuration and returns it together with the config
// file that was read (empty when defaults were used).
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault(KeyExtensions, defaults.Extensions)
	v.SetDefault(KeyExcluded, defaults.Excluded)
	v.SetDefault(KeyMandatoryOnly, defaults.MandatoryOnly)
	v.SetDefault(KeyForgeManifest, defaults.ForgeManifest)
	v.SetDefault(KeyFabricManifest, defaults.FabricManifest)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path, err := resolvePath(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
	}

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "bind flag %s", flag.Name)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, path, nil
}

func resolvePath(opts LoadOptions) (string, error) {
	if opts.Path != "" {
		if !fileExists(opts.Path) {
			return "", errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", opts.Path)
		}
		return opts.Path, nil
	}

	dir := opts.Dir
	if dir == "" {
		d, err := Dir()
		if err != nil {
			// No home directory: run on defaults.
			return "", nil
		}
		dir = d
	}
	if p := filepath.Join(dir, FileName); fileExists(p) {
		return p, nil
	}
	return "", nil
}

// Validate rejects settings that would make every scan empty.
func (c Config) Validate() error {
	if len(c.Extensions) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s must list at least one archive extension", KeyExtensions)
	}
	if strings.TrimSpace(c.ForgeManifest) == "" || strings.TrimSpace(c.FabricManifest) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "manifest file names must not be empty")
	}
	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
