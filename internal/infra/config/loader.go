// Package config provides configuration loading functionality.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/brutal/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Environment variables that override file settings.
const (
	EnvAPIURL      = "BRUTAL_API_URL"
	EnvAPITimeout  = "BRUTAL_API_TIMEOUT"
	EnvLogLevel    = "BRUTAL_LOG_LEVEL"
	EnvLogFile     = "BRUTAL_LOG_FILE"
	EnvListen      = "BRUTAL_LISTEN"
	EnvStore       = "BRUTAL_STORE"
	EnvStorePath   = "BRUTAL_STORE_PATH"
	EnvDatabaseURL = "BRUTAL_DATABASE_URL"
)

// knownKeys lists the accepted keys per section.
var knownKeys = map[string][]string{
	"api":    {"base_url", "timeout"},
	"log":    {"level", "file"},
	"server": {"listen", "store", "path", "database_url", "shutdown_timeout", "connect_timeout", "max_conns"},
	"tui":    {"show_help"},
}

// Loader loads configuration from TOML files, a .env file and the environment.
type Loader struct {
	getenv        func(string) string
	workDir       string // Directory holding .brutal.toml and .env
	globalConfDir string // Path to global config directory (e.g., ~/.config/brutal)
	stateDir      string // Base state directory for the default log file
}

// NewLoader creates a new Loader rooted at workDir.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: defaultGlobalConfigDir(),
		stateDir:      defaultStateDir(),
		getenv:        os.Getenv,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(workDir, globalConfDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: globalConfDir,
		stateDir:      defaultStateDir(),
		getenv:        os.Getenv,
	}
}

// WithGetenv replaces the environment lookup.
func (l *Loader) WithGetenv(getenv func(string) string) *Loader {
	l.getenv = getenv
	return l
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// defaultStateDir returns XDG_STATE_HOME or ~/.local/state.
func defaultStateDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return stateHome
}

// Load returns the effective configuration.
// Precedence: default <- global <- local <- .env <- environment.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	paths := []string{domain.LocalConfigPath(l.workDir)}
	if l.globalConfDir != "" {
		paths = append([]string{filepath.Join(l.globalConfDir, domain.ConfigFileName)}, paths...)
	}
	for _, path := range paths {
		if err := l.applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	env, err := l.environment()
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, env); err != nil {
		return nil, err
	}

	if cfg.Log.File == "" && l.stateDir != "" {
		cfg.Log.File = domain.DefaultLogPath(l.stateDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sort.Strings(cfg.Warnings)
	return cfg, nil
}

// applyFile decodes path over cfg. A missing file is skipped.
func (l *Loader) applyFile(cfg *domain.Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Warnings = append(cfg.Warnings, unknownKeyWarnings(raw)...)

	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// unknownKeyWarnings reports sections and keys the loader ignores.
func unknownKeyWarnings(raw map[string]any) []string {
	var warnings []string
	for section, value := range raw {
		keys, ok := knownKeys[section]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("section %s is not a table", section))
			continue
		}
		for k := range m {
			if !contains(keys, k) {
				warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, k))
			}
		}
	}
	return warnings
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// environment merges the .env file with the process environment.
// Process variables win over .env entries.
func (l *Loader) environment() (map[string]string, error) {
	env := map[string]string{}
	dotenv, err := godotenv.Read(filepath.Join(l.workDir, domain.DotEnvFileName))
	switch {
	case err == nil:
		for k, v := range dotenv {
			env[k] = v
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", domain.DotEnvFileName, err)
	}

	for _, key := range []string{
		EnvAPIURL, EnvAPITimeout, EnvLogLevel, EnvLogFile,
		EnvListen, EnvStore, EnvStorePath, EnvDatabaseURL,
	} {
		if v := l.getenv(key); v != "" {
			env[key] = v
		}
	}
	return env, nil
}

// applyEnv copies known variables onto cfg.
func applyEnv(cfg *domain.Config, env map[string]string) error {
	fields := map[string]*string{
		EnvAPIURL:      &cfg.API.BaseURL,
		EnvLogLevel:    &cfg.Log.Level,
		EnvLogFile:     &cfg.Log.File,
		EnvListen:      &cfg.Server.Listen,
		EnvStore:       &cfg.Server.Store,
		EnvStorePath:   &cfg.Server.Path,
		EnvDatabaseURL: &cfg.Server.DatabaseURL,
	}
	for key, dst := range fields {
		if v, ok := env[key]; ok && v != "" {
			*dst = v
		}
	}
	if v, ok := env[EnvAPITimeout]; ok && v != "" {
		if err := cfg.API.Timeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvAPITimeout, err)
		}
	}
	return nil
}
