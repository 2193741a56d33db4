package domain

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	API      APIConfig    `toml:"api"`
	Log      LogConfig    `toml:"log"`
	Server   ServerConfig `toml:"server"`
	TUI      TUIConfig    `toml:"tui"`
}

// APIConfig holds settings for the REST collaborator from [api] section.
type APIConfig struct {
	BaseURL string   `toml:"base_url"`          // Base URL; requests go to <base_url>/api/todos
	Timeout Duration `toml:"timeout,omitempty"` // Per-request timeout (0 = none)
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level"`          // debug, info, warn, error
	File  string `toml:"file,omitempty"` // Log file path (empty = default state dir)
}

// ServerConfig holds settings for `brutal serve` from [server] section.
type ServerConfig struct {
	Listen          string   `toml:"listen"`                 // Listen address
	Store           string   `toml:"store"`                  // "json" (default) or "postgres"
	Path            string   `toml:"path,omitempty"`         // JSON store file
	DatabaseURL     string   `toml:"database_url,omitempty"` // PostgreSQL URL for store = "postgres"
	ShutdownTimeout Duration `toml:"shutdown_timeout"`       // Graceful shutdown timeout
	ConnectTimeout  Duration `toml:"connect_timeout"`        // PostgreSQL connect and ping timeout
	MaxConns        int32    `toml:"max_conns"`              // PostgreSQL pool size
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// TUIConfig holds terminal UI settings from [tui] section.
type TUIConfig struct {
	ShowHelp bool `toml:"show_help"` // Show the key help bar
}

// Store backends.
const (
	StoreJSON     = "json"
	StorePostgres = "postgres"
)

// Default values.
const (
	DefaultBaseURL         = "http://localhost:5000"
	DefaultLogLevel        = "info"
	DefaultListen          = "127.0.0.1:5000"
	DefaultStorePath       = "todos.json"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultConnectTimeout  = 10 * time.Second
	DefaultMaxConns        = 4
	TodosPath              = "/api/todos"
)

// Config file names and directories.
const (
	ConfigFileName      = "config.toml" // Global config file name
	LocalConfigFileName = ".brutal.toml"
	DotEnvFileName      = ".env"
	AppDirName          = "brutal"
	LogFileName         = "brutal.log"
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// LocalConfigPath returns the local config path for a working directory.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, LocalConfigFileName)
}

// DefaultLogPath returns the default log file under a state directory.
func DefaultLogPath(stateHome string) string {
	return filepath.Join(stateHome, AppDirName, LogFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Server: ServerConfig{
			Listen:          DefaultListen,
			Store:           StoreJSON,
			Path:            DefaultStorePath,
			ShutdownTimeout: Duration(DefaultShutdownTimeout),
			ConnectTimeout:  Duration(DefaultConnectTimeout),
			MaxConns:        DefaultMaxConns,
		},
		TUI: TUIConfig{
			ShowHelp: true,
		},
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Server.Store {
	case StoreJSON, StorePostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Server.Store)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.Server.MaxConns < 1 {
		return fmt.Errorf("server.max_conns must be at least 1")
	}
	if c.Server.ConnectTimeout <= 0 {
		return fmt.Errorf("server.connect_timeout must be positive")
	}
	return nil
}

// ConfigTemplate returns the commented template written by `config init`.
func ConfigTemplate() string {
	return configTemplateContent
}

// Duration is a time.Duration encoded as a Go duration string ("5s").
type Duration time.Duration

// Std returns the value as time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(v)
	return nil
}
