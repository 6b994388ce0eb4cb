// Package config loads the application configuration.
//
// The file is the serverConfig.json document shipped next to the
// executable. YAML is a superset of JSON, so the same loader reads either
// form. Files with a .toml extension are read as TOML. Absent keys keep
// their defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up next to the executable.
const FileName = "serverConfig.json"

// Format selects the decoder for a configuration document.
type Format int

const (
	// FormatYAML reads YAML, and therefore JSON.
	FormatYAML Format = iota
	// FormatTOML reads TOML.
	FormatTOML
)

// FormatFor picks the format from the file extension of path.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"serverConfig" toml:"serverConfig"`
	Service ServiceConfig `yaml:"serviceConfig" toml:"serviceConfig"`
	Client  ClientConfig  `yaml:"clientConfig" toml:"clientConfig"`
}

// ServerConfig selects how the process runs.
type ServerConfig struct {
	// Headless defaults to the no-UI switch when unset.
	Headless      *bool `yaml:"headless,omitempty" toml:"headless"`
	SystemService bool  `yaml:"systemService" toml:"systemService"`
	AutoConnect   bool  `yaml:"autoConnect" toml:"autoConnect"`
}

// ServiceConfig describes the system service registration.
type ServiceConfig struct {
	Name        string `yaml:"name" toml:"name"`
	DisplayName string `yaml:"displayName" toml:"displayName"`
	Account     string `yaml:"serviceAccount" toml:"serviceAccount"`
	Password    string `yaml:"servicePassword" toml:"servicePassword"`
}

// ClientConfig prefills the connect form and sizes the window.
type ClientConfig struct {
	Server   string `yaml:"server" toml:"server"`
	Port     int    `yaml:"port" toml:"port"`
	AutoCall bool   `yaml:"autoCall" toml:"autoCall"`
	Width    int    `yaml:"width" toml:"width"`
	Height   int    `yaml:"height" toml:"height"`
}

// Validation errors.
var (
	ErrNoServiceName = errors.New("service name is empty")
	ErrInvalidPort   = errors.New("port out of range")
	ErrInvalidSize   = errors.New("window size must be positive")
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        "3DStreamingRenderingService",
			DisplayName: "3D Streaming Rendering Service",
			Account:     `NT AUTHORITY\NetworkService`,
		},
		Client: ClientConfig{
			Server: "localhost",
			Port:   8888,
			Width:  640,
			Height: 480,
		},
	}
}

// HeadlessOr returns the configured headless switch, or def when the file
// does not set it.
func (s ServerConfig) HeadlessOr(def bool) bool {
	if s.Headless == nil {
		return def
	}
	return *s.Headless
}

// DefaultPath returns FileName in the executable's directory.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), FileName), nil
}

// Load reads the configuration at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.WithFields(logrus.Fields{
			"function": "Load",
			"path":     path,
		}).Debug("No configuration file, using defaults")
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := Decode(data, FormatFor(path), cfg); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":       "Load",
		"path":           path,
		"system_service": cfg.Server.SystemService,
		"auto_connect":   cfg.Server.AutoConnect,
		"service":        cfg.Service.Name,
	}).Info("Configuration loaded")
	return cfg, nil
}

// Parse decodes YAML or JSON data over cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	return Decode(data, FormatYAML, cfg)
}

// Decode decodes data in the given format over cfg and validates the result.
func Decode(data []byte, format Format, cfg *Config) error {
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Validate checks cfg for values the application cannot run with.
func Validate(cfg *Config) error {
	if cfg.Service.Name == "" {
		return ErrNoServiceName
	}
	if cfg.Client.Port < 0 || cfg.Client.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Client.Port)
	}
	if cfg.Client.Width <= 0 || cfg.Client.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Client.Width, cfg.Client.Height)
	}
	return nil
}
