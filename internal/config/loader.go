package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".vidsense"

// File represents the structure of the .vidsense configuration file.
// Every field is optional; unset fields keep the value they had before the
// file was applied.
type File struct {
	// Endpoint is the backend's analyze URL.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Timeout is a Go duration string such as "90s" or "10m".
	Timeout string `yaml:"timeout,omitempty"`

	// ContentAnalysis is a pointer so that an explicit false is kept.
	ContentAnalysis *bool `yaml:"contentAnalysis,omitempty"`

	// Proxy is a SOCKS5 proxy address in "host:port" format.
	Proxy string `yaml:"proxy,omitempty"`

	// Headers are custom HTTP headers sent with every backend request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// UserAgent overrides the default User-Agent.
	UserAgent string `yaml:"userAgent,omitempty"`

	// MaxBodySize is the response body limit in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`

	// Format is the report format: json, markdown or text.
	Format string `yaml:"format,omitempty"`

	// Output is the report file path.
	Output string `yaml:"output,omitempty"`

	// Listen is the web front end's listen address.
	Listen string `yaml:"listen,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Headers == nil {
		cf.Headers = make(map[string]string)
	}

	return &cf, nil
}

// Apply copies every set field of cf into c.
// Headers are merged, with the file's values winning.
func (cf *File) Apply(c *Config) error {
	if cf.Endpoint != "" {
		c.Endpoint = cf.Endpoint
	}
	if cf.Timeout != "" {
		d, err := time.ParseDuration(cf.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, cf.Timeout)
		}
		c.Timeout = d
	}
	if cf.ContentAnalysis != nil {
		c.ContentAnalysis = *cf.ContentAnalysis
	}
	if cf.Proxy != "" {
		c.ProxyAddress = cf.Proxy
	}
	if len(cf.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		for k, v := range cf.Headers {
			c.Headers[k] = v
		}
	}
	if cf.UserAgent != "" {
		c.UserAgent = cf.UserAgent
	}
	if cf.MaxBodySize != 0 {
		c.MaxBodySize = cf.MaxBodySize
	}
	if cf.Format != "" {
		c.Format = cf.Format
	}
	if cf.Output != "" {
		c.ReportFile = cf.Output
	}
	if cf.Listen != "" {
		c.ListenAddress = cf.Listen
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .vidsense in the current directory
// 3. Look for .vidsense in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	// Check XDG config directory
	if _, err := os.Stat(XDGConfigFile()); err == nil {
		return XDGConfigFile()
	}

	return ""
}

// Load finds and applies the configuration file to c.
// A missing file is an error only when c.ConfigFilePath was set explicitly.
// It returns the path of the applied file, or "" if none was found.
func Load(c *Config) (string, error) {
	path := FindConfigFile(c.ConfigFilePath)
	if path == "" {
		if c.ConfigFilePath != "" {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, c.ConfigFilePath)
		}
		return "", nil
	}

	cf, err := LoadConfigFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if err := cf.Apply(c); err != nil {
		return "", fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return path, nil
}
