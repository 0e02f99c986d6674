package config

import (
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/vidsense/internal/report"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "vidsense"

	// DefaultEndpoint is the analyze endpoint of a backend started with its
	// default settings on the same machine.
	DefaultEndpoint = "http://127.0.0.1:8000/analyze"

	// DefaultTimeout of zero means requests are never cut short.
	// Analysis includes downloading and transcribing the video, which can
	// take many minutes, and the backend reports its own failures.
	DefaultTimeout time.Duration = 0

	// DefaultContentAnalysis matches the backend's default for requests that
	// omit content_analysis.
	DefaultContentAnalysis = true

	// DefaultFormat is the report format used when none is configured.
	DefaultFormat = "json"

	// DefaultListenAddress is where "vidsense serve" listens. Loopback only,
	// because the page proxies requests to the backend without
	// authentication.
	DefaultListenAddress = "127.0.0.1:8080"

	// DefaultUserAgent identifies vidsense in backend access logs.
	DefaultUserAgent = "vidsense/1.0 (+https://github.com/nao1215/vidsense)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// Reports list every analyzed comment, so 10MB leaves ample headroom
	// while preventing memory exhaustion.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB
)

// Config holds all configuration options for vidsense.
// This struct is populated from defaults, then the configuration file, then
// CLI flags, and is passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs.
// The number of options is small, and every command reads a subset of it.
type Config struct {
	// Endpoint is the backend's analyze URL. It must be an absolute http or
	// https URL. The health check URL is derived from it.
	Endpoint string

	// Timeout bounds each backend request. Zero means no timeout.
	Timeout time.Duration

	// ContentAnalysis is the initial state of the content analysis option.
	// When true the backend also transcribes and classifies the video itself.
	ContentAnalysis bool

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" format.
	// This is useful when the backend runs on a GPU host behind a bastion.
	ProxyAddress string

	// Headers are static HTTP headers sent with every backend request, for
	// example an Authorization header for a backend behind a gateway.
	Headers map[string]string

	// UserAgent is the User-Agent header sent with backend requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// Format is the report format: json, markdown or text.
	Format string

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// ListenAddress is the "host:port" the web front end listens on.
	ListenAddress string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the search order of FindConfigFile applies.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (endpoint, content
// analysis, body size). This also serves as documentation of the defaults.
func NewConfig() *Config {
	return &Config{
		Endpoint:        DefaultEndpoint,
		Timeout:         DefaultTimeout,
		ContentAnalysis: DefaultContentAnalysis,
		Headers:         make(map[string]string),
		UserAgent:       DefaultUserAgent,
		MaxBodySize:     DefaultMaxBodySize,
		Format:          DefaultFormat,
		ListenAddress:   DefaultListenAddress,
	}
}

// XDGConfigDir returns the XDG config directory for vidsense.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/vidsense
// On macOS: ~/Library/Application Support/vidsense
// On Windows: %APPDATA%\vidsense
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the configuration file path inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after flags are parsed, before any request is sent.
// The video URL is not validated here: an empty URL is reported by the
// form itself, exactly like in the browser.
func (c *Config) Validate() error {
	if !isHTTPURL(c.Endpoint) {
		return ErrInvalidEndpoint
	}

	// Zero disables the timeout; negative values are a typo
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.ProxyAddress != "" && !isHostPort(c.ProxyAddress, false) {
		return ErrInvalidProxyAddress
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if _, err := report.ParseFormat(c.Format); err != nil {
		return ErrInvalidFormat
	}

	// Port 0 picks a free port, which is handy for tests
	if c.ListenAddress != "" && !isHostPort(c.ListenAddress, true) {
		return ErrInvalidListenAddress
	}

	for name := range c.Headers {
		if name == "" {
			return ErrInvalidHeader
		}
	}

	return nil
}

// isHTTPURL reports whether s is an absolute http or https URL with a host.
func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isHostPort reports whether s is "host:port". An empty host is accepted
// only for listen addresses, where it means all interfaces.
func isHostPort(s string, listen bool) bool {
	host, port, err := net.SplitHostPort(s)
	if err != nil {
		return false
	}
	if host == "" && !listen {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	if listen {
		return n >= 0 && n <= 65535
	}
	return n >= 1 && n <= 65535
}
