// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of sensitive values (headers, tokens, URL passwords)
//   - Configurable log levels with verbose mode support
//   - Readable terminal output through charmbracelet/log
//   - JSON output for the long-running web front end
//
// # Security Features
//
// vidsense can send static headers to the analysis backend, typically an
// Authorization header or an API key for a backend behind a gateway. The
// SecureHandler masks them wherever they appear in log output:
//   - Attributes whose key names a credential (authorization, x-api-key, ...)
//   - Values that look like a credential (bearer tokens, JWTs, long keys)
//   - Header maps, where only the sensitive entries are masked
//   - URLs with a password in their user info
//
// Even in verbose mode, sensitive values are masked to prevent accidental
// exposure of secrets in logs that may be shared or stored.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("backend configured",
//	    "endpoint", "https://user:pw@gpu.example.com/analyze", // password masked
//	    "headers", map[string]string{"Authorization": "Bearer abc"}, // value masked
//	)
//	slog.SetDefault(logger)
package log
