// Package config provides configuration structures and utilities for vidsense.
// It defines how the analysis backend is reached, how reports are rendered,
// and where the web front end listens.
package config
