// Package main provides the entry point for the vidsense CLI.
//
// vidsense submits a video URL to a sentiment analysis backend and renders
// the report it returns. It can run one submission, read URLs from an
// interactive prompt, or serve the same form as a web page.
//
// Usage:
//
//	vidsense analyze <video-url>
//	vidsense analyze --interactive
//	vidsense serve
//
// See --help for all available options.
package main

// main is the entry point for vidsense.
func main() {
	Execute()
}
