// Package client talks to the video sentiment analysis backend over HTTP.
//
// The backend exposes two endpoints:
//   - POST /analyze with {"url": "...", "content_analysis": bool}
//   - GET /health returning {"status": "ok"}
//
// Client.Analyze implements form.Analyzer: a 2xx response yields the raw
// report, anything else yields an *APIError carrying the backend's detail
// message (or "Analysis failed.").
//
// # Transport
//
// Requests go out directly by default. WithProxy routes them through a SOCKS5
// proxy instead (for example an SSH tunnel to a remote GPU box running the
// backend). WithHeaders injects static headers into every request, which is
// how credentials for a backend behind an authenticating reverse proxy are
// supplied.
//
// Design decision: No timeout is applied unless WithTimeout is given. A
// submission waits for the backend for as long as it takes, because
// transcription of long videos can run for many minutes.
package client
