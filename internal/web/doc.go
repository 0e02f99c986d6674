// Package web serves the analysis form to a browser.
//
// The page at "/" runs the same submission sequence as the terminal form.
// Its script posts to "/analyze" on the same origin, and the server
// forwards the body to the analysis backend unchanged and relays the
// response. The browser therefore never talks to the backend directly and
// no CORS configuration is needed.
//
// The server also exposes "/health", which checks the backend, and
// "/metrics" in the Prometheus text format.
package web
