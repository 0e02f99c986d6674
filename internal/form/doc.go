// Package form implements the video analysis submission handler.
//
// A Handler is bound to six UI element handles: the URL input, the content
// analysis checkbox, the submit control, the loading indicator, the error
// region and the report region. Submit runs one submission:
//
//  1. clear the error and report regions
//  2. read the URL and the checkbox
//  3. reject an empty URL without touching the network
//  4. switch to the busy state (inputs disabled, indicator visible)
//  5. post the request through the Analyzer
//  6. render the report, or the error message
//  7. switch back to the idle state
//
// Design decision: Elements are injected as small interfaces instead of being
// looked up by identifier. The same Handler drives the terminal bindings in
// package console and is mirrored by the browser page in package web.
//
// The handler does not prevent concurrent submissions. Front ends rely on the
// disabled submit control to keep a single request in flight.
package form
