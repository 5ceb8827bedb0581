// Package http exposes keyed menu sessions as a JSON API on a chi router.
//
// Routes:
//
//	POST   /sessions               launch a session
//	GET    /sessions/{id}          current output and state
//	POST   /sessions/{id}/input    submit one input, returns output and diff
//	DELETE /sessions/{id}          close a session
//	GET    /sessions/{id}/events   server-sent session diffs
//	GET    /graph                  registered nodes
//	GET    /health, /info          liveness and build info
//	GET    /metrics                Prometheus metrics, when configured
package http
