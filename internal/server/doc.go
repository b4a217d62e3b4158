// Package server provides the HTTP routing, middleware and handlers of the read-only users API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] runs in the order it was added; the first added is outermost.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. Every route is
// registered as a method-qualified pattern ("GET /users/{id}"), so the mux answers
// other methods with 405.
//
// # Middleware
//
//   - [RequestID] : propagates or generates an X-Request-ID (google/uuid)
//   - [Logging] : one structured log line per request (charmbracelet/log)
//   - [Recover] : turns handler panics into a 500 JSON error
//
// # Endpoints
//
// [Health] serves GET /health : {"status":"ok"}. [UsersHandler] serves:
//   - GET /users?size=N : fetch and cache N users, return the batch
//   - GET /users/cached : the latest batch without fetching
//   - GET /users/{id} : {"user":...,"address":...}
//
// Errors render as {"error":"<message>"}; [StatusFor] maps them to 400, 404, 502, 504 or 500.
package server
