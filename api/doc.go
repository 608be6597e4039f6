// Package api exposes the command store over HTTP.
//
// Separation of Concerns
//
// The api package defines the public JSON shapes (types.go), maps them to and
// from model.Command field by field (mapper.go) and hosts the HTTP server.
// The db and model packages remain unaware of HTTP or JSON.
//
// Server
//
// NewServer wires handlers onto a ServeMux and configures timeouts. Each
// request takes its own db.Repository from the Store, stages its work and
// commits it with SaveChanges before answering.
//
// Error Model
//
// A missing command is a 404 with no body. Constraint violations, from a
// request body or from the result of a JSON Patch, are a 400 problem document
// listing messages per field. A failed commit is a 500 APIError; the mock
// store answers writes with 501.
//
// Endpoints
//
//   - GET    /api/commands
//   - GET    /api/commands/{id}
//   - POST   /api/commands
//   - PUT    /api/commands/{id}
//   - PATCH  /api/commands/{id}
//   - DELETE /api/commands/{id}
//   - GET    /healthz
//   - GET    /swagger/ and /swagger/v1/swagger.json
package api
