package api

import "time"

// Public JSON types. The create and update shapes carry no ID so a client can
// never choose or overwrite one.

// CommandReadDto is the response shape of a stored command.
type CommandReadDto struct {
	ID       int    `json:"id"`
	HowTo    string `json:"howTo"`
	Line     string `json:"line"`
	Platform string `json:"platform"`
}

// CommandCreateDto is the request body of POST /api/commands.
type CommandCreateDto struct {
	HowTo    string `json:"howTo" validate:"required,max=250"`
	Line     string `json:"line" validate:"required"`
	Platform string `json:"platform" validate:"required"`
}

// CommandUpdateDto is the request body of PUT and the document a PATCH is applied to.
type CommandUpdateDto struct {
	HowTo    string `json:"howTo" validate:"required,max=250"`
	Line     string `json:"line" validate:"required"`
	Platform string `json:"platform" validate:"required"`
}

// APIError is the payload for failures that are not validation problems.
type APIError struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"` // RFC3339
}

// ValidationProblem lists violated constraints per field.
type ValidationProblem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

// TimeNow abstracts time for tests.
var TimeNow = func() time.Time { return time.Now() }
