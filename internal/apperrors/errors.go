// Package apperrors defines the error taxonomy shared by the HTTP handlers
// and the operator tools. Lower layers wrap these sentinels with %w; callers
// classify with errors.Is.
package apperrors

import "errors"

// ErrValidation means a request field was malformed or unparsable
// (e.g. a date that does not parse). Handlers map it to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrStorage means a read or write against the record store failed.
// Handlers map it to HTTP 500.
var ErrStorage = errors.New("storage error")

// ErrParse means a bulk-import file was malformed. Only the operator tools
// see it; nothing is committed when it occurs.
var ErrParse = errors.New("parse error")

// ErrExport means spreadsheet generation or writing failed.
// Handlers map it to HTTP 500.
var ErrExport = errors.New("export error")
