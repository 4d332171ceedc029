package jsdoc

import "errors"

// Sentinel errors returned by the formatter.
var (
	ErrInvalidOption = errors.New("invalid option")
	ErrParse         = errors.New("parse source")
	ErrFormatCode    = errors.New("format example code")
	ErrAliasConflict = errors.New("alias conflict")
	ErrConfigFile    = errors.New("config file")
)

// Diagnostic is a non-fatal finding scoped to one comment.
type Diagnostic struct {
	Err error
	// Tag is the logical tag the finding refers to.
	Tag string
	// Line is the 1-based line of the comment in its source, or 0 when
	// unknown.
	Line int
}

// Error implements error.
func (d Diagnostic) Error() string {
	return d.Err.Error()
}

// Unwrap returns the underlying error.
func (d Diagnostic) Unwrap() error {
	return d.Err
}
