package parser

import (
	"errors"
	"fmt"
)

// Reason classifies why a timer file could not be parsed
type Reason string

const (
	ReasonUnreadable   Reason = "unreadable file"
	ReasonMalformedCSV Reason = "malformed csv"
	ReasonShortRow     Reason = "too few columns"
	ReasonBadStep      Reason = "invalid step"
	ReasonBadTimestamp Reason = "invalid timestamp"
	ReasonBadDuration  Reason = "invalid duration"
)

// ParseError reports a timer file that could not be turned into records
type ParseError struct {
	Path   string
	Line   int // 1-based physical line, 0 when not tied to a line
	Reason Reason
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.Path, e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err carries a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
