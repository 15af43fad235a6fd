package common

import "fmt"

// FormatError reports a malformed scoring-table line or database record.
// It always aborts the load that produced it.
type FormatError struct {
	Source string // file name or record id
	Line   int    // 1-based line number, 0 when not line oriented
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("format error in %s line %d: %s", e.Source, e.Line, msg)
	case e.Source != "":
		return fmt.Sprintf("format error in %s: %s", e.Source, msg)
	case e.Line > 0:
		return fmt.Sprintf("format error on line %d: %s", e.Line, msg)
	}
	return "format error: " + msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
