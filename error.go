package llmfeeder

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These map to the failure kinds a caller can react to. Anything that is not
// an *Error is reported as EINTERNAL.
const (
	ENOCONTENT   = "no_content"
	ENOSELECTION = "no_selection"
	ETIMEOUT     = "timeout"
	EPERMISSION  = "permission_denied"
	EINTERNAL    = "internal"
	EALLFAILED   = "all_failed"
	EINVALID     = "invalid"
	EBUSY        = "busy"
	ENOTFOUND    = "not_found"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("llmfeeder error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// UserMessage returns the short, user-facing text for an error code.
func UserMessage(code string) string {
	switch code {
	case ENOCONTENT:
		return "No content could be extracted from this page."
	case ENOSELECTION:
		return "No text is selected. Please select text or use a different content scope."
	case ETIMEOUT:
		return "Conversion timed out. The page might be too large."
	case EPERMISSION:
		return "Permission denied. Please check extension permissions."
	case EALLFAILED:
		return "No tabs were successfully converted."
	case EBUSY:
		return "A conversion is already running for this page."
	case EINVALID:
		return "Invalid request."
	case ENOTFOUND:
		return "Not found."
	default:
		return "An error occurred during conversion."
	}
}
