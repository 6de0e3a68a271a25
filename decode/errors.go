package decode

import (
	"fmt"
	"strings"
)

// maxToken bounds how much of an offending value is kept on an Error.
const maxToken = 64

// Error describes a value that did not match the expected schema.
type Error struct {
	// Pointer is the RFC 6901 JSON pointer of the offending value.
	Pointer string
	// Expected names the kind the decoder wanted, e.g. "string" or
	// "enum Weekday".
	Expected string
	// Got names the kind that was found, when it differs from Expected.
	Got string
	// Token is the offending raw token, truncated.
	Token string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("decode")
	if e.Pointer != "" {
		fmt.Fprintf(&b, " %s", e.Pointer)
	}
	switch {
	case e.Err != nil && e.Expected == "":
		fmt.Fprintf(&b, ": %v", e.Err)
		return b.String()
	case e.Got != "":
		fmt.Fprintf(&b, ": expected %s, got %s", e.Expected, e.Got)
	default:
		fmt.Fprintf(&b, ": expected %s", e.Expected)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " %q", truncate(e.Token))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// MissingFieldError returns the error reported when a required member is
// absent.
func MissingFieldError(name string) *Error {
	return &Error{Pointer: "/" + escapePointer(name), Expected: "required field"}
}

// withPointer prefixes the pointer of err with ptr, converting foreign errors
// into *Error.
func withPointer(ptr string, err error) error {
	if err == nil {
		return nil
	}
	if de, ok := err.(*Error); ok {
		de.Pointer = ptr + de.Pointer
		de.Token = truncate(de.Token)
		return de
	}
	return &Error{Pointer: ptr, Err: err}
}

func truncate(s string) string {
	if len(s) <= maxToken {
		return s
	}
	return s[:maxToken] + "..."
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(s string) string {
	return pointerEscaper.Replace(s)
}
