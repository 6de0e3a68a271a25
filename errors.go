package stripe

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/broady/stripe/decode"
	"github.com/broady/stripe/enum"
	"github.com/go-playground/validator/v10"
)

// ErrorKind classifies a failure for programmatic handling.
type ErrorKind string

const (
	KindTransport      ErrorKind = "transport"
	KindDecode         ErrorKind = "decode"
	KindAPI            ErrorKind = "api"
	KindAuthentication ErrorKind = "authentication"
	KindRateLimited    ErrorKind = "rate_limited"
	KindIdempotency    ErrorKind = "idempotency"
	KindInvalidRequest ErrorKind = "invalid_request" // rejected before sending
)

// Retryable reports whether a failure of this kind may succeed if the same
// request is sent again unchanged.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindTransport, KindRateLimited, KindIdempotency:
		return true
	case KindDecode, KindAuthentication, KindInvalidRequest:
		return false
	case KindAPI:
		// Only specific statuses and codes; see Error.Retryable.
		return false
	default:
		return false
	}
}

// ErrorType is the type member of an API error object.
type ErrorType string

const (
	ErrorTypeAPI            ErrorType = "api_error"
	ErrorTypeCard           ErrorType = "card_error"
	ErrorTypeIdempotency    ErrorType = "idempotency_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
)

var errorTypeValues = enum.NewSet(ErrorTypeAPI, ErrorTypeCard, ErrorTypeIdempotency, ErrorTypeInvalidRequest)

func (t ErrorType) IsKnown() bool { return errorTypeValues.Contains(t) }

// ErrorTypeValues returns the known error types.
func ErrorTypeValues() []ErrorType { return errorTypeValues.Values() }

// Codes the API documents as transient.
const (
	CodeLockTimeout  = "lock_timeout"
	CodeRateLimit    = "rate_limit"
	CodeCardDeclined = "card_declined"
)

// Error is the single error type returned by dispatch.
//
// API fields are copied verbatim from the server's error object. Cause holds
// the underlying error for transport, decode and validation failures.
type Error struct {
	Kind       ErrorKind
	HTTPStatus int

	Type          enum.Open[ErrorType]
	Code          string
	Message       string
	Param         string
	DeclineCode   string
	DocURL        string
	RequestLogURL string
	RequestID     string

	// Attempts is the number of HTTP attempts made before giving up.
	Attempts int

	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.HTTPStatus != 0 {
		fmt.Fprintf(&b, " (%d)", e.HTTPStatus)
	}
	if e.Type.Token() != "" {
		fmt.Fprintf(&b, " %s", e.Type.Token())
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	switch {
	case e.Message != "":
		fmt.Fprintf(&b, ": %s", e.Message)
	case e.Cause != nil:
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	if e.Param != "" {
		fmt.Fprintf(&b, " (param: %s)", e.Param)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&b, " (request: %s)", e.RequestID)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Retryable reports whether the dispatcher may resend the request.
func (e *Error) Retryable() bool {
	if e.Kind.Retryable() {
		return true
	}
	if e.Kind != KindAPI {
		return false
	}
	return e.HTTPStatus >= http.StatusInternalServerError || e.Code == CodeLockTimeout
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// kindForStatus maps a non-2xx HTTP status to an error kind.
func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthentication
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusConflict:
		return KindIdempotency
	default:
		return KindAPI
	}
}

// transportError wraps a failure to complete an exchange, including
// cancellation and deadlines.
func transportError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindTransport, Cause: err}
}

func decodeError(status int, err error) *Error {
	return &Error{Kind: KindDecode, HTTPStatus: status, Cause: err}
}

// invalidRequestError converts a validation failure into an Error naming
// every offending field.
func invalidRequestError(err error) *Error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return &Error{Kind: KindInvalidRequest, Message: err.Error(), Cause: err}
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Field()+": "+formatValidationError(ve))
	}
	return &Error{
		Kind:    KindInvalidRequest,
		Message: strings.Join(messages, "; "),
		Param:   valErrs[0].Field(),
		Cause:   err,
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", ve.Param())
	case "excluded_with":
		return "cannot be combined with " + ve.Param()
	case "email":
		return "must be a valid email address"
	case "iso3166_1_alpha2":
		return "must be an ISO 3166-1 alpha-2 country code"
	case "currency":
		return "must be a lowercase ISO 4217 currency code"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "known":
		return "must be a known enum value"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// errorEnvelope is the body of every non-2xx response: {"error": {...}}.
type errorEnvelope struct {
	err *Error
}

func (env *errorEnvelope) Visitor() decode.Visitor {
	e := env.err
	return decode.Object(func(key string) decode.Visitor {
		if key != "error" {
			return nil
		}
		return decode.Object(func(key string) decode.Visitor {
			switch key {
			case "type":
				return e.Type.Visitor()
			case "code":
				return decode.String(&e.Code)
			case "message":
				return decode.String(&e.Message)
			case "param":
				return decode.String(&e.Param)
			case "decline_code":
				return decode.String(&e.DeclineCode)
			case "doc_url":
				return decode.String(&e.DocURL)
			case "request_log_url":
				return decode.String(&e.RequestLogURL)
			}
			return nil
		})
	}, "error")
}
