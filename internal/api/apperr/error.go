package apperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindForbidden
	KindUnauthorized
)

// Status maps a kind to its HTTP status. Conflicts stay 400 to match the
// public contract clients already depend on.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string // safe to show to clients
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// Internal wraps err; the client only ever sees msg.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// As resolves err into an *Error, trying PG error mapping before falling
// back to a generic internal error.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	if pe, ok := FromPG(err); ok {
		return pe
	}
	return Internal("Internal server error.", err)
}

// Write logs internal failures and renders {"error": msg}.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	ae := As(err)
	if ae.Kind == KindInternal {
		attrs := []any{"error", ae.Err}
		if r != nil {
			attrs = append(attrs, "method", r.Method, "path", r.URL.Path, "request_id", r.Header.Get("X-Request-ID"))
		}
		slog.Error(ae.Message, attrs...)
	}
	WriteStatus(w, ae.Kind.Status(), ae.Message)
}

// WriteStatus renders the error envelope without any logging.
func WriteStatus(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
