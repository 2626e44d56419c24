package apperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Map well-known constraint names to client messages.
var constraintMessage = map[string]string{
	"contents_slug_key": "Slug must be unique",
	"admins_email_key":  "Email already registered",
}

// FromPG maps a *pgconn.PgError to an *Error. Returns (nil, false) for
// anything that did not come from Postgres.
func FromPG(err error) (*Error, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return nil, false
	}

	switch pg.Code {
	case "23505": // unique_violation
		msg, ok := constraintMessage[pg.ConstraintName]
		if !ok {
			msg = "value already exists"
		}
		return &Error{Kind: KindConflict, Message: msg, Err: err}, true
	case "23502": // not_null_violation
		msg := "Required fields missing"
		if pg.ColumnName != "" {
			msg = pg.ColumnName + " is required"
		}
		return &Error{Kind: KindValidation, Message: msg, Err: err}, true
	case "22001": // string_data_right_truncation
		return &Error{Kind: KindValidation, Message: "value is too long", Err: err}, true
	case "22P02", "22007", "22008": // invalid_text_representation, bad datetime
		return &Error{Kind: KindValidation, Message: "invalid format", Err: err}, true
	case "23514": // check_violation
		return &Error{Kind: KindValidation, Message: "constraint failed", Err: err}, true
	default:
		return &Error{Kind: KindInternal, Message: "Internal server error.", Err: err}, true
	}
}
