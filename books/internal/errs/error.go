package errs

import (
	"database/sql"
	"strings"

	"github.com/asanbekov/book-catalog/pkg/validate"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// Kind is the stable error tag clients branch on.
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindAuthentication Kind = "AUTHENTICATION_ERROR"
	KindAuthorization  Kind = "AUTHORIZATION_ERROR"
	KindNotFound       Kind = "NOT_FOUND_ERROR"
	KindDuplicate      Kind = "DUPLICATE_ERROR"
	KindInternal       Kind = "INTERNAL_SERVER_ERROR"
)

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the typed failure produced by the services and consumed by the
// HTTP translation stage. It travels by return value, never by panic.
type Error struct {
	Kind       Kind
	Message    string
	Field      string
	Violations []FieldViolation
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func AlreadyExists(field, msg string) *Error {
	return &Error{Kind: KindDuplicate, Message: msg, Field: field}
}

func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func Validation(msg string, violations ...FieldViolation) *Error {
	return &Error{Kind: KindValidation, Message: msg, Violations: violations}
}

func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, cause: cause}
}

// FromValidation turns the validator's exhaustive violation set into a
// validation error with per-field messages.
func FromValidation(err error) error {
	var violations *validate.Violations
	if !errors.As(err, &violations) {
		return Validation(err.Error())
	}
	items := make([]FieldViolation, 0, len(violations.Items))
	for _, v := range violations.Items {
		items = append(items, FieldViolation{Field: v.Field, Message: v.Message})
	}
	return Validation("invalid request data", items...)
}

// Classify re-classifies persistence faults into the taxonomy. Already
// classified errors pass through untouched; anything unrecognized becomes
// an internal error wrapping the cause so raw driver detail never leaks.
func Classify(err error, msg string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return NotFound(msg + " not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			field := fieldFromConstraint(pgErr.ConstraintName)
			return AlreadyExists(field, field+" already in use")
		case pgErr.Code == pgerrcode.CheckViolation,
			pgErr.Code == pgerrcode.NotNullViolation,
			pgerrcode.IsDataException(pgErr.Code):
			return Validation(msg + ": invalid data")
		case pgerrcode.IsConnectionException(pgErr.Code):
			return Internal("database connection error", err)
		}
	}

	return Internal(msg+" failed", err)
}

// fieldFromConstraint recovers the colliding column from names like
// users_email_key.
func fieldFromConstraint(constraint string) string {
	name := strings.TrimSuffix(constraint, "_key")
	if i := strings.IndexByte(name, '_'); i >= 0 {
		return name[i+1:]
	}
	return name
}
