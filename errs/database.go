package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Relational integrity errors
var (
	// ErrInvalidReference means a write pointed at a row that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInUse means a delete was refused because other rows still point at the row.
	ErrInUse = errors.New("resource in use")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

func NewInvalidReferenceError(entity, field string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%w in %s", ErrInvalidReference, entity),
		Details:    "The referenced resource does not exist or cannot be linked",
		Field:      field,
		Cause:      cause,
	}
}

func NewInUseError(entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", entity, ErrInUse),
		kind:       ErrConflict,
		Details:    fmt.Sprintf("The %s is still referenced by other resources", entity),
		Cause:      cause,
	}
}

func IsInvalidReferenceError(err error) bool {
	return errors.Is(err, ErrInvalidReference)
}

func IsInUseError(err error) bool {
	return errors.Is(err, ErrInUse)
}

// NewDatabaseError creates a new database error with details about the operation.
// Errors that repositories already classified pass through unchanged.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	var connectErr *pgconn.ConnectError
	switch {
	case errors.Is(cause, gorm.ErrRecordNotFound):
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s %w", entity, ErrNotFound),
			Details:    details,
			Cause:      cause,
		}
	case errors.As(cause, &connectErr), errors.Is(cause, context.DeadlineExceeded):
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        ErrDatabaseConnection,
			Details:    "Unable to connect to database",
			Cause:      cause,
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}
