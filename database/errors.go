package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/devportfolio/portfolio-backend/errs"
)

// PostgreSQL SQLSTATE codes the repositories translate.
const (
	codeForeignKeyViolation    = "23503"
	codeNotNullViolation       = "23502"
	codeInvalidTextRepr        = "22P02"
	codeDatetimeFieldOverflow  = "22008"
	codeInvalidDatetimeFormat  = "22007"
	codeNumericValueOutOfRange = "22003"
)

// referenceFields maps foreign-key constraint names from schema.sql to the
// payload field that supplied the reference.
var referenceFields = map[string]string{
	"projects_user_id_fkey":          "userId",
	"projects_category_id_fkey":      "categoryId",
	"project_skills_skill_id_fkey":   "skillIds",
	"project_skills_project_id_fkey": "id",
}

// translateWriteError maps driver errors raised by INSERT and UPDATE into the
// error variants of the errs package. Unknown errors are returned as is.
func translateWriteError(entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound(entity)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeForeignKeyViolation:
		return errs.NewInvalidReferenceError(entity, referenceFields[pgErr.ConstraintName], err)
	case codeNotNullViolation:
		return errs.NewMissingRequiredFieldError(pgErr.ColumnName)
	case codeInvalidTextRepr, codeDatetimeFieldOverflow, codeInvalidDatetimeFormat, codeNumericValueOutOfRange:
		return errs.NewInvalidFieldError(pgErr.ColumnName, pgErr.Message)
	}
	return err
}

// translateDeleteError maps a RESTRICT foreign-key rejection to ErrInUse.
func translateDeleteError(entity string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return errs.NewInUseError(entity, err)
	}
	return err
}
