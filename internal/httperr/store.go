package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes surfaced as client errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgExclusionViolation  = "23P01"
	pgInvalidText         = "22P02"
)

// FromStore classifies an error returned by the store. Recognised
// constraint violations become client errors, anything else is a
// StoreError whose details never reach the response body.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("not_found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgExclusionViolation:
			return &Error{Kind: KindConflict, Code: "unique_violation", Err: err}
		case pgForeignKeyViolation:
			return &Error{Kind: KindValidation, Code: "invalid_reference", Err: err}
		case pgCheckViolation, pgInvalidText:
			return &Error{Kind: KindValidation, Code: "invalid_value", Err: err}
		}
	}

	return Store(err)
}

// IsUniqueViolation reports whether err is a unique or exclusion
// constraint violation raised by Postgres.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
	}
	return false
}
