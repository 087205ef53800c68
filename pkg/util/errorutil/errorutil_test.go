package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError_NoRowsBecomesNotFound(t *testing.T) {
	err := MapError(fmt.Errorf("scan: %w", pgx.ErrNoRows), "staffer")

	de := ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, CodeNotFound, de.Code)
	assert.Equal(t, "staffer not found", de.Message)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.True(t, IsNotFound(err))
}

func TestMapError_ConstraintViolationBecomesConflict(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key", ConstraintName: "staffer_rates_staffer_id_key"}

	de := ToDomainError(MapError(pgErr, "rate"))
	assert.Equal(t, CodeConflict, de.Code)
	assert.Equal(t, "staffer_rates_staffer_id_key", de.Details["constraint"])
}

func TestMapError_OtherErrorsBecomeAccessErrors(t *testing.T) {
	de := ToDomainError(MapError(errors.New("connection refused"), "skill"))
	assert.Equal(t, CodeAccess, de.Code)
	assert.Equal(t, "connection refused", de.Message)
}

func TestMapError_KeepsDomainErrors(t *testing.T) {
	original := NewConflict("commit in progress", nil)
	assert.Same(t, original, MapError(original, "session"))
	assert.Nil(t, MapError(nil, "session"))
}

func TestNewFieldValidationError_SortsFields(t *testing.T) {
	err := NewFieldValidationError(map[string]string{
		"email":    "must look like local@domain.tld",
		"capacity": "must be greater than 0",
	})

	de := ToDomainError(err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "capacity: must be greater than 0; email: must look like local@domain.tld", de.Message)
	assert.Len(t, de.Details, 2)
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, CodeNotFound, FromStatus(http.StatusNotFound, "Cannot GET /x").Code)
	assert.Equal(t, CodeInternal, FromStatus(http.StatusTeapot, "teapot").Code)
}

func TestMapError_MalformedIDIsNotFound(t *testing.T) {
	err := MapError(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}, "project")
	assert.True(t, IsNotFound(err))
}
