package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintErrors(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: UniqueViolation, ConstraintName: "courses_pkey"})
	fk := &pgconn.PgError{Code: ForeignKeyViolation, ConstraintName: "course_prerequisites_prerequisite_id_fkey"}

	assert.True(t, IsDuplicateConstraintError(unique, "courses_pkey"))
	assert.False(t, IsDuplicateConstraintError(unique, "other_key"))
	assert.False(t, IsForeignKeyConstraintError(unique, "courses_pkey"))

	assert.True(t, IsForeignKeyConstraintError(fk, "course_prerequisites_prerequisite_id_fkey"))
	assert.False(t, IsDuplicateConstraintError(fk, "course_prerequisites_prerequisite_id_fkey"))

	assert.False(t, IsDuplicateConstraintError(errors.New("plain"), "courses_pkey"))
}
