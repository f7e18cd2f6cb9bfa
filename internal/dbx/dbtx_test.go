package dbx

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

func TestConstraintClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		unique, fk bool
	}{
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, unique: true},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, fk: true},
		{name: "wrapped unique", err: fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505"}), unique: true},
		{name: "other pg error", err: &pgconn.PgError{Code: "42P01"}},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueViolation(tt.err))
			assert.Equal(t, tt.fk, IsForeignKeyViolation(tt.err))
		})
	}
}

func TestTimePtr(t *testing.T) {
	assert.Nil(t, TimePtr(sql.NullTime{}))

	now := time.Now()
	got := TimePtr(sql.NullTime{Time: now, Valid: true})
	if assert.NotNil(t, got) {
		assert.True(t, now.Equal(*got))
	}
}
