package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// newDryRunDB builds a session that only renders SQL; the registered
// callback captures the statement each query would execute.
func newDryRunDB(t *testing.T, captured *string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	assert.NoError(t, err)
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		*captured = tx.Statement.SQL.String()
	})
	assert.NoError(t, err)
	return db
}

// The submit/amend lifecycle depends on these reads taking a row lock;
// without FOR UPDATE two concurrent transactions could both pass the
// pending/non-obsolete checks.
func TestRoundRepository_FindByIDForUpdate_RendersLock(t *testing.T) {
	var captured string
	repo := NewRoundRepository(newDryRunDB(t, &captured))

	_, _ = repo.FindByIDForUpdate(context.Background(), 1)

	assert.Contains(t, captured, "FOR UPDATE")
}

func TestRoundRepository_FindReportByIDForUpdate_RendersLock(t *testing.T) {
	var captured string
	repo := NewRoundRepository(newDryRunDB(t, &captured))

	_, _ = repo.FindReportByIDForUpdate(context.Background(), 1)

	assert.Contains(t, captured, "FOR UPDATE")
}

func TestRoundRepository_FindByID_NoLock(t *testing.T) {
	var captured string
	repo := NewRoundRepository(newDryRunDB(t, &captured))

	_, _ = repo.FindByID(context.Background(), 1)

	assert.NotContains(t, captured, "FOR UPDATE")
}
