package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(Config{Path: filepath.Join(t.TempDir(), "data", "test.db")}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrator_Up(t *testing.T) {
	db := openTestDB(t)
	migrator := NewMigrator(db, zap.NewNop())

	applied, err := migrator.Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	for _, table := range []string{"months", "po_folders", "po_steps", "po_step_files",
		"tracked_pos", "tracked_po_documents", "stage_logs"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}

	t.Run("second run is a no-op", func(t *testing.T) {
		applied, err := migrator.Up(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, applied)
	})
}

func TestDB_ForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)
	_, err := NewMigrator(db, zap.NewNop()).Up(context.Background())
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO po_folders (month_id, folder_name, capex_opex, it_ref_no, title, created_at, updated_at)
		VALUES (999, 'x', 'CAPEX', 'IT-1', 'x', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	assert.Error(t, err)
}

func TestDB_WithTxRollsBack(t *testing.T) {
	db := openTestDB(t)
	_, err := NewMigrator(db, zap.NewNop()).Up(context.Background())
	require.NoError(t, err)

	err = db.WithTx(context.Background(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO months (month_key, label, created_at) VALUES ('2026-01', 'Jan', CURRENT_TIMESTAMP)`); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM months").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestMigrator_Status(t *testing.T) {
	db := openTestDB(t)
	migrator := NewMigrator(db, zap.NewNop())
	ctx := context.Background()

	before, err := migrator.Status(ctx)
	require.NoError(t, err)
	require.Len(t, before, 2)
	assert.Equal(t, 1, before[0].Version)
	assert.Equal(t, "initial_schema", before[0].Name)
	assert.Nil(t, before[0].AppliedAt)

	_, err = migrator.Up(ctx)
	require.NoError(t, err)

	after, err := migrator.Status(ctx)
	require.NoError(t, err)
	for _, s := range after {
		assert.NotNil(t, s.AppliedAt, "migration %d", s.Version)
	}
	assert.Equal(t, db.Path(), filepath.Join(filepath.Dir(db.Path()), "test.db"))
}

func TestParseMigrationName(t *testing.T) {
	tests := []struct {
		file    string
		version int
		name    string
		wantErr bool
	}{
		{"001_initial_schema.sql", 1, "initial_schema", false},
		{"002_stage_board.sql", 2, "stage_board", false},
		{"010.sql", 10, "", false},
		{"initial.sql", 0, "", true},
		{"000_zero.sql", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			version, name, err := parseMigrationName(tt.file)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, version)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := New(Config{}, zap.NewNop())
	assert.Error(t, err)
}
