package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "nested", "quote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))

	var indexCount int
	err = store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name IN ('idx_exports_exported_at', 'idx_exports_reference')
	`).Scan(&indexCount)
	require.NoError(t, err)
	assert.Equal(t, 2, indexCount)

	var columnCount int
	err = store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pragma_table_info('exports')
		WHERE name IN ('mode', 'reference')
	`).Scan(&columnCount)
	require.NoError(t, err)
	assert.Equal(t, 2, columnCount)
	assert.Equal(t, "quote.db", filepath.Base(store.Path()))
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestRecordAndListExports(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	for i, customer := range []string{"First", "Second", "Third"} {
		rec := &model.ExportRecord{
			Path:         filepath.Join("/quotes", customer+".pdf"),
			CustomerName: customer,
			GrandTotal:   int64(1000 * (i + 1)),
			ItemCount:    i + 1,
			Mode:         model.SaveModeAutoSaveOnly,
			ExportedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.RecordExport(ctx, rec))
		assert.Equal(t, int64(i+1), rec.ID)
		_, err := uuid.Parse(rec.Reference)
		assert.NoError(t, err)
	}

	records, err := store.ListExports(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Third", records[0].CustomerName)
	assert.Equal(t, int64(3000), records[0].GrandTotal)
	assert.Equal(t, 3, records[0].ItemCount)
	assert.Equal(t, model.SaveModeAutoSaveOnly, records[0].Mode)
	assert.True(t, base.Add(2*time.Hour).Equal(records[0].ExportedAt))
	assert.Equal(t, "Second", records[1].CustomerName)
	assert.NotEqual(t, records[0].Reference, records[1].Reference)
}

func TestRecordExport_KeepsGivenReference(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	rec := &model.ExportRecord{Reference: "Q-2024-001", Path: "/q.pdf", ExportedAt: time.Now()}
	require.NoError(t, store.RecordExport(ctx, rec))

	records, err := store.ListExports(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Q-2024-001", records[0].Reference)
}

func TestListExports_Empty(t *testing.T) {
	store := createTestStorage(t)

	records, err := store.ListExports(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordExport_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		rec  *model.ExportRecord
		name string
	}{
		{name: "nil record", rec: nil},
		{name: "empty path", rec: &model.ExportRecord{ExportedAt: time.Now()}},
		{name: "zero time", rec: &model.ExportRecord{Path: "/q.pdf"}},
		{name: "negative count", rec: &model.ExportRecord{Path: "/q.pdf", ExportedAt: time.Now(), ItemCount: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.RecordExport(ctx, tt.rec))
		})
	}

	//nolint:staticcheck // nil context is the case under test
	assert.ErrorIs(t, store.RecordExport(nil, &model.ExportRecord{}), ErrNilContext)

	_, err := store.ListExports(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}
