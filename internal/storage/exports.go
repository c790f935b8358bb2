package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/google/uuid"
)

// RecordExport appends rec to the journal and sets its ID. A record without a
// reference gets a fresh UUID.
func (s *SQLiteStorage) RecordExport(ctx context.Context, rec *model.ExportRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExportRecord(rec); err != nil {
		return err
	}

	if rec.Reference == "" {
		rec.Reference = uuid.NewString()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO exports (reference, path, customer_name, grand_total, item_count, mode, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.Reference, rec.Path, rec.CustomerName, rec.GrandTotal, rec.ItemCount, string(rec.Mode), rec.ExportedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read export id: %w", err)
	}
	rec.ID = id
	return nil
}

// ListExports returns up to limit journal entries, newest first.
func (s *SQLiteStorage) ListExports(ctx context.Context, limit int) ([]model.ExportRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, reference, path, customer_name, grand_total, item_count, mode, exported_at
		FROM exports
		ORDER BY exported_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.ExportRecord
	for rows.Next() {
		var (
			rec        model.ExportRecord
			mode       string
			exportedAt time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.Reference, &rec.Path, &rec.CustomerName, &rec.GrandTotal,
			&rec.ItemCount, &mode, &exportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		rec.Mode = model.SaveMode(mode)
		rec.ExportedAt = exportedAt
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exports: %w", err)
	}

	return records, nil
}
