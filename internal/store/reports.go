package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/xmkt/marketplace/internal/model"
)

// CreateReport persists a new report. itemID may be nil for general issue
// reports that are not tied to a listing.
func CreateReport(ctx context.Context, db *sql.DB, message string, itemID *int64, timestamp int64) (*model.Report, error) {
	var itemRef sql.NullInt64
	if itemID != nil {
		itemRef = sql.NullInt64{Int64: *itemID, Valid: true}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO reports (message, item_id, timestamp) VALUES (?, ?, ?)`,
		message, itemRef, timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting report id: %w", err)
	}

	return GetReport(ctx, db, id)
}

// GetReport returns a report by ID, or nil if it does not exist.
func GetReport(ctx context.Context, db *sql.DB, id int64) (*model.Report, error) {
	r := &model.Report{}
	var itemRef sql.NullInt64
	err := db.QueryRowContext(ctx,
		`SELECT id, message, item_id, timestamp FROM reports WHERE id = ?`, id,
	).Scan(&r.ID, &r.Message, &itemRef, &r.Timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}
	if itemRef.Valid {
		r.ItemID = &itemRef.Int64
	}
	return r, nil
}

// ListReports returns all reports newest first, each resolved with the
// referenced item's title and primary image when the item still exists.
// The item reference is weak, so the join is a LEFT JOIN.
func ListReports(ctx context.Context, db *sql.DB) ([]model.ResolvedReport, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT r.id, r.message, r.item_id, r.timestamp, i.title, i.images
		 FROM reports r
		 LEFT JOIN items i ON i.id = r.item_id
		 ORDER BY r.timestamp DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var reports []model.ResolvedReport
	for rows.Next() {
		var r model.ResolvedReport
		var itemRef sql.NullInt64
		var title, images sql.NullString
		if err := rows.Scan(&r.ID, &r.Message, &itemRef, &r.Timestamp, &title, &images); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		if itemRef.Valid {
			r.ItemID = &itemRef.Int64
		}
		r.ItemTitle = title.String
		if images.Valid {
			var urls []string
			if err := json.Unmarshal([]byte(images.String), &urls); err != nil {
				return nil, fmt.Errorf("decoding image urls: %w", err)
			}
			if len(urls) > 0 {
				r.ItemImage = urls[0]
			}
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
