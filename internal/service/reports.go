package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/xmkt/marketplace/internal/model"
	"github.com/xmkt/marketplace/internal/store"
)

// ReportService orchestrates creation and listing of user reports.
type ReportService struct {
	DB *sql.DB
}

// ReportItem files a report against an existing item. The item must exist
// at creation time; the reference is weak afterwards.
func (s *ReportService) ReportItem(ctx context.Context, itemID int64, message string) (*model.Report, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, validationf("message required")
	}

	item, err := store.GetItem(ctx, s.DB, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	return store.CreateReport(ctx, s.DB, message, &itemID, time.Now().UnixMilli())
}

// ReportIssue files a general report with no item linkage.
func (s *ReportService) ReportIssue(ctx context.Context, message string) (*model.Report, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, validationf("message required")
	}
	return store.CreateReport(ctx, s.DB, message, nil, time.Now().UnixMilli())
}

// List returns all reports, newest first, resolved with the referenced
// item's display fields. Callers gate this behind the master secret.
func (s *ReportService) List(ctx context.Context) ([]model.ResolvedReport, error) {
	return store.ListReports(ctx, s.DB)
}
