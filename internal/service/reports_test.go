package service

import (
	"context"
	"errors"
	"testing"
)

func newTestReportService(t *testing.T) (*ReportService, *ItemService) {
	t.Helper()
	items, _ := newTestItemService(t)
	return &ReportService{DB: items.DB}, items
}

func TestReportItem(t *testing.T) {
	reports, items := newTestReportService(t)
	ctx := context.Background()

	item, err := items.Create(ctx, validInput(), testFiles(t, 1))
	if err != nil {
		t.Fatalf("Create item: %v", err)
	}

	report, err := reports.ReportItem(ctx, item.ID, "wrong category")
	if err != nil {
		t.Fatalf("ReportItem: %v", err)
	}
	if report.ItemID == nil || *report.ItemID != item.ID {
		t.Errorf("expected item reference %d, got %v", item.ID, report.ItemID)
	}
	if report.Timestamp == 0 {
		t.Error("expected timestamp to default to now")
	}
}

func TestReportItemUnknownID(t *testing.T) {
	reports, _ := newTestReportService(t)

	_, err := reports.ReportItem(context.Background(), 999, "spam")
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestReportItemEmptyMessage(t *testing.T) {
	reports, items := newTestReportService(t)
	ctx := context.Background()

	item, _ := items.Create(ctx, validInput(), testFiles(t, 1))
	if _, err := reports.ReportItem(ctx, item.ID, "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReportIssue(t *testing.T) {
	reports, _ := newTestReportService(t)
	ctx := context.Background()

	report, err := reports.ReportIssue(ctx, "site is down")
	if err != nil {
		t.Fatalf("ReportIssue: %v", err)
	}
	if report.ItemID != nil {
		t.Error("issue reports carry no item reference")
	}

	if _, err := reports.ReportIssue(ctx, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty message, got %v", err)
	}
}

func TestListReports(t *testing.T) {
	reports, items := newTestReportService(t)
	ctx := context.Background()

	item, _ := items.Create(ctx, validInput(), testFiles(t, 1))
	reports.ReportItem(ctx, item.ID, "first")
	reports.ReportIssue(ctx, "second")

	all, err := reports.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(all))
	}
}
