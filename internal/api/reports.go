package api

import (
	"net/http"

	"github.com/xmkt/marketplace/internal/model"
	"github.com/xmkt/marketplace/internal/service"
)

// ReportsHandler handles report submission and the admin report listing.
type ReportsHandler struct {
	Reports *service.ReportService
}

type reportItemRequest struct {
	ItemID  int64  `json:"itemId"`
	Message string `json:"message"`
}

type reportIssueRequest struct {
	Message string `json:"message"`
}

// ReportItem handles POST /report-item.
func (h *ReportsHandler) ReportItem(w http.ResponseWriter, r *http.Request) {
	var req reportItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID == 0 {
		jsonError(w, http.StatusBadRequest, "itemId required")
		return
	}

	report, err := h.Reports.ReportItem(r.Context(), req.ItemID, req.Message)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, report)
}

// ReportIssue handles POST /report-issue.
func (h *ReportsHandler) ReportIssue(w http.ResponseWriter, r *http.Request) {
	var req reportIssueRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.Reports.ReportIssue(r.Context(), req.Message)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, report)
}

// List handles GET /reports. The route is wrapped by RequireMaster.
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Reports.List(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	if reports == nil {
		reports = []model.ResolvedReport{}
	}
	jsonResponse(w, http.StatusOK, reports)
}
