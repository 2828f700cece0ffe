package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xmkt/marketplace/internal/captcha"
	"github.com/xmkt/marketplace/internal/config"
	"github.com/xmkt/marketplace/internal/service"
)

// NewRouter creates the router with all endpoints registered.
func NewRouter(items *service.ItemService, reports *service.ReportService, verifier *captcha.Verifier, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Items: items, Captcha: verifier}
	reportsHandler := &ReportsHandler{Reports: reports}
	adminHandler := &AdminHandler{MasterKey: cfg.MasterKey, TokenTTL: cfg.AdminTokenTTL}
	healthHandler := &HealthHandler{DB: items.DB}

	requireMaster := RequireMaster(cfg.MasterKey)
	sharedSecret := RequireSharedSecret(cfg.APIKey, cfg.MasterKey)

	// Operational.
	mux.HandleFunc("GET /healthz", healthHandler.Check)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Items. Reads go through the optional shared-secret gate; writes are
	// guarded per-item by the credential guard inside the service.
	mux.Handle("GET /items", sharedSecret(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("GET /items/{id}", sharedSecret(http.HandlerFunc(itemsHandler.Get)))
	mux.HandleFunc("POST /items", itemsHandler.Create)
	mux.HandleFunc("DELETE /items/{id}", itemsHandler.Delete)
	mux.HandleFunc("PUT /items/{id}/edit", itemsHandler.Edit)
	mux.Handle("PUT /items/{id}", requireMaster(http.HandlerFunc(itemsHandler.Update)))

	// Reports.
	mux.HandleFunc("POST /report-item", reportsHandler.ReportItem)
	mux.HandleFunc("POST /report-issue", reportsHandler.ReportIssue)
	mux.Handle("GET /reports", requireMaster(http.HandlerFunc(reportsHandler.List)))

	// Admin.
	mux.HandleFunc("POST /admin/login", adminHandler.Login)

	return mux
}
