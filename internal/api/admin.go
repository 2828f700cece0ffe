package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/xmkt/marketplace/internal/auth"
)

// AdminHandler handles the admin login endpoint.
type AdminHandler struct {
	MasterKey string
	TokenTTL  time.Duration
}

type adminLoginRequest struct {
	MasterKey string `json:"masterKey"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /admin/login. It validates the master key and returns
// a stateless admin token; the raw X-Master-Key header remains usable
// everywhere regardless.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.MasterKey == "" ||
		subtle.ConstantTimeCompare([]byte(req.MasterKey), []byte(h.MasterKey)) != 1 {
		slog.Warn("admin login failed", "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid master key")
		return
	}

	token, err := auth.GenerateAdminToken(h.MasterKey, h.TokenTTL)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("admin logged in", "remote", r.RemoteAddr)
	jsonResponse(w, http.StatusOK, adminLoginResponse{Token: token})
}
