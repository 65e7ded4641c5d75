package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/sreejaboddula/kaamsetu/internal/application/admin"
	"github.com/sreejaboddula/kaamsetu/internal/transport/http/middleware"
)

// AdminHandler handles the worker-verification review endpoints.
type AdminHandler struct {
	svc adminapp.Service
}

func NewAdminHandler(svc adminapp.Service) *AdminHandler { return &AdminHandler{svc: svc} }

func (h *AdminHandler) ListVerifications(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListReviews(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *AdminHandler) GetVerification(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.ReviewDetail(r.Context(), chi.URLParam(r, "reviewId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	rev, err := h.svc.Approve(r.Context(), claims.UserID, chi.URLParam(r, "reviewId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rev, err := h.svc.Reject(r.Context(), claims.UserID, chi.URLParam(r, "reviewId"), body.Reason)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}
