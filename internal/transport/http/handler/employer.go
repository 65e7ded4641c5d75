package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	vendorapp "github.com/sreejaboddula/kaamsetu/internal/application/vendor"
	"github.com/sreejaboddula/kaamsetu/internal/domain"
	"github.com/sreejaboddula/kaamsetu/internal/transport/http/middleware"
)

// EmployerHandler handles the employer-facing endpoints.
type EmployerHandler struct {
	svc vendorapp.Service
}

func NewEmployerHandler(svc vendorapp.Service) *EmployerHandler { return &EmployerHandler{svc: svc} }

func (h *EmployerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	vendor, err := h.svc.Profile(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vendor)
}

func (h *EmployerHandler) WorkersByCategory(w http.ResponseWriter, r *http.Request) {
	workers, err := h.svc.WorkersByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workers)
}

func (h *EmployerHandler) SendOffer(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body domain.SendOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	offer, err := h.svc.SendOffer(r.Context(), claims.UserID, body)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

func (h *EmployerHandler) Offers(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	offers, err := h.svc.Offers(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func (h *EmployerHandler) PublishJob(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body domain.PublishJobRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	job, err := h.svc.PublishJob(r.Context(), claims.UserID, body)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *EmployerHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	jobs, err := h.svc.Jobs(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}
