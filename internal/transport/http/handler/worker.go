package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	workerapp "github.com/sreejaboddula/kaamsetu/internal/application/worker"
	"github.com/sreejaboddula/kaamsetu/internal/transport/http/middleware"
)

// WorkerHandler handles the worker-facing endpoints.
type WorkerHandler struct {
	svc workerapp.Service
}

func NewWorkerHandler(svc workerapp.Service) *WorkerHandler { return &WorkerHandler{svc: svc} }

func (h *WorkerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	worker, err := h.svc.Profile(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, worker)
}

func (h *WorkerHandler) AvailableJobs(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	jobs, err := h.svc.AvailableJobs(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *WorkerHandler) Apply(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	jobID := chi.URLParam(r, "jobId")
	app, err := h.svc.Apply(r.Context(), claims.UserID, jobID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *WorkerHandler) Applications(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	apps, err := h.svc.Applications(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (h *WorkerHandler) Offers(w http.ResponseWriter, r *http.Request) {
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

func (h *WorkerHandler) RespondToOffer(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	offer, err := h.svc.RespondToOffer(r.Context(), claims.UserID, chi.URLParam(r, "offerId"), body.Response)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}
