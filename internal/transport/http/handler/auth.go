package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sreejaboddula/kaamsetu/internal/application/auth"
	"github.com/sreejaboddula/kaamsetu/internal/domain"
)

// AuthHandler handles the OTP, registration and login endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var body auth.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.SendOTP(r.Context(), body); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verification code sent"})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body auth.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.VerifyOTP(r.Context(), body); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "phone verified"})
}

func (h *AuthHandler) RegistrationStatus(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	registered, err := h.svc.RegistrationStatus(r.Context(), phone)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RegistrationStatusEnvelope{IsRegistered: registered})
}

func (h *AuthHandler) RegisterWorker(w http.ResponseWriter, r *http.Request) {
	var body domain.RegisterWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.RegisterWorker(r.Context(), body)
	if err != nil {
		httpError(w, err)
		return
	}
	writeAuthResult(w, http.StatusCreated, res)
}

func (h *AuthHandler) RegisterVendor(w http.ResponseWriter, r *http.Request) {
	var body domain.RegisterVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.RegisterVendor(r.Context(), body)
	if err != nil {
		httpError(w, err)
		return
	}
	writeAuthResult(w, http.StatusCreated, res)
}

func (h *AuthHandler) LoginWorker(w http.ResponseWriter, r *http.Request) {
	var body auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.LoginWorker(r.Context(), body)
	if err != nil {
		httpError(w, err)
		return
	}
	writeAuthResult(w, http.StatusOK, res)
}

func (h *AuthHandler) LoginVendor(w http.ResponseWriter, r *http.Request) {
	var body auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.LoginVendor(r.Context(), body)
	if err != nil {
		httpError(w, err)
		return
	}
	writeAuthResult(w, http.StatusOK, res)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	bearer, newToken, err := h.svc.Refresh(r.Context(), body.RefreshToken)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Token: bearer, RefreshToken: newToken})
}

func writeAuthResult(w http.ResponseWriter, status int, res *auth.AuthResult) {
	writeJSON(w, status, AuthEnvelope{
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
		ExpiresAt:    res.ExpiresAt.UTC().Format(time.RFC3339),
		User:         &res.User,
	})
}
