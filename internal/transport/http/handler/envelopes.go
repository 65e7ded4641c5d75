package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sreejaboddula/kaamsetu/internal/application/auth"
	"github.com/sreejaboddula/kaamsetu/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps login/register/refresh responses.
type AuthEnvelope struct {
	Token        string         `json:"token,omitempty"`
	RefreshToken string         `json:"refreshToken,omitempty"`
	ExpiresAt    string         `json:"expiresAt,omitempty"`
	User         *auth.UserInfo `json:"user,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// RegistrationStatusEnvelope wraps the registered-phone lookup response.
type RegistrationStatusEnvelope struct {
	IsRegistered bool `json:"isRegistered"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors to HTTP statuses. Anything unwrapped
// is a 500 with a generic message so internals never leak to clients.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
