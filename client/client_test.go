package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bytesReader(s string) io.Reader { return strings.NewReader(s) }

func TestClient_AttachesBearerWhenSessionSet(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"w1","name":"Asha"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Sessions.Set("abc", "worker")

	profile, err := c.WorkerProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "w1", profile.WorkerID)
}

func TestClient_NoBearerWithoutSession(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"message":"verification code sent"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.SendOTP(context.Background(), SendOTPRequest{To: "9876543210", Channel: "sms"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_SurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"phone already registered: conflict"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.SendOTP(context.Background(), SendOTPRequest{To: "9876543210"})
	require.Error(t, err)
	assert.Equal(t, "phone already registered: conflict", err.Error())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestClient_GenericFallbackWhenNoMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway exploded</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.SendOTP(context.Background(), SendOTPRequest{To: "9876543210"})
	require.Error(t, err)
	assert.Equal(t, "something went wrong", err.Error())
}

func TestClient_NoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL)
	err := c.SendOTP(context.Background(), SendOTPRequest{To: "9876543210"})
	require.Error(t, err)
	assert.Equal(t, "no response received from server", err.Error())
}

func TestClient_SetupError(t *testing.T) {
	c := New("://not-a-url")
	err := c.SendOTP(context.Background(), SendOTPRequest{To: "9876543210"})
	require.Error(t, err)
	assert.Equal(t, "error setting up the request", err.Error())
}

func TestClient_AuthFailureClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid or expired token"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Sessions.Set("stale", "worker")

	_, err := c.WorkerProfile(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)

	_, ok := c.Sessions.Get()
	assert.False(t, ok, "session must be cleared after a 401")
}

func TestClient_AuthFailureWithoutSessionIsNotExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"phone not verified: unauthorized"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.LoginWorker(context.Background(), LoginRequest{Phone: "9876543210", Code: "123456"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, "phone not verified: unauthorized", err.Error())
}

func TestClient_UploadSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "9876543210", r.FormValue("phone"))
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "aadhaar.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"doc-1","kind":"aadhaar"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	doc, err := c.UploadAadhaar(context.Background(), "9876543210", "aadhaar.jpg", bytesReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.DocumentID)
}
