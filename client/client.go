package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sreejaboddula/kaamsetu/internal/domain"
)

// Client is the single point of outbound HTTP communication. Every request
// attaches the current session token as a bearer credential when one is set
// and proceeds unauthenticated otherwise. Failures are normalized into a
// single *APIError; callers never need to distinguish transport from server
// errors to display one.
type Client struct {
	baseURL  string
	http     *http.Client
	Sessions *SessionStore
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		Sessions: NewSessionStore(),
	}
}

// NewWithHTTPClient allows injecting a custom transport, mainly for tests.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	c.http = hc
	return c
}

// SendOTPRequest asks the server to dispatch a verification code.
type SendOTPRequest struct {
	To      string `json:"to"`
	Channel string `json:"channel"`
	Email   string `json:"email,omitempty"`
}

// VerifyOTPRequest confirms a dispatched code against its phone number.
type VerifyOTPRequest struct {
	To   string `json:"to"`
	Code string `json:"code"`
}

// LoginRequest authenticates a verified phone with the code it verified.
type LoginRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// AuthUser is the account summary embedded in an auth response.
type AuthUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
}

// AuthResponse is the token pair returned by login, registration and refresh.
type AuthResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         *AuthUser `json:"user,omitempty"`
}

func (c *Client) SendOTP(ctx context.Context, req SendOTPRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/send-otp", req, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/verify-otp", req, nil)
}

func (c *Client) RegistrationStatus(ctx context.Context, phone string) (bool, error) {
	var out struct {
		IsRegistered bool `json:"isRegistered"`
	}
	path := "/v1/auth/registration-status?phone=" + url.QueryEscape(phone)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return false, err
	}
	return out.IsRegistered, nil
}

func (c *Client) RegisterWorker(ctx context.Context, req domain.RegisterWorkerRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register/user", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RegisterVendor(ctx context.Context, req domain.RegisterVendorRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register/vendor", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LoginWorker(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login/user", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LoginVendor(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login/vendor", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/refresh", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WorkerProfile(ctx context.Context) (*domain.Worker, error) {
	var out domain.Worker
	if err := c.do(ctx, http.MethodGet, "/v1/worker/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AvailableJobs(ctx context.Context) ([]domain.Job, error) {
	var out []domain.Job
	if err := c.do(ctx, http.MethodGet, "/v1/worker/jobs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApplyToJob(ctx context.Context, jobID string) (*domain.Application, error) {
	var out domain.Application
	if err := c.do(ctx, http.MethodPost, "/v1/worker/jobs/"+url.PathEscape(jobID)+"/apply", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Applications(ctx context.Context) ([]domain.Application, error) {
	var out []domain.Application
	if err := c.do(ctx, http.MethodGet, "/v1/worker/applications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) WorkerOffers(ctx context.Context) ([]domain.Offer, error) {
	var out []domain.Offer
	if err := c.do(ctx, http.MethodGet, "/v1/worker/offers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RespondToOffer(ctx context.Context, offerID, response string) (*domain.Offer, error) {
	body := map[string]string{"response": response}
	var out domain.Offer
	if err := c.do(ctx, http.MethodPost, "/v1/worker/offers/"+url.PathEscape(offerID)+"/respond", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EmployerProfile(ctx context.Context) (*domain.Vendor, error) {
	var out domain.Vendor
	if err := c.do(ctx, http.MethodGet, "/v1/employer/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WorkersByCategory(ctx context.Context, category string) ([]domain.Worker, error) {
	var out []domain.Worker
	if err := c.do(ctx, http.MethodGet, "/v1/employer/workers/"+url.PathEscape(category), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendOffer(ctx context.Context, req domain.SendOfferRequest) (*domain.Offer, error) {
	var out domain.Offer
	if err := c.do(ctx, http.MethodPost, "/v1/employer/offers", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EmployerOffers(ctx context.Context) ([]domain.Offer, error) {
	var out []domain.Offer
	if err := c.do(ctx, http.MethodGet, "/v1/employer/offers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PublishJob(ctx context.Context, req domain.PublishJobRequest) (*domain.Job, error) {
	var out domain.Job
	if err := c.do(ctx, http.MethodPost, "/v1/employer/jobs", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EmployerJobs(ctx context.Context) ([]domain.Job, error) {
	var out []domain.Job
	if err := c.do(ctx, http.MethodGet, "/v1/employer/jobs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListVerifications(ctx context.Context, status string) ([]domain.WorkerReview, error) {
	path := "/v1/admin/verifications"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []domain.WorkerReview
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveVerification(ctx context.Context, reviewID string) (*domain.WorkerReview, error) {
	var out domain.WorkerReview
	if err := c.do(ctx, http.MethodPost, "/v1/admin/verifications/"+url.PathEscape(reviewID)+"/approve", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RejectVerification(ctx context.Context, reviewID, reason string) (*domain.WorkerReview, error) {
	body := map[string]string{"reason": reason}
	var out domain.WorkerReview
	if err := c.do(ctx, http.MethodPost, "/v1/admin/verifications/"+url.PathEscape(reviewID)+"/reject", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAadhaar uploads the Aadhaar document for a verified phone. It runs
// mid-wizard, before any account or token exists.
func (c *Client) UploadAadhaar(ctx context.Context, phone, filename string, content io.Reader) (*domain.Document, error) {
	return c.uploadDocument(ctx, "/v1/documents/aadhaar", map[string]string{
		"phone": phone,
	}, filename, content)
}

// UploadSkillProof uploads the skill certificate or work video for a verified phone.
func (c *Client) UploadSkillProof(ctx context.Context, phone, skill, certificateType, filename string, content io.Reader) (*domain.Document, error) {
	return c.uploadDocument(ctx, "/v1/documents/skill-proof", map[string]string{
		"phone":           phone,
		"skill":           skill,
		"certificateType": certificateType,
	}, filename, content)
}

// DocumentURL fetches a short-lived download link for a stored document.
func (c *Client) DocumentURL(ctx context.Context, documentID string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/documents/"+url.PathEscape(documentID), nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *Client) uploadDocument(ctx context.Context, path string, fields map[string]string, filename string, content io.Reader) (*domain.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, &APIError{Message: msgSetup}
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &APIError{Message: msgSetup}
	}
	if _, err := io.Copy(fw, content); err != nil {
		return nil, &APIError{Message: msgSetup}
	}
	if err := mw.Close(); err != nil {
		return nil, &APIError{Message: msgSetup}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, &APIError{Message: msgSetup}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out domain.Document
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do issues a JSON request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: msgSetup}
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Message: msgSetup}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	authed := false
	if sess, ok := c.Sessions.Get(); ok && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
		authed = true
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: msgNoResponse}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: msgNoResponse, StatusCode: resp.StatusCode}
	}

	if resp.StatusCode >= 400 {
		// An auth failure on an authenticated call means the session is dead:
		// drop it so subsequent calls go out clean.
		if authed && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			c.Sessions.Clear()
			return fmt.Errorf("%s: %w", http.StatusText(resp.StatusCode), ErrSessionExpired)
		}
		return serverError(resp.StatusCode, errorMessage(raw))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &APIError{Message: msgGeneric, StatusCode: resp.StatusCode}
		}
	}
	return nil
}

// errorMessage pulls the human-readable message out of an error envelope.
func errorMessage(raw []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}
