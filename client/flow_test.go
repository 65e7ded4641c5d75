package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sreejaboddula/kaamsetu/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a scripted backend for flow tests. It counts calls per path and
// records the bodies the flow sends.
type fakeAPI struct {
	t *testing.T

	registered   bool
	failSendOTP  int
	failRegister int

	calls            map[string]int
	lastVerify       map[string]string
	lastLogin        map[string]string
	registerPayloads []map[string]interface{}
	profileAuth      string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	f := &fakeAPI{t: t, calls: map[string]int{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, New(srv.URL)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls[r.URL.Path]++
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/v1/auth/send-otp":
		if f.failSendOTP > 0 {
			f.failSendOTP--
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"sms provider unavailable"}`))
			return
		}
		w.Write([]byte(`{"message":"verification code sent"}`))
	case "/v1/auth/verify-otp":
		f.lastVerify = decodeBody(f.t, r)
		w.Write([]byte(`{"message":"phone verified"}`))
	case "/v1/auth/registration-status":
		json.NewEncoder(w).Encode(map[string]bool{"isRegistered": f.registered})
	case "/v1/auth/login/user":
		f.lastLogin = decodeBody(f.t, r)
		w.Write([]byte(`{"token":"abc","refreshToken":"r1","user":{"id":"w1","role":"worker"}}`))
	case "/v1/auth/register/user":
		var payload map[string]interface{}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&payload))
		f.registerPayloads = append(f.registerPayloads, payload)
		if f.failRegister > 0 {
			f.failRegister--
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"phone already registered"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"token":"fresh-token","refreshToken":"r2","user":{"id":"w2","role":"worker"}}`))
	case "/v1/documents/aadhaar":
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"doc-aadhaar","kind":"aadhaar"}`))
	case "/v1/documents/skill-proof":
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"doc-skill","kind":"skill-proof"}`))
	case "/v1/worker/profile":
		f.profileAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"w1","name":"Asha"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}
}

func decodeBody(t *testing.T, r *http.Request) map[string]string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
	return m
}

func totalCalls(f *fakeAPI) int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// --- local validation ---

func TestFlow_RejectsInvalidPhoneLocally(t *testing.T) {
	api, c := newFakeAPI(t)
	f := NewVerificationFlow(c)
	require.NoError(t, f.ChooseRole(domain.RoleWorker))

	for _, phone := range []string{"", "12345", "98765432101", "98765abcde"} {
		err := f.SubmitPhone(context.Background(), phone)
		assert.Error(t, err, "phone %q", phone)
		assert.Equal(t, StateEnteringPhone, f.State())
	}
	assert.Zero(t, totalCalls(api), "invalid phones must not reach the network")
}

func TestFlow_RejectsInvalidOTPLocally(t *testing.T) {
	api, c := newFakeAPI(t)
	f := NewVerificationFlow(c)
	require.NoError(t, f.ChooseRole(domain.RoleWorker))
	require.NoError(t, f.SubmitPhone(context.Background(), "9876543210"))

	before := totalCalls(api)
	for _, code := range []string{"", "12345", "1234567", "12a456"} {
		err := f.SubmitOTP(context.Background(), code)
		assert.Error(t, err, "code %q", code)
		assert.Equal(t, StateAwaitingOTP, f.State())
	}
	assert.Equal(t, before, totalCalls(api), "invalid codes must not reach the network")
}

func TestFlow_RoleFixedOncePhoneEntryBegins(t *testing.T) {
	_, c := newFakeAPI(t)
	f := NewVerificationFlow(c)
	require.NoError(t, f.ChooseRole(domain.RoleWorker))
	assert.ErrorIs(t, f.ChooseRole(domain.RoleEmployer), ErrInvalidTransition)
}

// --- dispatch failure ---

func TestFlow_DispatchFailureIsResubmittable(t *testing.T) {
	api, c := newFakeAPI(t)
	api.failSendOTP = 1
	f := NewVerificationFlow(c)
	require.NoError(t, f.ChooseRole(domain.RoleWorker))

	err := f.SubmitPhone(context.Background(), "9876543210")
	require.Error(t, err)
	assert.Equal(t, StateEnteringPhone, f.State())
	assert.Equal(t, "sms provider unavailable", f.FailureReason())

	require.NoError(t, f.SubmitPhone(context.Background(), "9876543210"))
	assert.Equal(t, StateAwaitingOTP, f.State())
	assert.Empty(t, f.FailureReason())
}

// --- registration scenario ---

func TestFlow_WorkerRegistrationScenario(t *testing.T) {
	api, c := newFakeAPI(t)
	api.registered = false
	f := NewVerificationFlow(c)

	require.NoError(t, f.ChooseRole(domain.RoleWorker))
	require.NoError(t, f.SubmitPhone(context.Background(), "9876543210"))
	assert.Equal(t, StateAwaitingOTP, f.State())

	require.NoError(t, f.SubmitOTP(context.Background(), "123456"))
	assert.Equal(t, map[string]string{"to": "9876543210", "code": "123456"}, api.lastVerify)
	assert.Equal(t, StateRegistering, f.State())
	assert.Equal(t, StepBasicInfo, f.Step())

	require.NoError(t, f.SubmitBasicInfo(BasicInfo{
		Name:        "Asha",
		Email:       "asha@example.com",
		DateOfBirth: "1995-05-01",
		Gender:      "female",
	}))
	assert.Equal(t, StepDocument, f.Step())

	require.NoError(t, f.SubmitDocumentInfo(context.Background(), "123412341234", "aadhaar.jpg", bytesReader("scan")))
	assert.Equal(t, StepSkill, f.Step())

	require.NoError(t, f.SubmitSkillInfo(context.Background(), "plumbing", []string{"Plumbing"}, "video", "work.mp4", bytesReader("video")))
	assert.Equal(t, StepReview, f.Step())

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, StateDone, f.State())

	// A single registration call with everything merged.
	require.Len(t, api.registerPayloads, 1)
	payload := api.registerPayloads[0]
	assert.Equal(t, "9876543210", payload["phone"])
	assert.Equal(t, "Asha", payload["name"])
	assert.Equal(t, "1995-05-01", payload["dateOfBirth"])
	assert.Equal(t, "123412341234", payload["aadhaarNumber"])
	assert.Equal(t, "doc-aadhaar", payload["aadhaarDocumentId"])
	assert.Equal(t, "doc-skill", payload["skillProofDocumentId"])
	assert.Equal(t, []interface{}{"Plumbing"}, payload["skills"])

	// Never prompted for login.
	assert.Zero(t, api.calls["/v1/auth/login/user"])

	sess, ok := c.Sessions.Get()
	require.True(t, ok)
	assert.Equal(t, "fresh-token", sess.Token)
	assert.Equal(t, domain.RoleWorker, sess.Role)
}

func TestFlow_RegistrationFailureKeepsPayload(t *testing.T) {
	api, c := newFakeAPI(t)
	api.registered = false
	api.failRegister = 1
	f := NewVerificationFlow(c)

	require.NoError(t, f.ChooseRole(domain.RoleWorker))
	require.NoError(t, f.SubmitPhone(context.Background(), "9876543210"))
	require.NoError(t, f.SubmitOTP(context.Background(), "123456"))
	require.NoError(t, f.SubmitBasicInfo(BasicInfo{Name: "Asha", Email: "asha@example.com", DateOfBirth: "1995-05-01", Gender: "female"}))
	require.NoError(t, f.SubmitDocumentInfo(context.Background(), "123412341234", "aadhaar.jpg", bytesReader("scan")))
	require.NoError(t, f.SubmitSkillInfo(context.Background(), "plumbing", []string{"Plumbing"}, "video", "work.mp4", bytesReader("video")))

	err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateRegistering, f.State())
	assert.Equal(t, StepReview, f.Step())
	assert.Equal(t, "phone already registered", f.FailureReason())

	// Resubmission sends the identical payload.
	require.NoError(t, f.Submit(context.Background()))
	require.Len(t, api.registerPayloads, 2)
	assert.Equal(t, api.registerPayloads[0], api.registerPayloads[1])
	assert.Equal(t, StateDone, f.State())
}

// --- login scenario ---

func TestFlow_LoginScenario(t *testing.T) {
	api, c := newFakeAPI(t)
	api.registered = true
	f := NewVerificationFlow(c)

	require.NoError(t, f.ChooseRole(domain.RoleWorker))
	require.NoError(t, f.SubmitPhone(context.Background(), "9876543210"))
	require.NoError(t, f.SubmitOTP(context.Background(), "123456"))
	assert.Equal(t, StateDone, f.State())

	// Login got the verified phone and code; registration never ran.
	assert.Equal(t, map[string]string{"phone": "9876543210", "code": "123456"}, api.lastLogin)
	assert.Zero(t, api.calls["/v1/auth/register/user"])

	sess, ok := c.Sessions.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", sess.Token)
	assert.Equal(t, domain.RoleWorker, sess.Role)

	// The stored token rides on subsequent authenticated calls.
	_, err := c.WorkerProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", api.profileAuth)
}

func TestFlow_AdminSkipsRegistrationStatus(t *testing.T) {
	api, c := newFakeAPI(t)
	f := NewVerificationFlow(c)

	require.NoError(t, f.ChooseRole(domain.RoleAdmin))
	require.NoError(t, f.SubmitPhone(context.Background(), "9999999999"))
	require.NoError(t, f.SubmitOTP(context.Background(), "123456"))

	assert.Equal(t, StateDone, f.State())
	assert.Zero(t, api.calls["/v1/auth/registration-status"], "admin never branches on registration status")
	assert.Equal(t, 1, api.calls["/v1/auth/login/user"])
}

// --- changing phone mid-flow ---

func TestFlow_ChangePhoneDiscardsOTPState(t *testing.T) {
	api, c := newFakeAPI(t)
	api.registered = false
	f := NewVerificationFlow(c)

	require.NoError(t, f.ChooseRole(domain.RoleWorker))
	require.NoError(t, f.SubmitPhone(context.Background(), "9876543210"))

	require.NoError(t, f.ChangePhone())
	assert.Equal(t, StateEnteringPhone, f.State())
	assert.Empty(t, f.Phone())

	// A stale OTP cannot verify while back at phone entry.
	assert.ErrorIs(t, f.SubmitOTP(context.Background(), "123456"), ErrInvalidTransition)

	require.NoError(t, f.SubmitPhone(context.Background(), "9123456789"))
	require.NoError(t, f.SubmitOTP(context.Background(), "654321"))

	// Verification ran against the new number only.
	assert.Equal(t, map[string]string{"to": "9123456789", "code": "654321"}, api.lastVerify)
}

func TestFlow_ChangePhoneDiscardsPartialRegistration(t *testing.T) {
	api, c := newFakeAPI(t)
	api.registered = false
	f := NewVerificationFlow(c)

	require.NoError(t, f.ChooseRole(domain.RoleWorker))
	require.NoError(t, f.SubmitPhone(context.Background(), "9876543210"))
	require.NoError(t, f.SubmitOTP(context.Background(), "123456"))
	require.NoError(t, f.SubmitBasicInfo(BasicInfo{Name: "Asha", Email: "asha@example.com", DateOfBirth: "1995-05-01", Gender: "female"}))

	require.NoError(t, f.ChangePhone())

	// Back through the full wizard: the old step position is gone.
	require.NoError(t, f.SubmitPhone(context.Background(), "9123456789"))
	require.NoError(t, f.SubmitOTP(context.Background(), "123456"))
	assert.Equal(t, StepBasicInfo, f.Step())
	assert.ErrorIs(t, f.Submit(context.Background()), ErrInvalidTransition)
}

// --- resend ---

func TestFlow_ResendIsFreshDispatch(t *testing.T) {
	api, c := newFakeAPI(t)
	f := NewVerificationFlow(c)

	require.NoError(t, f.ChooseRole(domain.RoleWorker))
	require.NoError(t, f.SubmitPhone(context.Background(), "9876543210"))
	require.NoError(t, f.SubmitPhone(context.Background(), "9876543210"))

	assert.Equal(t, 2, api.calls["/v1/auth/send-otp"])
	assert.Equal(t, StateAwaitingOTP, f.State())
}
