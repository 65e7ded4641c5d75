package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sreejaboddula/kaamsetu/internal/domain"
)

// State names the stages of the verification flow.
type State string

const (
	StateChoosingRole  State = "choosing_role"
	StateEnteringPhone State = "entering_phone"
	StateAwaitingOTP   State = "awaiting_otp"
	StateLoggingIn     State = "logging_in"
	StateRegistering   State = "registering"
	StateDone          State = "done"
)

// Step names the fixed-order stages of the registration wizard.
type Step string

const (
	StepBasicInfo     Step = "basic_info"
	StepDocument      Step = "document"
	StepSkill         Step = "skill"
	StepVendorDetails Step = "vendor_details"
	StepReview        Step = "review"
)

// ErrInvalidTransition is returned when an action does not apply to the
// flow's current state.
var ErrInvalidTransition = errors.New("action not valid in current state")

// BasicInfo is the first worker wizard step.
type BasicInfo struct {
	Name        string
	Email       string
	DateOfBirth string // YYYY-MM-DD
	Gender      string
	Location    domain.Location
}

// VendorDetails is the single employer wizard step.
type VendorDetails struct {
	Name         string
	Email        string
	BusinessType string
	GSTNumber    string
	Location     domain.Location
}

// VerificationFlow drives phone verification and the branch into login or
// registration. One flow instance runs at a time; it is not safe for
// concurrent use.
type VerificationFlow struct {
	api *Client

	state   State
	step    Step
	role    string
	phone   string
	code    string
	failure string

	basic      BasicInfo
	aadhaar    string
	aadhaarDoc string
	category   string
	skills     []string
	skillDoc   string
	vendor     VendorDetails
}

func NewVerificationFlow(api *Client) *VerificationFlow {
	return &VerificationFlow{api: api, state: StateChoosingRole}
}

func (f *VerificationFlow) State() State { return f.state }
func (f *VerificationFlow) Step() Step   { return f.step }
func (f *VerificationFlow) Role() string { return f.role }

// Phone returns the number the flow is verifying.
func (f *VerificationFlow) Phone() string { return f.phone }

// FailureReason is the last surfaced error message; empty after any success.
func (f *VerificationFlow) FailureReason() string { return f.failure }

// ChooseRole fixes the role for this flow instance. Changing role afterwards
// requires a new flow.
func (f *VerificationFlow) ChooseRole(role string) error {
	if f.state != StateChoosingRole {
		return ErrInvalidTransition
	}
	if !domain.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	f.role = role
	f.state = StateEnteringPhone
	return nil
}

// SubmitPhone validates the number locally and asks the server to dispatch an
// OTP. Calling it again from AwaitingOTP is a resend: a fresh dispatch for the
// same or a corrected number.
func (f *VerificationFlow) SubmitPhone(ctx context.Context, phone string) error {
	if f.state != StateEnteringPhone && f.state != StateAwaitingOTP {
		return ErrInvalidTransition
	}
	if !domain.ValidPhone(phone) {
		return errors.New("phone must be exactly 10 digits")
	}
	if phone != f.phone {
		f.discardPhoneState()
	}
	if err := f.api.SendOTP(ctx, SendOTPRequest{To: phone, Channel: "sms"}); err != nil {
		f.failure = err.Error()
		f.state = StateEnteringPhone
		return err
	}
	f.phone = phone
	f.failure = ""
	f.state = StateAwaitingOTP
	return nil
}

// ChangePhone returns to phone entry, discarding the entered OTP and any
// partial registration data gathered under the old number.
func (f *VerificationFlow) ChangePhone() error {
	switch f.state {
	case StateAwaitingOTP, StateRegistering, StateLoggingIn:
	default:
		return ErrInvalidTransition
	}
	f.discardPhoneState()
	f.phone = ""
	f.failure = ""
	f.state = StateEnteringPhone
	return nil
}

// SubmitOTP verifies the code, then branches on registration status: an
// already-registered phone goes to login, a new one into the wizard. Admin
// phones always take the login path.
func (f *VerificationFlow) SubmitOTP(ctx context.Context, code string) error {
	if f.state != StateAwaitingOTP {
		return ErrInvalidTransition
	}
	if !domain.ValidOTP(code) {
		return errors.New("code must be exactly 6 digits")
	}
	if err := f.api.VerifyOTP(ctx, VerifyOTPRequest{To: f.phone, Code: code}); err != nil {
		f.failure = err.Error()
		return err
	}
	f.code = code
	f.failure = ""

	if f.role == domain.RoleAdmin {
		f.state = StateLoggingIn
		return f.Login(ctx)
	}
	registered, err := f.api.RegistrationStatus(ctx, f.phone)
	if err != nil {
		f.failure = err.Error()
		return err
	}
	if registered {
		f.state = StateLoggingIn
		return f.Login(ctx)
	}
	f.state = StateRegistering
	if f.role == domain.RoleEmployer {
		f.step = StepVendorDetails
	} else {
		f.step = StepBasicInfo
	}
	return nil
}

// Login exchanges the verified phone and code for a session. It is called
// automatically after OTP verification of a registered phone and may be
// retried directly after a failure.
func (f *VerificationFlow) Login(ctx context.Context) error {
	if f.state != StateLoggingIn {
		return ErrInvalidTransition
	}
	var (
		res *AuthResponse
		err error
	)
	req := LoginRequest{Phone: f.phone, Code: f.code}
	if f.role == domain.RoleEmployer {
		res, err = f.api.LoginVendor(ctx, req)
	} else {
		res, err = f.api.LoginWorker(ctx, req)
	}
	if err != nil {
		f.failure = err.Error()
		return err
	}
	role := f.role
	if res.User != nil && res.User.Role != "" {
		role = res.User.Role
	}
	f.api.Sessions.Set(res.Token, role)
	f.failure = ""
	f.state = StateDone
	return nil
}

// SubmitBasicInfo commits the first worker wizard step. Local validation
// only; nothing is sent to the server.
func (f *VerificationFlow) SubmitBasicInfo(info BasicInfo) error {
	if f.state != StateRegistering || f.step != StepBasicInfo {
		return ErrInvalidTransition
	}
	if info.Name == "" || info.Email == "" || info.DateOfBirth == "" || info.Gender == "" {
		return errors.New("name, email, date of birth and gender are required")
	}
	f.basic = info
	f.step = StepDocument
	return nil
}

// SubmitDocumentInfo commits the Aadhaar step. The upload must succeed before
// the wizard advances.
func (f *VerificationFlow) SubmitDocumentInfo(ctx context.Context, aadhaarNumber, filename string, content io.Reader) error {
	if f.state != StateRegistering || f.step != StepDocument {
		return ErrInvalidTransition
	}
	if !domain.ValidAadhaar(aadhaarNumber) {
		return errors.New("aadhaar number must be exactly 12 digits")
	}
	doc, err := f.api.UploadAadhaar(ctx, f.phone, filename, content)
	if err != nil {
		f.failure = err.Error()
		return err
	}
	f.aadhaar = aadhaarNumber
	f.aadhaarDoc = doc.DocumentID
	f.failure = ""
	f.step = StepSkill
	return nil
}

// SubmitSkillInfo commits the skill step. As with documents, advancing
// requires the proof upload to have succeeded.
func (f *VerificationFlow) SubmitSkillInfo(ctx context.Context, category string, skills []string, certificateType, filename string, content io.Reader) error {
	if f.state != StateRegistering || f.step != StepSkill {
		return ErrInvalidTransition
	}
	if category == "" || len(skills) == 0 {
		return errors.New("category and at least one skill are required")
	}
	doc, err := f.api.UploadSkillProof(ctx, f.phone, skills[0], certificateType, filename, content)
	if err != nil {
		f.failure = err.Error()
		return err
	}
	f.category = category
	f.skills = skills
	f.skillDoc = doc.DocumentID
	f.failure = ""
	f.step = StepReview
	return nil
}

// SubmitVendorDetails commits the employer wizard's single data step.
func (f *VerificationFlow) SubmitVendorDetails(details VendorDetails) error {
	if f.state != StateRegistering || f.step != StepVendorDetails {
		return ErrInvalidTransition
	}
	if details.Name == "" || details.Email == "" || details.BusinessType == "" {
		return errors.New("name, email and business type are required")
	}
	f.vendor = details
	f.step = StepReview
	return nil
}

// Submit sends the merged registration payload once. On failure the flow
// stays on the review step with every collected field intact.
func (f *VerificationFlow) Submit(ctx context.Context) error {
	if f.state != StateRegistering || f.step != StepReview {
		return ErrInvalidTransition
	}
	var (
		res *AuthResponse
		err error
	)
	if f.role == domain.RoleEmployer {
		res, err = f.api.RegisterVendor(ctx, domain.RegisterVendorRequest{
			Name:         f.vendor.Name,
			Phone:        f.phone,
			Email:        f.vendor.Email,
			BusinessType: f.vendor.BusinessType,
			GSTNumber:    f.vendor.GSTNumber,
			Location:     f.vendor.Location,
		})
	} else {
		res, err = f.api.RegisterWorker(ctx, domain.RegisterWorkerRequest{
			Name:            f.basic.Name,
			Phone:           f.phone,
			Email:           f.basic.Email,
			DateOfBirth:     f.basic.DateOfBirth,
			Gender:          f.basic.Gender,
			AadhaarNumber:   f.aadhaar,
			AadhaarDocID:    f.aadhaarDoc,
			SkillProofDocID: f.skillDoc,
			Category:        f.category,
			Skills:          f.skills,
			CurrentLocation: f.basic.Location,
		})
	}
	if err != nil {
		f.failure = err.Error()
		return err
	}
	f.api.Sessions.Set(res.Token, f.role)
	f.failure = ""
	f.state = StateDone
	return nil
}

// discardPhoneState drops everything gathered under the current number.
func (f *VerificationFlow) discardPhoneState() {
	f.code = ""
	f.step = ""
	f.basic = BasicInfo{}
	f.aadhaar = ""
	f.aadhaarDoc = ""
	f.category = ""
	f.skills = nil
	f.skillDoc = ""
	f.vendor = VendorDetails{}
}
