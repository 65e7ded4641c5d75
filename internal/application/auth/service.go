package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/sreejaboddula/kaamsetu/internal/domain"
	"github.com/sreejaboddula/kaamsetu/internal/pkg/id"
	pkgtoken "github.com/sreejaboddula/kaamsetu/internal/pkg/token"
	"github.com/sreejaboddula/kaamsetu/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type SendOTPRequest struct {
	To      string `json:"to" validate:"required"`
	Channel string `json:"channel" validate:"omitempty,oneof=sms email"`
	// Email is required when Channel is "email"; the OTP record stays keyed
	// by the phone number either way.
	Email string `json:"email" validate:"omitempty,email"`
}

type VerifyOTPRequest struct {
	To   string `json:"to" validate:"required"`
	Code string `json:"code" validate:"required"`
}

type LoginRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// UserInfo is the account summary returned with a token pair.
type UserInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
}

// AuthResult is the outcome of a successful login or registration.
type AuthResult struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         UserInfo  `json:"user"`
}

type VerificationStore interface {
	Put(ctx context.Context, v *domain.PhoneVerification) error
	Get(ctx context.Context, phone string) (*domain.PhoneVerification, error)
	Update(ctx context.Context, phone string, updates map[string]interface{}) error
	Delete(ctx context.Context, phone string) error
}

type WorkerStore interface {
	Put(ctx context.Context, w *domain.Worker) error
	GetByPhone(ctx context.Context, phone string) (*domain.Worker, error)
}

type VendorStore interface {
	Put(ctx context.Context, v *domain.Vendor) error
	GetByPhone(ctx context.Context, phone string) (*domain.Vendor, error)
}

type ReviewStore interface {
	Put(ctx context.Context, r *domain.WorkerReview) error
}

type SessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type Mailer interface {
	SendEmail(to, subject, body string) error
}

type JWTSigner interface {
	Sign(userID, role, sessionID string) (string, error)
}

type Service interface {
	SendOTP(ctx context.Context, req SendOTPRequest) error
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) error
	RegistrationStatus(ctx context.Context, phone string) (bool, error)
	RegisterWorker(ctx context.Context, req domain.RegisterWorkerRequest) (*AuthResult, error)
	RegisterVendor(ctx context.Context, req domain.RegisterVendorRequest) (*AuthResult, error)
	LoginWorker(ctx context.Context, req LoginRequest) (*AuthResult, error)
	LoginVendor(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (bearer, newRefreshToken string, err error)
}

// ServiceDeps bundles everything the auth service needs.
type ServiceDeps struct {
	VerificationRepo VerificationStore
	WorkerRepo       WorkerStore
	VendorRepo       VendorStore
	ReviewRepo       ReviewStore
	SessionRepo      SessionStore
	SMSSender        SMSSender
	Mailer           Mailer
	JWTProvider      JWTSigner
	JWTExpiry        time.Duration
	RefreshTokenTTL  time.Duration
	OTPTTL           time.Duration
	VerifiedPhoneTTL time.Duration
	AdminPhones      []string
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func (s *service) SendOTP(ctx context.Context, req SendOTPRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if !domain.ValidPhone(req.To) {
		return fmt.Errorf("phone must be exactly 10 digits: %w", domain.ErrBadRequest)
	}
	if req.Channel == "email" && req.Email == "" {
		return fmt.Errorf("email required for email channel: %w", domain.ErrBadRequest)
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	v := &domain.PhoneVerification{
		Phone:     req.To,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(s.deps.OTPTTL).Unix(),
	}
	if err := s.deps.VerificationRepo.Put(ctx, v); err != nil {
		return err
	}

	msg := "Your KaamSetu verification code is " + otp
	if req.Channel == "email" {
		return s.deps.Mailer.SendEmail(req.Email, "Your verification code", msg)
	}
	return s.deps.SMSSender.SendSMS(ctx, req.To, msg)
}

func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) error {
	if !domain.ValidPhone(req.To) {
		return fmt.Errorf("phone must be exactly 10 digits: %w", domain.ErrBadRequest)
	}
	if !domain.ValidOTP(req.Code) {
		return fmt.Errorf("code must be exactly 6 digits: %w", domain.ErrBadRequest)
	}
	v, err := s.deps.VerificationRepo.Get(ctx, req.To)
	if err != nil {
		return fmt.Errorf("no code requested for this number: %w", domain.ErrNotFound)
	}
	if v.ExpiresAt < time.Now().Unix() {
		return fmt.Errorf("code expired: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(v.CodeHash), []byte(req.Code)) != nil {
		return fmt.Errorf("invalid code: %w", domain.ErrUnauthorized)
	}
	// The record stays: login re-checks the same code inside the window.
	return s.deps.VerificationRepo.Update(ctx, req.To, map[string]interface{}{
		"verified_until": time.Now().Add(s.deps.VerifiedPhoneTTL).Unix(),
	})
}

func (s *service) RegistrationStatus(ctx context.Context, phone string) (bool, error) {
	if !domain.ValidPhone(phone) {
		return false, fmt.Errorf("phone must be exactly 10 digits: %w", domain.ErrBadRequest)
	}
	if _, err := s.deps.WorkerRepo.GetByPhone(ctx, phone); err == nil {
		return true, nil
	}
	if _, err := s.deps.VendorRepo.GetByPhone(ctx, phone); err == nil {
		return true, nil
	}
	return false, nil
}

func (s *service) RegisterWorker(ctx context.Context, req domain.RegisterWorkerRequest) (*AuthResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if err := s.requireVerified(ctx, req.Phone); err != nil {
		return nil, err
	}
	if registered, err := s.RegistrationStatus(ctx, req.Phone); err != nil {
		return nil, err
	} else if registered {
		return nil, fmt.Errorf("phone already registered: %w", domain.ErrConflict)
	}

	now := time.Now().UTC()
	w := &domain.Worker{
		WorkerID:        id.New(),
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		DateOfBirth:     req.DateOfBirth,
		Gender:          req.Gender,
		AadhaarNumber:   req.AadhaarNumber,
		AadhaarDocID:    req.AadhaarDocID,
		SkillProofDocID: req.SkillProofDocID,
		Category:        req.Category,
		Skills:          req.Skills,
		CurrentLocation: req.CurrentLocation,
		Status:          domain.WorkerStatusPending,
		Enable:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.deps.WorkerRepo.Put(ctx, w); err != nil {
		return nil, err
	}
	rev := &domain.WorkerReview{
		ReviewID:   id.New(),
		WorkerID:   w.WorkerID,
		WorkerName: w.Name,
		Status:     domain.ReviewStatusPending,
		CreatedAt:  now,
	}
	if err := s.deps.ReviewRepo.Put(ctx, rev); err != nil {
		return nil, err
	}
	s.consumeVerification(ctx, req.Phone)

	return s.issueTokens(ctx, UserInfo{
		ID:       w.WorkerID,
		Name:     w.Name,
		Phone:    w.Phone,
		Role:     domain.RoleWorker,
		Status:   w.Status,
		Category: w.Category,
	})
}

func (s *service) RegisterVendor(ctx context.Context, req domain.RegisterVendorRequest) (*AuthResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if err := s.requireVerified(ctx, req.Phone); err != nil {
		return nil, err
	}
	if registered, err := s.RegistrationStatus(ctx, req.Phone); err != nil {
		return nil, err
	} else if registered {
		return nil, fmt.Errorf("phone already registered: %w", domain.ErrConflict)
	}

	now := time.Now().UTC()
	v := &domain.Vendor{
		VendorID:     id.New(),
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		BusinessType: req.BusinessType,
		GSTNumber:    req.GSTNumber,
		Location:     req.Location,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.deps.VendorRepo.Put(ctx, v); err != nil {
		return nil, err
	}
	s.consumeVerification(ctx, req.Phone)

	return s.issueTokens(ctx, UserInfo{
		ID:       v.VendorID,
		Name:     v.Name,
		Phone:    v.Phone,
		Role:     domain.RoleEmployer,
		Category: v.BusinessType,
	})
}

func (s *service) LoginWorker(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := s.checkLoginCode(ctx, req); err != nil {
		return nil, err
	}
	// Admin phones authenticate through the worker login path.
	if s.isAdminPhone(req.Phone) {
		s.consumeVerification(ctx, req.Phone)
		return s.issueTokens(ctx, UserInfo{
			ID:    "admin:" + req.Phone,
			Name:  "Administrator",
			Phone: req.Phone,
			Role:  domain.RoleAdmin,
		})
	}
	w, err := s.deps.WorkerRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("no worker account for this number: %w", domain.ErrNotFound)
	}
	if !w.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	s.consumeVerification(ctx, req.Phone)
	return s.issueTokens(ctx, UserInfo{
		ID:       w.WorkerID,
		Name:     w.Name,
		Phone:    w.Phone,
		Role:     domain.RoleWorker,
		Status:   w.Status,
		Category: w.Category,
	})
}

func (s *service) LoginVendor(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := s.checkLoginCode(ctx, req); err != nil {
		return nil, err
	}
	v, err := s.deps.VendorRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("no employer account for this number: %w", domain.ErrNotFound)
	}
	if !v.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	s.consumeVerification(ctx, req.Phone)
	return s.issueTokens(ctx, UserInfo{
		ID:       v.VendorID,
		Name:     v.Name,
		Phone:    v.Phone,
		Role:     domain.RoleEmployer,
		Category: v.BusinessType,
	})
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	sess, err := s.deps.SessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	if !sess.Enable || sess.RefreshExpiresAt < time.Now().Unix() {
		return "", "", fmt.Errorf("refresh token expired: %w", domain.ErrUnauthorized)
	}
	newToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return "", "", err
	}
	newExpiry := time.Now().Add(s.deps.RefreshTokenTTL).Unix()
	if err := s.deps.SessionRepo.RotateRefreshToken(ctx, sess.SessionID, newToken, newExpiry); err != nil {
		return "", "", err
	}
	bearer, err := s.deps.JWTProvider.Sign(sess.UserID, sess.Role, sess.SessionID)
	if err != nil {
		return "", "", err
	}
	return bearer, newToken, nil
}

// checkLoginCode enforces phone/code shape, the verified window, and that the
// presented code matches the one the window was opened with.
func (s *service) checkLoginCode(ctx context.Context, req LoginRequest) error {
	if !domain.ValidPhone(req.Phone) {
		return fmt.Errorf("phone must be exactly 10 digits: %w", domain.ErrBadRequest)
	}
	if !domain.ValidOTP(req.Code) {
		return fmt.Errorf("code must be exactly 6 digits: %w", domain.ErrBadRequest)
	}
	v, err := s.deps.VerificationRepo.Get(ctx, req.Phone)
	if err != nil {
		return fmt.Errorf("phone not verified: %w", domain.ErrUnauthorized)
	}
	if !v.Verified(time.Now().Unix()) {
		return fmt.Errorf("phone not verified: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(v.CodeHash), []byte(req.Code)) != nil {
		return fmt.Errorf("invalid code: %w", domain.ErrUnauthorized)
	}
	return nil
}

func (s *service) requireVerified(ctx context.Context, phone string) error {
	v, err := s.deps.VerificationRepo.Get(ctx, phone)
	if err != nil {
		return fmt.Errorf("phone not verified: %w", domain.ErrUnauthorized)
	}
	if !v.Verified(time.Now().Unix()) {
		return fmt.Errorf("phone not verified: %w", domain.ErrUnauthorized)
	}
	return nil
}

// consumeVerification closes the phone's verification window after the flow
// that needed it has completed. Failure is non-fatal; TTL reaps the record.
func (s *service) consumeVerification(ctx context.Context, phone string) {
	if err := s.deps.VerificationRepo.Delete(ctx, phone); err != nil {
		slog.Warn("failed to delete phone verification record", "phone", phone, "err", err)
	}
}

func (s *service) issueTokens(ctx context.Context, user UserInfo) (*AuthResult, error) {
	refreshToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		UserID:           user.ID,
		Role:             user.Role,
		Enable:           true,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(s.deps.RefreshTokenTTL).Unix(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.deps.SessionRepo.Put(ctx, sess); err != nil {
		return nil, err
	}
	bearer, err := s.deps.JWTProvider.Sign(user.ID, user.Role, sess.SessionID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:        bearer,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.deps.JWTExpiry),
		User:         user,
	}, nil
}

func (s *service) isAdminPhone(phone string) bool {
	for _, p := range s.deps.AdminPhones {
		if p == phone {
			return true
		}
	}
	return false
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
