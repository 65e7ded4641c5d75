package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sreejaboddula/kaamsetu/internal/domain"
)

type ReviewStore interface {
	Get(ctx context.Context, reviewID string) (*domain.WorkerReview, error)
	ListByStatus(ctx context.Context, status string) ([]domain.WorkerReview, error)
	Update(ctx context.Context, reviewID string, updates map[string]interface{}) error
}

type WorkerStore interface {
	Get(ctx context.Context, workerID string) (*domain.Worker, error)
	Update(ctx context.Context, workerID string, updates map[string]interface{}) error
}

type DocumentStore interface {
	Get(ctx context.Context, documentID string) (*domain.Document, error)
}

type Presigner interface {
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ReviewDetail is a review joined with the worker's record and short-lived
// links to the documents the reviewer needs to inspect.
type ReviewDetail struct {
	domain.WorkerReview
	Worker        *domain.Worker `json:"worker"`
	AadhaarURL    string         `json:"aadhaarUrl,omitempty"`
	SkillProofURL string         `json:"skillProofUrl,omitempty"`
}

type Service interface {
	ListReviews(ctx context.Context, status string) ([]domain.WorkerReview, error)
	ReviewDetail(ctx context.Context, reviewID string) (*ReviewDetail, error)
	Approve(ctx context.Context, adminID, reviewID string) (*domain.WorkerReview, error)
	Reject(ctx context.Context, adminID, reviewID, reason string) (*domain.WorkerReview, error)
}

type ServiceDeps struct {
	ReviewRepo   ReviewStore
	WorkerRepo   WorkerStore
	DocumentRepo DocumentStore
	Files        Presigner
	PresignTTL   time.Duration
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	if deps.PresignTTL == 0 {
		deps.PresignTTL = 15 * time.Minute
	}
	return &service{deps: deps}
}

func (s *service) ListReviews(ctx context.Context, status string) ([]domain.WorkerReview, error) {
	if status == "" {
		status = domain.ReviewStatusPending
	}
	switch status {
	case domain.ReviewStatusPending, domain.ReviewStatusApproved, domain.ReviewStatusRejected:
	default:
		return nil, fmt.Errorf("unknown review status %q: %w", status, domain.ErrBadRequest)
	}
	return s.deps.ReviewRepo.ListByStatus(ctx, status)
}

func (s *service) ReviewDetail(ctx context.Context, reviewID string) (*ReviewDetail, error) {
	rev, err := s.deps.ReviewRepo.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	w, err := s.deps.WorkerRepo.Get(ctx, rev.WorkerID)
	if err != nil {
		return nil, err
	}
	detail := &ReviewDetail{WorkerReview: *rev, Worker: w}
	detail.AadhaarURL = s.documentURL(ctx, w.AadhaarDocID)
	detail.SkillProofURL = s.documentURL(ctx, w.SkillProofDocID)
	return detail, nil
}

func (s *service) Approve(ctx context.Context, adminID, reviewID string) (*domain.WorkerReview, error) {
	return s.decide(ctx, adminID, reviewID, domain.ReviewStatusApproved, "")
}

func (s *service) Reject(ctx context.Context, adminID, reviewID, reason string) (*domain.WorkerReview, error) {
	if reason == "" {
		return nil, fmt.Errorf("rejection reason is required: %w", domain.ErrBadRequest)
	}
	return s.decide(ctx, adminID, reviewID, domain.ReviewStatusRejected, reason)
}

func (s *service) decide(ctx context.Context, adminID, reviewID, status, reason string) (*domain.WorkerReview, error) {
	rev, err := s.deps.ReviewRepo.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev.Status != domain.ReviewStatusPending {
		return nil, fmt.Errorf("review already %s: %w", rev.Status, domain.ErrConflict)
	}
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":      status,
		"reviewed_by": adminID,
		"reviewed_at": now.Format(time.RFC3339),
	}
	if reason != "" {
		updates["rejection_reason"] = reason
	}
	if err := s.deps.ReviewRepo.Update(ctx, reviewID, updates); err != nil {
		return nil, err
	}
	// Worker status mirrors the review decision.
	workerStatus := domain.WorkerStatusApproved
	if status == domain.ReviewStatusRejected {
		workerStatus = domain.WorkerStatusRejected
	}
	if err := s.deps.WorkerRepo.Update(ctx, rev.WorkerID, map[string]interface{}{
		"status": workerStatus,
	}); err != nil {
		return nil, err
	}
	rev.Status = status
	rev.RejectionReason = reason
	rev.ReviewedBy = adminID
	rev.ReviewedAt = &now
	return rev, nil
}

func (s *service) documentURL(ctx context.Context, documentID string) string {
	if documentID == "" {
		return ""
	}
	doc, err := s.deps.DocumentRepo.Get(ctx, documentID)
	if err != nil {
		slog.Warn("review references missing document", "documentID", documentID, "err", err)
		return ""
	}
	url, err := s.deps.Files.PresignedURL(ctx, doc.Object, s.deps.PresignTTL)
	if err != nil {
		slog.Warn("failed to presign document", "documentID", documentID, "err", err)
		return ""
	}
	return url
}
