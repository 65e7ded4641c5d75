package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sreejaboddula/kaamsetu/internal/domain"
	"github.com/sreejaboddula/kaamsetu/internal/pkg/id"
)

type WorkerStore interface {
	Get(ctx context.Context, workerID string) (*domain.Worker, error)
}

type JobStore interface {
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	ListOpen(ctx context.Context) ([]domain.Job, error)
}

type ApplicationStore interface {
	Put(ctx context.Context, a *domain.Application) error
	ListByWorker(ctx context.Context, workerID string) ([]domain.Application, error)
	ExistsForJob(ctx context.Context, workerID, jobID string) (bool, error)
}

type OfferStore interface {
	Get(ctx context.Context, offerID string) (*domain.Offer, error)
	ListByWorker(ctx context.Context, workerID string) ([]domain.Offer, error)
	Update(ctx context.Context, offerID string, updates map[string]interface{}) error
}

type Service interface {
	Profile(ctx context.Context, workerID string) (*domain.Worker, error)
	AvailableJobs(ctx context.Context, workerID string) ([]domain.Job, error)
	Apply(ctx context.Context, workerID, jobID string) (*domain.Application, error)
	Applications(ctx context.Context, workerID string) ([]domain.Application, error)
	Offers(ctx context.Context, workerID string) ([]domain.Offer, error)
	RespondToOffer(ctx context.Context, workerID, offerID, response string) (*domain.Offer, error)
}

type ServiceDeps struct {
	WorkerRepo      WorkerStore
	JobRepo         JobStore
	ApplicationRepo ApplicationStore
	OfferRepo       OfferStore
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func (s *service) Profile(ctx context.Context, workerID string) (*domain.Worker, error) {
	return s.deps.WorkerRepo.Get(ctx, workerID)
}

// AvailableJobs lists open jobs the worker has not already applied to.
func (s *service) AvailableJobs(ctx context.Context, workerID string) ([]domain.Job, error) {
	jobs, err := s.deps.JobRepo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.deps.ApplicationRepo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	applied := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		applied[a.JobID] = struct{}{}
	}
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if _, ok := applied[j.JobID]; ok {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (s *service) Apply(ctx context.Context, workerID, jobID string) (*domain.Application, error) {
	job, err := s.deps.JobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.Enable {
		return nil, fmt.Errorf("job no longer accepting applications: %w", domain.ErrNotFound)
	}
	exists, err := s.deps.ApplicationRepo.ExistsForJob(ctx, workerID, jobID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("already applied to this job: %w", domain.ErrConflict)
	}
	now := time.Now().UTC()
	app := &domain.Application{
		ApplicationID: id.New(),
		JobID:         jobID,
		WorkerID:      workerID,
		Status:        domain.ApplicationStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.deps.ApplicationRepo.Put(ctx, app); err != nil {
		return nil, err
	}
	app.Job = job
	return app, nil
}

// Applications returns the worker's applications with each job attached where
// it still exists; a missing job leaves the field nil rather than failing the
// whole listing.
func (s *service) Applications(ctx context.Context, workerID string) ([]domain.Application, error) {
	apps, err := s.deps.ApplicationRepo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		job, err := s.deps.JobRepo.Get(ctx, apps[i].JobID)
		if err != nil {
			slog.Warn("application references missing job", "jobID", apps[i].JobID, "err", err)
			continue
		}
		apps[i].Job = job
	}
	return apps, nil
}

func (s *service) Offers(ctx context.Context, workerID string) ([]domain.Offer, error) {
	return s.deps.OfferRepo.ListByWorker(ctx, workerID)
}

func (s *service) RespondToOffer(ctx context.Context, workerID, offerID, response string) (*domain.Offer, error) {
	if response != domain.OfferStatusAccepted && response != domain.OfferStatusRejected {
		return nil, fmt.Errorf("response must be accepted or rejected: %w", domain.ErrBadRequest)
	}
	offer, err := s.deps.OfferRepo.Get(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.WorkerID != workerID {
		return nil, fmt.Errorf("offer belongs to another worker: %w", domain.ErrForbidden)
	}
	if offer.Status != domain.OfferStatusPending {
		return nil, fmt.Errorf("offer already %s: %w", offer.Status, domain.ErrConflict)
	}
	if err := s.deps.OfferRepo.Update(ctx, offerID, map[string]interface{}{
		"status": response,
	}); err != nil {
		return nil, err
	}
	offer.Status = response
	offer.UpdatedAt = time.Now().UTC()
	return offer, nil
}
