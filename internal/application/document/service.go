package document

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sreejaboddula/kaamsetu/internal/domain"
	"github.com/sreejaboddula/kaamsetu/internal/pkg/id"
)

// maxUploadSize caps document uploads at 10 MiB.
const maxUploadSize = 10 << 20

type DocumentStore interface {
	Put(ctx context.Context, d *domain.Document) error
	Get(ctx context.Context, documentID string) (*domain.Document, error)
}

type VerificationStore interface {
	Get(ctx context.Context, phone string) (*domain.PhoneVerification, error)
}

type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// UploadInput carries one multipart file plus its form fields.
type UploadInput struct {
	Phone           string
	Kind            string
	Skill           string
	CertificateType string
	Filename        string
	ContentType     string
	Size            int64
	Content         io.Reader
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*domain.Document, error)
	DownloadURL(ctx context.Context, documentID string) (string, error)
}

type ServiceDeps struct {
	DocumentRepo     DocumentStore
	VerificationRepo VerificationStore
	Files            ObjectStore
	PresignTTL       time.Duration
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

// Upload stores a wizard document for a phone that holds an open verification
// window. Uploads happen before the account exists, so the verified phone is
// the owner key.
func (s *service) Upload(ctx context.Context, in UploadInput) (*domain.Document, error) {
	if !domain.ValidPhone(in.Phone) {
		return nil, fmt.Errorf("phone must be exactly 10 digits: %w", domain.ErrBadRequest)
	}
	if in.Kind != domain.DocumentKindAadhaar && in.Kind != domain.DocumentKindSkillProof {
		return nil, fmt.Errorf("unknown document kind %q: %w", in.Kind, domain.ErrBadRequest)
	}
	if in.Size <= 0 || in.Size > maxUploadSize {
		return nil, fmt.Errorf("file size must be between 1 byte and %d bytes: %w", maxUploadSize, domain.ErrBadRequest)
	}
	v, err := s.deps.VerificationRepo.Get(ctx, in.Phone)
	if err != nil || !v.Verified(time.Now().Unix()) {
		return nil, fmt.Errorf("phone not verified: %w", domain.ErrUnauthorized)
	}

	docID := id.New()
	name := sanitizeFilename(in.Filename)
	key := fmt.Sprintf("documents/%s/%s/%s-%s", in.Phone, in.Kind, docID, name)

	hasher := sha256.New()
	if _, err := s.deps.Files.Upload(ctx, key, io.TeeReader(in.Content, hasher), in.ContentType); err != nil {
		return nil, err
	}

	doc := &domain.Document{
		DocumentID:      docID,
		Phone:           in.Phone,
		Kind:            in.Kind,
		Skill:           in.Skill,
		CertificateType: in.CertificateType,
		Object:          key,
		Size:            in.Size,
		ContentType:     in.ContentType,
		Name:            name,
		Hash:            hex.EncodeToString(hasher.Sum(nil)),
		Enable:          true,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.deps.DocumentRepo.Put(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *service) DownloadURL(ctx context.Context, documentID string) (string, error) {
	doc, err := s.deps.DocumentRepo.Get(ctx, documentID)
	if err != nil {
		return "", err
	}
	return s.deps.Files.PresignedURL(ctx, doc.Object, s.deps.PresignTTL)
}

// sanitizeFilename keeps the base name and replaces anything outside a safe
// character set so user input never shapes object keys.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
