package document

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sreejaboddula/kaamsetu/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDocumentStore struct{ mock.Mock }

func (m *mockDocumentStore) Put(ctx context.Context, d *domain.Document) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockDocumentStore) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if d := args.Get(0); d != nil {
		return d.(*domain.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockVerificationStore struct{ mock.Mock }

func (m *mockVerificationStore) Get(ctx context.Context, phone string) (*domain.PhoneVerification, error) {
	args := m.Called(ctx, phone)
	if v := args.Get(0); v != nil {
		return v.(*domain.PhoneVerification), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	// Drain the reader the way a real uploader would, so the tee hash fills in.
	if r != nil {
		io.Copy(io.Discard, r)
	}
	return args.String(0), args.Error(1)
}

func (m *mockObjectStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

type testDeps struct {
	docs  *mockDocumentStore
	verif *mockVerificationStore
	files *mockObjectStore
}

func newTestService() (Service, *testDeps) {
	d := &testDeps{
		docs:  new(mockDocumentStore),
		verif: new(mockVerificationStore),
		files: new(mockObjectStore),
	}
	svc := NewService(ServiceDeps{
		DocumentRepo:     d.docs,
		VerificationRepo: d.verif,
		Files:            d.files,
	})
	return svc, d
}

func verifiedRecord(phone string) *domain.PhoneVerification {
	return &domain.PhoneVerification{
		Phone:         phone,
		VerifiedUntil: time.Now().Add(10 * time.Minute).Unix(),
	}
}

func validInput() UploadInput {
	content := "aadhaar scan bytes"
	return UploadInput{
		Phone:       "9876543210",
		Kind:        domain.DocumentKindAadhaar,
		Filename:    "aadhaar front.jpg",
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	}
}

func TestUpload_RequiresVerifiedPhone(t *testing.T) {
	svc, d := newTestService()
	d.verif.On("Get", mock.Anything, "9876543210").Return(nil, domain.ErrNotFound)

	_, err := svc.Upload(context.Background(), validInput())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	d.files.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_RejectsExpiredWindow(t *testing.T) {
	svc, d := newTestService()
	d.verif.On("Get", mock.Anything, "9876543210").Return(&domain.PhoneVerification{
		Phone:         "9876543210",
		VerifiedUntil: time.Now().Add(-time.Minute).Unix(),
	}, nil)

	_, err := svc.Upload(context.Background(), validInput())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpload_RejectsUnknownKind(t *testing.T) {
	svc, d := newTestService()

	in := validInput()
	in.Kind = "passport"
	_, err := svc.Upload(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrBadRequest)
	d.verif.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	svc, _ := newTestService()

	in := validInput()
	in.Size = maxUploadSize + 1
	_, err := svc.Upload(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpload_StoresObjectAndMetadata(t *testing.T) {
	svc, d := newTestService()
	d.verif.On("Get", mock.Anything, "9876543210").Return(verifiedRecord("9876543210"), nil)

	var key string
	d.files.On("Upload", mock.Anything, mock.AnythingOfType("string"), mock.Anything, "image/jpeg").
		Run(func(args mock.Arguments) { key = args.String(1) }).
		Return("", nil)

	var stored *domain.Document
	d.docs.On("Put", mock.Anything, mock.AnythingOfType("*domain.Document")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Document) }).
		Return(nil)

	in := validInput()
	doc, err := svc.Upload(context.Background(), in)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, doc.DocumentID, stored.DocumentID)
	assert.Equal(t, "9876543210", stored.Phone)
	assert.Equal(t, domain.DocumentKindAadhaar, stored.Kind)
	assert.True(t, stored.Enable)

	// Spaces in the original filename never reach the object key.
	assert.Equal(t, "aadhaar_front.jpg", stored.Name)
	assert.Contains(t, key, "documents/9876543210/aadhaar/")
	assert.Contains(t, key, "aadhaar_front.jpg")

	sum := sha256.Sum256([]byte("aadhaar scan bytes"))
	assert.Equal(t, hex.EncodeToString(sum[:]), stored.Hash)
}

func TestDownloadURL_PresignsStoredObject(t *testing.T) {
	svc, d := newTestService()
	d.docs.On("Get", mock.Anything, "doc-1").
		Return(&domain.Document{DocumentID: "doc-1", Object: "documents/9876543210/aadhaar/doc-1-scan.jpg"}, nil)
	d.files.On("PresignedURL", mock.Anything, "documents/9876543210/aadhaar/doc-1-scan.jpg", 15*time.Minute).
		Return("https://bucket.example/signed", nil)

	url, err := svc.DownloadURL(context.Background(), "doc-1")

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/signed", url)
}

func TestDownloadURL_UnknownDocument(t *testing.T) {
	svc, d := newTestService()
	d.docs.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	_, err := svc.DownloadURL(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"scan.jpg":            "scan.jpg",
		"../../../etc/passwd": "passwd",
		"my file (1).pdf":     "my_file__1_.pdf",
		"":                    "upload",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeFilename(in), "input %q", in)
	}
}
