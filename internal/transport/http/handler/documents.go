package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	documentapp "github.com/sreejaboddula/kaamsetu/internal/application/document"
	"github.com/sreejaboddula/kaamsetu/internal/domain"
)

// DocumentHandler handles registration document uploads. Uploads are public
// endpoints gated by phone verification, since they happen mid-wizard before
// the worker account exists.
type DocumentHandler struct {
	svc documentapp.Service
}

func NewDocumentHandler(svc documentapp.Service) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) UploadAadhaar(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, domain.DocumentKindAadhaar)
}

func (h *DocumentHandler) UploadSkillProof(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, domain.DocumentKindSkillProof)
}

func (h *DocumentHandler) upload(w http.ResponseWriter, r *http.Request, kind string) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer f.Close()

	doc, err := h.svc.Upload(r.Context(), documentapp.UploadInput{
		Phone:           r.FormValue("phone"),
		Kind:            kind,
		Skill:           r.FormValue("skill"),
		CertificateType: r.FormValue("certificateType"),
		Filename:        header.Filename,
		ContentType:     header.Header.Get("Content-Type"),
		Size:            header.Size,
		Content:         f,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// DownloadURL returns a short-lived presigned link for a stored document.
func (h *DocumentHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.DownloadURL(r.Context(), chi.URLParam(r, "documentId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
