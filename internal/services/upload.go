package services

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	m "kycadmin/internal/middlewares"
	"kycadmin/internal/models"
	"kycadmin/internal/notifier"
	"kycadmin/internal/upload"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const multipartMemory = 32 << 20

var uploadGuidelines = []string{
	"Maximum file size: 10MB per file",
	"Supported formats: PDF, JPG, PNG, DOC, DOCX",
	"Ensure all required documents are included",
	"Files are organized by user type and ID automatically",
}

type UploadService struct {
	Drafts        *upload.Drafts
	Submitter     upload.Submitter
	Renderer      *Renderer
	Notifier      notifier.INotifier
	MaxUploadSize int64
}

type uploadView struct {
	Draft      upload.DraftView
	UserTypes  any
	Accept     string
	Guidelines []string
}

func (s UploadService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.GetForm)
	r.With(m.LimitBody(s.MaxUploadSize)).Post("/", s.PostForm)
	return r
}

func (s UploadService) GetForm(w http.ResponseWriter, r *http.Request) {
	draft, err := s.Drafts.Get(r.URL.Query().Get("draft"))
	if err != nil {
		zap.L().Error("Failed to open upload draft", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.render(w, http.StatusOK, nil, draft)
}

// PostForm stores the submitted fields and files in the draft, then uploads
// unless the operator only attached files.
func (s UploadService) PostForm(w http.ResponseWriter, r *http.Request) {
	collector, notify := requestNotifier(s.Notifier)

	draft, err := s.Drafts.Get(r.URL.Query().Get("draft"))
	if err != nil {
		zap.L().Error("Failed to open upload draft", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err = r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		zap.L().Warn("Failed to parse upload form", zap.Stringer("draft", draft.ID), zap.Error(err))
		notifier.Error(notify, upload.MessageUploadFailed)
		s.render(w, http.StatusOK, collector.Notifications(), draft)
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	draft.SetFields(r.FormValue("user_type"), r.FormValue("userid"), r.FormValue("bucket_name"))
	if err = draft.ReplaceFiles(selectedFiles(r)); err != nil {
		// Never submit the previous selection in place of this one.
		zap.L().Error("Failed to store selected files", zap.Stringer("draft", draft.ID), zap.Error(err))
		notifier.Error(notify, upload.MessageUploadFailed)
		s.render(w, http.StatusOK, collector.Notifications(), draft)
		return
	}

	if r.FormValue("action") != "select" {
		_ = s.Submitter.Submit(r.Context(), notify, draft)
	}

	s.render(w, http.StatusOK, collector.Notifications(), draft)
}

func selectedFiles(r *http.Request) []models.FileHandle {
	if r.MultipartForm == nil {
		return nil
	}

	headers := r.MultipartForm.File["files"]
	files := make([]models.FileHandle, 0, len(headers))
	for _, header := range headers {
		files = append(files, fileHandle(header))
	}
	return files
}

func fileHandle(header *multipart.FileHeader) models.FileHandle {
	return models.FileHandle{
		Name: header.Filename,
		Size: header.Size,
		Open: func() (io.ReadCloser, error) { return header.Open() },
	}
}

func (s UploadService) render(
	w http.ResponseWriter,
	status int,
	notifications []models.Notification,
	draft *upload.Draft,
) {
	s.Renderer.Render(w, status, TabUpload, Page{
		Tab:           TabUpload,
		Notifications: notifications,
		Data: uploadView{
			Draft:      draft.View(),
			UserTypes:  models.UserTypes,
			Accept:     models.AcceptedUploadExtensions,
			Guidelines: uploadGuidelines,
		},
	})
}
