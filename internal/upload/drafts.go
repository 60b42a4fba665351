package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"kycadmin/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Draft is the server-side state of one upload form: the three fields and
// the selected files, spooled to disk so a failed upload can be retried
// without selecting them again.
type Draft struct {
	ID uuid.UUID

	mu         sync.Mutex
	dir        string
	selection  string
	userType   string
	userID     string
	bucketName string
	files      []models.FileHandle
	uploading  bool
	touchedAt  time.Time
}

// DraftView is a consistent copy of a draft for rendering.
type DraftView struct {
	ID         uuid.UUID
	UserType   string
	UserID     string
	BucketName string
	Files      []models.FileHandle
	Uploading  bool
}

// CanSubmit mirrors the submit button: disabled while uploading or with no files.
func (v DraftView) CanSubmit() bool {
	return !v.Uploading && len(v.Files) > 0
}

func (d *Draft) View() DraftView {
	d.mu.Lock()
	defer d.mu.Unlock()
	files := make([]models.FileHandle, len(d.files))
	copy(files, d.files)
	return DraftView{
		ID:         d.ID,
		UserType:   d.userType,
		UserID:     d.userID,
		BucketName: d.bucketName,
		Files:      files,
		Uploading:  d.uploading,
	}
}

func (d *Draft) SetFields(userType, userID, bucketName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.userType = userType
	d.userID = userID
	d.bucketName = bucketName
	d.touchedAt = time.Now()
}

// ReplaceFiles spools a new selection, replacing the previous one. An empty
// selection keeps the files already spooled.
func (d *Draft) ReplaceFiles(chosen []models.FileHandle) error {
	if len(chosen) == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.uploading {
		return ErrUploadInFlight
	}

	staging, err := os.MkdirTemp(d.dir, "selection-")
	if err != nil {
		return fmt.Errorf("failed to create selection directory: %w", err)
	}

	spooled := make([]models.FileHandle, 0, len(chosen))
	for i, file := range chosen {
		handle, spoolErr := spool(staging, i, file)
		if spoolErr != nil {
			_ = os.RemoveAll(staging)
			return spoolErr
		}
		spooled = append(spooled, handle)
	}

	d.removeSelectionLocked()
	d.selection = staging
	d.files = spooled
	d.touchedAt = time.Now()
	return nil
}

func spool(dir string, index int, file models.FileHandle) (models.FileHandle, error) {
	src, err := file.Open()
	if err != nil {
		return models.FileHandle{}, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer func() { _ = src.Close() }()

	name := filepath.Base(file.Name)
	path := filepath.Join(dir, fmt.Sprintf("%03d-%s", index, name))
	dst, err := os.Create(path)
	if err != nil {
		return models.FileHandle{}, fmt.Errorf("failed to spool %s: %w", file.Name, err)
	}

	size, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return models.FileHandle{}, fmt.Errorf("failed to spool %s: %w", file.Name, err)
	}

	return models.FileHandle{
		Name: name,
		Size: size,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// Clear resets fields and files after a successful upload.
func (d *Draft) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.userType, d.userID, d.bucketName = "", "", ""
	d.removeSelectionLocked()
	d.files = nil
	d.touchedAt = time.Now()
}

func (d *Draft) removeSelectionLocked() {
	if d.selection == "" {
		return
	}
	if err := os.RemoveAll(d.selection); err != nil {
		zap.L().Warn("Failed to remove spooled files", zap.Stringer("draft", d.ID), zap.Error(err))
	}
	d.selection = ""
}

// begin claims the draft for one submission and returns the request to send.
func (d *Draft) begin() (models.UploadRequest, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.uploading {
		return models.UploadRequest{}, ErrUploadInFlight
	}

	request := models.UploadRequest{
		UserType:   d.userType,
		UserID:     d.userID,
		BucketName: d.bucketName,
		Files:      append([]models.FileHandle(nil), d.files...),
	}
	if err := checkRequest(request); err != nil {
		return models.UploadRequest{}, err
	}

	d.uploading = true
	d.touchedAt = time.Now()
	return request, nil
}

func (d *Draft) finish() {
	d.mu.Lock()
	d.uploading = false
	d.touchedAt = time.Now()
	d.mu.Unlock()
}

func (d *Draft) expired(now time.Time, ttl time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.uploading && now.Sub(d.touchedAt) > ttl
}

// Drafts keeps upload drafts in memory with their files under root.
type Drafts struct {
	root     string
	ownsRoot bool
	ttl      time.Duration

	mu     sync.Mutex
	drafts map[uuid.UUID]*Draft
}

// NewDrafts stores spooled files under root, or under a fresh temporary
// directory when root is empty.
func NewDrafts(root string, ttl time.Duration) (*Drafts, error) {
	ownsRoot := root == ""
	if ownsRoot {
		dir, err := os.MkdirTemp("", "kycadmin-drafts-")
		if err != nil {
			return nil, fmt.Errorf("failed to create draft directory: %w", err)
		}
		root = dir
	} else if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create draft directory: %w", err)
	}

	return &Drafts{root: root, ownsRoot: ownsRoot, ttl: ttl, drafts: map[uuid.UUID]*Draft{}}, nil
}

// Get returns the draft for id, or a new one when id is unknown or invalid.
func (s *Drafts) Get(id string) (*Draft, error) {
	if parsed, err := uuid.Parse(id); err == nil {
		s.mu.Lock()
		draft, ok := s.drafts[parsed]
		s.mu.Unlock()
		if ok {
			return draft, nil
		}
	}
	return s.New()
}

func (s *Drafts) New() (*Draft, error) {
	id := uuid.New()
	dir := filepath.Join(s.root, id.String())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create draft %s: %w", id, err)
	}

	draft := &Draft{ID: id, dir: dir, touchedAt: time.Now()}
	s.mu.Lock()
	s.drafts[id] = draft
	s.mu.Unlock()
	return draft, nil
}

func (s *Drafts) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// Sweep drops drafts untouched for longer than the TTL and returns how
// many were removed.
func (s *Drafts) Sweep(now time.Time) (int, error) {
	s.mu.Lock()
	var stale []*Draft
	for id, draft := range s.drafts {
		if draft.expired(now, s.ttl) {
			stale = append(stale, draft)
			delete(s.drafts, id)
		}
	}
	s.mu.Unlock()

	var firstErr error
	for _, draft := range stale {
		if err := os.RemoveAll(draft.dir); err != nil {
			zap.L().Warn("Failed to remove draft files", zap.Stringer("draft", draft.ID), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return len(stale), firstErr
}

// Close removes every draft and the files spooled for them. A configured
// root directory is left in place with anything else it contains.
func (s *Drafts) Close() error {
	s.mu.Lock()
	drafts := s.drafts
	s.drafts = map[uuid.UUID]*Draft{}
	s.mu.Unlock()

	if s.ownsRoot {
		return os.RemoveAll(s.root)
	}

	var errs []error
	for _, draft := range drafts {
		if err := os.RemoveAll(draft.dir); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
