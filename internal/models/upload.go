package models

import "io"

type UserType string

const (
	UserTypePM UserType = "PM"
	UserTypePP UserType = "PP"
)

// UserTypes lists the selectable user categories in display order.
var UserTypes = []struct {
	Value UserType
	Label string
}{
	{Value: UserTypePM, Label: "PM (Professional Merchant)"},
	{Value: UserTypePP, Label: "PP (Private Person)"},
}

// FileHandle is one locally selected file.
type FileHandle struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// SizeMB formats the file size the way the selection list shows it.
func (f FileHandle) SizeMB() float64 {
	return float64(f.Size) / 1024 / 1024
}

// UploadRequest exists only for the duration of one submission.
type UploadRequest struct {
	UserType   string `validate:"required,oneof=PM PP"`
	UserID     string `validate:"required"`
	BucketName string `validate:"required"`
	Files      []FileHandle
}

// AcceptedUploadExtensions is advisory; it only filters the file picker.
const AcceptedUploadExtensions = ".pdf,.jpg,.jpeg,.png,.doc,.docx"
