package upload

import (
	"context"
	"errors"

	"github.com/MrJamesThe3rd/revrec/internal/api"
)

//go:generate mockgen -source=flow.go -destination=uploader_mock.go -package=upload

type Status int

const (
	StatusIdle Status = iota
	StatusUploading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUploading:
		return "uploading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}

	return "idle"
}

const fallbackMessage = "Upload failed"

var ErrInFlight = errors.New("an upload is already in progress")

type Uploader interface {
	UploadContract(ctx context.Context, f api.File) (*api.UploadResult, error)
}

// Flow tracks one upload from file selection to a terminal state. It does not
// care where the file came from.
type Flow struct {
	uploader  Uploader
	maxBytes  int64
	onSuccess func(*api.UploadResult)

	status  Status
	message string
	result  *api.UploadResult
}

// NewFlow creates a Flow. onSuccess may be nil.
func NewFlow(uploader Uploader, maxBytes int64, onSuccess func(*api.UploadResult)) *Flow {
	if maxBytes <= 0 {
		maxBytes = MaxFileSize
	}

	return &Flow{
		uploader:  uploader,
		maxBytes:  maxBytes,
		onSuccess: onSuccess,
	}
}

func (f *Flow) Status() Status            { return f.status }
func (f *Flow) Message() string           { return f.message }
func (f *Flow) Result() *api.UploadResult { return f.result }
func (f *Flow) Uploader() Uploader        { return f.uploader }

// Begin validates file and moves to uploading. On a validation failure the
// flow goes straight to error and Begin returns false. Begin also refuses
// while an upload is already in flight.
func (f *Flow) Begin(file api.File) bool {
	if f.status == StatusUploading {
		return false
	}

	f.result = nil

	if err := ValidateWithLimit(file.Name, file.ContentType, file.Size, f.maxBytes); err != nil {
		f.status = StatusError
		f.message = err.Error()

		return false
	}

	f.status = StatusUploading
	f.message = ""

	return true
}

// Finish records the outcome of the upload started by Begin. The success
// callback runs before the flow reports success.
func (f *Flow) Finish(result *api.UploadResult, err error) {
	if f.status != StatusUploading {
		return
	}

	if err != nil {
		f.status = StatusError
		f.message = err.Error()

		if f.message == "" {
			f.message = fallbackMessage
		}

		return
	}

	f.result = result

	if f.onSuccess != nil {
		f.onSuccess(result)
	}

	f.status = StatusSuccess

	if result != nil {
		f.message = result.Message
	}
}

// Submit runs Begin, the upload and Finish in one call.
func (f *Flow) Submit(ctx context.Context, file api.File) error {
	if f.status == StatusUploading {
		return ErrInFlight
	}

	if !f.Begin(file) {
		return &ValidationError{Message: f.message}
	}

	result, err := f.uploader.UploadContract(ctx, file)
	f.Finish(result, err)

	if f.status == StatusError {
		return err
	}

	return nil
}

// Reset returns to idle so another file can be uploaded. It has no effect
// while an upload is in flight.
func (f *Flow) Reset() {
	if f.status == StatusUploading {
		return
	}

	f.status = StatusIdle
	f.message = ""
	f.result = nil
}
