// Package api implements the HTTP client for the FileTrack server. It is the
// only place that talks to the network; callers receive decoded models and
// sentinel errors from internal/common.
package api

import (
	"context"
	"io"

	"github.com/anandk87/filetrack/internal/client/models"
)

// Client defines the remote operations the rest of the client depends on.
//
// Contract:
//   - Login returns the bearer token and the user record on success; bad
//     credentials map to common.ErrAuthFailure.
//   - SetToken installs (or, with "", removes) the bearer token attached to
//     every subsequent request.
//   - Mutations surface common.ErrPermissionDenied for 403 responses and
//     common.ErrTransport for network or unexpected server failures.
//   - All methods honor context cancellation.
type Client interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	SetToken(token string)

	ListFiles(ctx context.Context) ([]models.File, error)
	CompleteFile(ctx context.Context, fileID int64) error
	DeleteFile(ctx context.Context, fileID int64, remarks string) error
	ViewFile(ctx context.Context, fileID int64) (*FileContent, error)
	UploadFile(ctx context.Context, up Upload) error

	Stats(ctx context.Context) (*models.Stats, error)
	Alerts(ctx context.Context) ([]models.Alert, error)
	DailyReport(ctx context.Context) ([]byte, error)

	Close() error
}

// FileContent is the binary body of a file fetched for inline viewing.
type FileContent struct {
	Data        []byte
	ContentType string
}

// Upload describes one multipart file upload. Progress, when set, receives
// cumulative transfer percentages in [0,100] as the body is sent.
type Upload struct {
	Filename  string
	Content   io.Reader
	Size      int64
	SectionID string
	Progress  func(percent int)
}
