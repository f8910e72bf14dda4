// Package actions orchestrates the user-triggered file mutations: complete,
// soft-delete with remarks, inline view, and multipart upload. Every
// mutation consults the authorization policy before touching the network,
// and reconciles the local tracked-file cache with the server's response.
//
// The local file collection is a cache, not an authority: when two mutations
// race, the later-arriving response wins, and responses that arrive after
// the session ended are discarded via the session epoch.
package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anandk87/filetrack/internal/client/api"
	"github.com/anandk87/filetrack/internal/client/authz"
	"github.com/anandk87/filetrack/internal/client/models"
	"github.com/anandk87/filetrack/internal/common"
	"github.com/anandk87/filetrack/internal/logging"
)

// Session is the slice of the session manager the controller consumes.
type Session interface {
	Current() (*models.Session, bool)
	Epoch() uint64
}

type Controller struct {
	client  api.Client
	session Session
	log     logging.Logger

	// viewGrace bounds how long a materialized view file may outlive its
	// hand-off to an external viewer.
	viewGrace time.Duration

	files []models.File

	// Upload form state. Cleared on success, preserved on failure so the
	// user can retry without re-selecting.
	pendingFile    string
	pendingSection string
}

func NewController(client api.Client, session Session, log logging.Logger) *Controller {
	return &Controller{
		client:    client,
		session:   session,
		log:       log,
		viewGrace: 5 * time.Minute,
	}
}

// Files returns a copy of the local tracked-file cache.
func (c *Controller) Files() []models.File {
	return append([]models.File(nil), c.files...)
}

// Refresh replaces the local cache with the server's current file list.
func (c *Controller) Refresh(ctx context.Context) error {
	epoch := c.session.Epoch()
	files, err := c.client.ListFiles(ctx)
	if err != nil {
		return err
	}
	if c.session.Epoch() != epoch {
		return common.ErrSessionExpired
	}
	c.files = files
	return nil
}

func (c *Controller) find(fileID int64) (models.File, bool) {
	for _, f := range c.files {
		if f.ID == fileID {
			return f, true
		}
	}
	return models.File{}, false
}

func (c *Controller) currentUser() *models.User {
	sess, ok := c.session.Current()
	if !ok {
		return nil
	}
	return sess.User
}

// Complete marks a file as completed. The caller must have confirmed the
// user's intent beforehand. On success the local copy flips to Completed
// with the completion time stamped; on any failure local state is untouched.
func (c *Controller) Complete(ctx context.Context, fileID int64) error {
	f, ok := c.find(fileID)
	if !ok {
		return fmt.Errorf("%w: file %d", common.ErrNotFound, fileID)
	}
	user := c.currentUser()
	if !authz.CanComplete(user, f) {
		return fmt.Errorf("%w: complete file %d", common.ErrPermissionDenied, fileID)
	}

	epoch := c.session.Epoch()
	if err := c.client.CompleteFile(ctx, fileID); err != nil {
		if errors.Is(err, common.ErrPermissionDenied) {
			// The local policy allowed this; the server disagreed.
			c.log.Warn(ctx, "server denied completion the client allowed",
				"file_id", fileID, "role", user.Role, "section", user.Section)
		}
		return err
	}
	if c.session.Epoch() != epoch {
		c.log.Debug(ctx, "discarding completion response for ended session", "file_id", fileID)
		return common.ErrSessionExpired
	}

	now := models.NewDatetime(time.Now())
	for i := range c.files {
		if c.files[i].ID == fileID {
			c.files[i].Status = models.StatusCompleted
			c.files[i].CompletionDate = now
		}
	}
	return nil
}

// Delete soft-deletes a file with mandatory remarks. Empty (after trimming)
// remarks are rejected locally before any network call. On success the file
// leaves the local collection; it lives on only in the server-side archive.
func (c *Controller) Delete(ctx context.Context, fileID int64, remarks string) error {
	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		return fmt.Errorf("%w: remarks are required", common.ErrValidation)
	}

	f, ok := c.find(fileID)
	if !ok {
		return fmt.Errorf("%w: file %d", common.ErrNotFound, fileID)
	}
	user := c.currentUser()
	if !authz.CanDelete(user, f) {
		return fmt.Errorf("%w: delete file %d", common.ErrPermissionDenied, fileID)
	}

	epoch := c.session.Epoch()
	if err := c.client.DeleteFile(ctx, fileID, remarks); err != nil {
		if errors.Is(err, common.ErrPermissionDenied) {
			c.log.Warn(ctx, "server denied deletion the client allowed",
				"file_id", fileID, "role", user.Role, "section", user.Section)
		}
		return err
	}
	if c.session.Epoch() != epoch {
		c.log.Debug(ctx, "discarding deletion response for ended session", "file_id", fileID)
		return common.ErrSessionExpired
	}

	kept := c.files[:0]
	for _, file := range c.files {
		if file.ID != fileID {
			kept = append(kept, file)
		}
	}
	c.files = kept
	return nil
}

// View fetches a file's binary content and materializes it as a temporary
// file for an external viewer. This is a view, not a download: the file
// keeps a scratch name and is removed when the handle is released, or after
// the grace window if the viewer's hand-off cannot be observed.
func (c *Controller) View(ctx context.Context, fileID int64) (*Viewing, error) {
	user := c.currentUser()
	f, ok := c.find(fileID)
	if !ok {
		return nil, fmt.Errorf("%w: file %d", common.ErrNotFound, fileID)
	}
	if !authz.CanView(user, f) {
		return nil, fmt.Errorf("%w: view file %d", common.ErrPermissionDenied, fileID)
	}

	content, err := c.client.ViewFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "filetrack-view-*"+filepath.Ext(f.Filename))
	if err != nil {
		return nil, fmt.Errorf("creating view file: %w", err)
	}
	if _, err := tmp.Write(content.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("writing view file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("closing view file: %w", err)
	}

	v := &Viewing{Path: tmp.Name(), ContentType: content.ContentType}
	v.timer = time.AfterFunc(c.viewGrace, v.Release)
	return v, nil
}

// SelectFile records the binary payload for the next upload.
func (c *Controller) SelectFile(path string) {
	c.pendingFile = path
}

// SelectSection records the target section for the next upload.
func (c *Controller) SelectSection(sectionID string) {
	c.pendingSection = sectionID
}

// Selection returns the current upload form state.
func (c *Controller) Selection() (file, section string) {
	return c.pendingFile, c.pendingSection
}

// Upload sends the selected file to the selected section as a multipart
// request, reporting transfer progress through progress (may be nil). On
// success the form state is cleared; on failure it is preserved so the user
// can retry, and a generic upload-failed error is surfaced.
func (c *Controller) Upload(ctx context.Context, progress func(percent int)) error {
	if c.pendingFile == "" || c.pendingSection == "" {
		return fmt.Errorf("%w: select a file and a section first", common.ErrValidation)
	}

	file, err := os.Open(c.pendingFile)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	epoch := c.session.Epoch()
	err = c.client.UploadFile(ctx, api.Upload{
		Filename:  filepath.Base(c.pendingFile),
		Content:   file,
		Size:      info.Size(),
		SectionID: c.pendingSection,
		Progress:  progress,
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	if c.session.Epoch() != epoch {
		return common.ErrSessionExpired
	}

	c.pendingFile = ""
	c.pendingSection = ""
	return nil
}
