package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anandk87/filetrack/internal/common"
)

// Files refreshes the tracked-file list from the server and renders it.
func (a *App) Files(ctx context.Context) error {
	if !a.admit(routeFiles) {
		return nil
	}
	if err := a.actions.Refresh(ctx); err != nil {
		printlnFn("Could not load files:", err.Error())
		return err
	}
	printlnFn(renderFiles(a.actions.Files()))
	return nil
}

// Complete marks a file as completed after an explicit confirmation.
func (a *App) Complete(ctx context.Context) error {
	if !a.admit(routeFiles) {
		return nil
	}

	fileID, err := a.promptFileID()
	if err != nil {
		return err
	}

	confirm, err := getSimpleText(a.reader, fmt.Sprintf("Mark file %d as completed? (y/N)", fileID), os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "y") {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.actions.Complete(ctx, fileID); err != nil {
		switch {
		case errors.Is(err, common.ErrPermissionDenied):
			printlnFn("You do not have permission to complete this file.")
		case errors.Is(err, common.ErrNotFound):
			printlnFn("No such file. Run 'files' to refresh the list.")
		default:
			printlnFn("Failed to complete file:", err.Error())
		}
		return err
	}

	printlnFn("File marked as completed.")
	return nil
}

// Delete soft-deletes a file; remarks are mandatory.
func (a *App) Delete(ctx context.Context) error {
	if !a.admit(routeFiles) {
		return nil
	}

	fileID, err := a.promptFileID()
	if err != nil {
		return err
	}
	remarks, err := getSimpleText(a.reader, "Enter remarks (required)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.actions.Delete(ctx, fileID, remarks); err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			printlnFn("Remarks are required.")
		case errors.Is(err, common.ErrPermissionDenied):
			printlnFn("You do not have permission to delete this file.")
		case errors.Is(err, common.ErrNotFound):
			printlnFn("No such file. Run 'files' to refresh the list.")
		default:
			printlnFn("Failed to delete file:", err.Error())
		}
		return err
	}

	printlnFn("File deleted; it remains available in the archive.")
	return nil
}

// View fetches a file's content and hands it to the user as a temporary
// file for an external viewer.
func (a *App) View(ctx context.Context) error {
	if !a.admit(routeFiles) {
		return nil
	}

	fileID, err := a.promptFileID()
	if err != nil {
		return err
	}

	v, err := a.actions.View(ctx, fileID)
	if err != nil {
		printlnFn("Failed to view file:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Saved for viewing: %s (%s)", v.Path, v.ContentType))
	printlnFn("The file is temporary and will be cleaned up automatically.")
	return nil
}

func (a *App) promptFileID() (int64, error) {
	raw, err := getSimpleText(a.reader, "Enter file id", os.Stdout)
	if err != nil {
		return 0, err
	}
	fileID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		printlnFn("File id must be a number.")
		return 0, fmt.Errorf("%w: file id %q", common.ErrValidation, raw)
	}
	return fileID, nil
}
