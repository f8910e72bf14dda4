package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anandk87/filetrack/internal/common"
)

// Upload prompts for a file and a target section and streams the upload,
// showing transfer progress. On failure the selection is kept so a plain
// retry re-sends the same file.
func (a *App) Upload(ctx context.Context) error {
	if !a.admit(routeUpload) {
		return nil
	}

	// A preserved selection from a failed attempt can be re-used as is.
	if file, section := a.actions.Selection(); file != "" && section != "" {
		retry, err := getSimpleText(a.reader,
			fmt.Sprintf("Retry uploading %s to section %s? (y/N)", file, section), os.Stdout)
		if err != nil {
			return err
		}
		if strings.EqualFold(retry, "y") {
			return a.doUpload(ctx)
		}
	}

	path, err := getSimpleText(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		return err
	}
	section, err := getSimpleText(a.reader, "Enter section id", os.Stdout)
	if err != nil {
		return err
	}

	a.actions.SelectFile(path)
	a.actions.SelectSection(section)

	return a.doUpload(ctx)
}

func (a *App) doUpload(ctx context.Context) error {
	err := a.actions.Upload(ctx, func(percent int) {
		printfFn("\rUploading... %d%%", percent)
	})
	printlnFn()

	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			printlnFn("Please select a file and a section.")
		} else {
			printlnFn("Upload failed. Please try again.")
		}
		return err
	}

	printlnFn("File uploaded successfully!")
	return nil
}
