package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anandk87/filetrack/internal/client/actions"
	"github.com/anandk87/filetrack/internal/client/api"
	"github.com/anandk87/filetrack/internal/client/guard"
	"github.com/anandk87/filetrack/internal/client/models"
	"github.com/anandk87/filetrack/internal/client/repositories/credentials"
	"github.com/anandk87/filetrack/internal/client/session"
	"github.com/anandk87/filetrack/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeClient backs a full App without a server.
type fakeClient struct {
	loginToken     string
	loginUser      *models.User
	loginErr       error
	files          []models.File
	callErr        error
	deleted        []int64
	completed      []int64
	uploadProgress bool
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func (f *fakeClient) SetToken(token string) {}

func (f *fakeClient) ListFiles(ctx context.Context) ([]models.File, error) {
	return f.files, f.callErr
}

func (f *fakeClient) CompleteFile(ctx context.Context, fileID int64) error {
	if f.callErr != nil {
		return f.callErr
	}
	f.completed = append(f.completed, fileID)
	return nil
}

func (f *fakeClient) DeleteFile(ctx context.Context, fileID int64, remarks string) error {
	if f.callErr != nil {
		return f.callErr
	}
	f.deleted = append(f.deleted, fileID)
	return nil
}

func (f *fakeClient) ViewFile(ctx context.Context, fileID int64) (*api.FileContent, error) {
	return &api.FileContent{Data: []byte("x"), ContentType: "application/pdf"}, f.callErr
}

func (f *fakeClient) UploadFile(ctx context.Context, up api.Upload) error {
	if f.callErr != nil {
		return f.callErr
	}
	if f.uploadProgress && up.Progress != nil {
		up.Progress(50)
		up.Progress(100)
	}
	return nil
}
func (f *fakeClient) Stats(ctx context.Context) (*models.Stats, error)    { return &models.Stats{}, f.callErr }
func (f *fakeClient) Alerts(ctx context.Context) ([]models.Alert, error)  { return nil, f.callErr }
func (f *fakeClient) DailyReport(ctx context.Context) ([]byte, error)     { return nil, f.callErr }
func (f *fakeClient) Close() error                                        { return nil }

// newTestApp wires an App over in-memory parts; the watchdog is disabled.
func newTestApp(t *testing.T, client *fakeClient) *App {
	t.Helper()
	log := testLogger()
	sess := session.New(context.Background(), credentials.NewMemoryRepository(), client, 0, log)
	return &App{
		client:  client,
		session: sess,
		actions: actions.NewController(client, sess, log),
		guard:   guard.New(sess, routeLogin),
		log:     log,
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

// stubInputs replaces the interactive prompts with a scripted sequence.
func stubInputs(t *testing.T, texts []string, password string) {
	t.Helper()
	oldText, oldPassword := getSimpleText, getPassword

	i := 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		s := texts[i]
		i++
		return s, nil
	}
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}

	t.Cleanup(func() {
		getSimpleText = oldText
		getPassword = oldPassword
	})
}

func login(t *testing.T, a *App) {
	t.Helper()
	stubInputs(t, []string{"asha"}, "pw")
	require.NoError(t, a.Login(context.Background()))
}

func adminClient() *fakeClient {
	return &fakeClient{
		loginToken: "jwt-token",
		loginUser:  &models.User{ID: 1, Username: "asha", Role: models.RoleAdmin},
		files: []models.File{
			{ID: 7, Filename: "survey.pdf", Section: "Revenue", Priority: models.PriorityHigh, Status: models.StatusPending},
		},
	}
}
