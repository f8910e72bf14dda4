package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandk87/filetrack/internal/client/models"
	"github.com/anandk87/filetrack/internal/common"
	"github.com/anandk87/filetrack/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(srv.URL, time.Second, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, srv
}

func TestNewHTTPClient(t *testing.T) {
	_, err := NewHTTPClient("", time.Second, testLogger())
	assert.Error(t, err)

	c, err := NewHTTPClient("127.0.0.1:5000", time.Second, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "http", c.baseURL.Scheme)
}

func TestLogin(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "asha", req.Username)
		assert.Equal(t, "pw", req.Password)

		json.NewEncoder(w).Encode(map[string]any{
			"token": "jwt-token",
			"user": map[string]any{
				"id": 3, "username": "asha", "role": "Section Officer", "section": "Revenue",
			},
		})
	}))

	token, user, err := c.Login(context.Background(), "asha", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, &models.User{ID: 3, Username: "asha", Role: models.RoleSectionOfficer, Section: "Revenue"}, user)
}

func TestLogin_BadCredentials(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))

	_, _, err := c.Login(context.Background(), "asha", "wrong")
	assert.ErrorIs(t, err, common.ErrAuthFailure)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestLogin_MalformedResponse(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"token": "jwt-token"})
	}))

	_, _, err := c.Login(context.Background(), "asha", "pw")
	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestListFiles_SendsBearerToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/file/", r.URL.Path)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]any{
				{"id": 7, "filename": "survey.pdf", "section": "Revenue", "priority": "High", "status": "Pending"},
			},
		})
	}))
	c.SetToken("jwt-token")

	files, err := c.ListFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, int64(7), files[0].ID)
	assert.Equal(t, models.PriorityHigh, files[0].Priority)
	assert.Equal(t, models.StatusPending, files[0].Status)
}

func TestCompleteFile(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))

	require.NoError(t, c.CompleteFile(context.Background(), 7))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/file/7/complete", gotPath)
}

func TestCompleteFile_Forbidden(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "not your section"})
	}))

	err := c.CompleteFile(context.Background(), 7)
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
}

func TestDeleteFile(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/file/7/delete", r.URL.Path)
		var req struct {
			Remarks string `json:"remarks"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Duplicate submission", req.Remarks)
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))

	require.NoError(t, c.DeleteFile(context.Background(), 7, "Duplicate submission"))
}

func TestViewFile(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/file/7/view", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	}))

	content, err := c.ViewFile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), content.Data)
	assert.Equal(t, "application/pdf", content.ContentType)
}

func TestViewFile_NotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.ViewFile(context.Background(), 7)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUploadFile(t *testing.T) {
	payload := strings.Repeat("x", 4096)
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/file/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "3", r.FormValue("section_id"))
		file, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "note.pdf", hdr.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, payload, string(data))

		w.WriteHeader(http.StatusCreated)
	}))

	var percents []int
	err := c.UploadFile(context.Background(), Upload{
		Filename:  "note.pdf",
		Content:   bytes.NewReader([]byte(payload)),
		Size:      int64(len(payload)),
		SectionID: "3",
		Progress:  func(p int) { percents = append(percents, p) },
	})
	require.NoError(t, err)

	require.NotEmpty(t, percents)
	assert.Equal(t, 100, percents[len(percents)-1])
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}
}

func TestUploadFile_MissingFields(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	err := c.UploadFile(context.Background(), Upload{Filename: "note.pdf"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestStats(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard/stats", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"overview": map[string]any{"total": 10, "pending": 4, "overdue": 2, "completed": 4},
			"sections": []map[string]any{
				{"name": "Revenue", "total": 6, "pending": 3, "overdue": 1, "completed": 2},
			},
		})
	}))

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Overview.Total)
	require.Len(t, stats.Sections, 1)
	assert.Equal(t, "Revenue", stats.Sections[0].Name)
}

func TestStatusError_ServerFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.ListFiles(context.Background())
	assert.ErrorIs(t, err, common.ErrTransport)
}
