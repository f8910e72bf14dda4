package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anandk87/filetrack/internal/client/models"
	"github.com/anandk87/filetrack/internal/common"
	"github.com/anandk87/filetrack/internal/logging"
)

// HTTPClient talks JSON over HTTP to the FileTrack server.
type HTTPClient struct {
	baseURL *url.URL
	hc      *http.Client
	log     logging.Logger

	mu    sync.Mutex
	token string
}

func NewHTTPClient(addr string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	if addr == "" {
		return nil, errors.New("addr is required")
	}
	u, err := url.Parse(addr)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	if u.Host == "" {
		return nil, errors.New("invalid addr")
	}

	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPClient{
		baseURL: u,
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return "", nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return "", nil, fmt.Errorf("%w: malformed login response", common.ErrTransport)
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) ListFiles(ctx context.Context) ([]models.File, error) {
	var resp struct {
		Files []models.File `json:"files"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/file/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

func (c *HTTPClient) CompleteFile(ctx context.Context, fileID int64) error {
	return c.doJSON(ctx, http.MethodPut, "/file/"+itoa(fileID)+"/complete", nil, nil)
}

func (c *HTTPClient) DeleteFile(ctx context.Context, fileID int64, remarks string) error {
	req := struct {
		Remarks string `json:"remarks"`
	}{Remarks: remarks}
	return c.doJSON(ctx, http.MethodPost, "/file/"+itoa(fileID)+"/delete", req, nil)
}

func (c *HTTPClient) ViewFile(ctx context.Context, fileID int64) (*FileContent, error) {
	data, contentType, err := c.doRaw(ctx, "/file/"+itoa(fileID)+"/view")
	if err != nil {
		return nil, err
	}
	return &FileContent{Data: data, ContentType: contentType}, nil
}

func (c *HTTPClient) UploadFile(ctx context.Context, up Upload) error {
	if up.Filename == "" || up.SectionID == "" {
		return fmt.Errorf("%w: filename and section are required", common.ErrValidation)
	}

	// The multipart body is assembled up front so the progress reader has a
	// known total; uploads here are office documents, not bulk data.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("section_id", up.SectionID); err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	part, err := mw.CreateFormFile("file", up.Filename)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return fmt.Errorf("%w: reading %s: %v", common.ErrTransport, up.Filename, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}

	total := int64(body.Len())
	reader := &progressReader{r: &body, total: total, fn: up.Progress}

	u := c.baseURL.JoinPath("/file/upload")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), reader)
	if err != nil {
		return err
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.decorate(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}
	return nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.Stats, error) {
	var resp models.Stats
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Alerts(ctx context.Context) ([]models.Alert, error) {
	var resp []models.Alert
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard/alerts", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) DailyReport(ctx context.Context) ([]byte, error) {
	data, _, err := c.doRaw(ctx, "/reports/daily")
	return data, err
}

// decorate attaches the headers common to every request: the bearer token
// (when present) and a fresh request id for server-side correlation.
func (c *HTTPClient) decorate(req *http.Request) {
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Accept", "application/json")
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(b)
	}

	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.decorate(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", common.ErrTransport, err)
	}
	return nil
}

// doRaw fetches a binary resource and returns its body and content type.
func (c *HTTPClient) doRaw(ctx context.Context, path string) ([]byte, string, error) {
	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	c.decorate(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, "", err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// statusError maps a non-2xx response to a sentinel error, decoding the
// server's {"message": ...} body when one is present.
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var er struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&er)
	msg := er.Message
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrAuthFailure, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrPermissionDenied, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, msg)
	default:
		return fmt.Errorf("%w: %s", common.ErrTransport, msg)
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
