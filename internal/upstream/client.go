package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// User-facing messages for failures that carry no usable server text.
const (
	MsgRequestFailed = "Запрос завершился с ошибкой. Попробуйте ещё раз позже."
	MsgBadResponse   = "Не удалось обработать ответ сервера. Попробуйте позже."
)

// maxBodyBytes caps how much of an upstream body is read. Teacher photos are inlined as data URIs.
const maxBodyBytes = 8 << 20

// ErrNotFound is matched when the upstream answers 404.
var ErrNotFound = errors.New("upstream: not found")

// APIError is a failed upstream call with a message safe to show to the student.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("upstream %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return e.Err
}

// Message returns the human-readable text of err, or the generic failure message.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return MsgRequestFailed
}

// Client talks JSON to the university API under /api/v1.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a Client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "upstream_client").Logger(),
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	token  string
}

// do performs the request and decodes a 2xx JSON body into dst (nil skips decoding).
func (c *Client) do(ctx context.Context, r request, dst any) error {
	fullURL := c.baseURL + "/api/v1" + r.path
	if len(r.query) > 0 {
		fullURL += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", r.path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, fullURL, body)
	if err != nil {
		return fmt.Errorf("build request %s: %w", r.path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", r.method).Str("path", r.path).Msg("Upstream request failed")
		return &APIError{Message: MsgRequestFailed, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: MsgRequestFailed, Err: err}
	}

	c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("Upstream request")

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, isJSON)}
	}

	if dst == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &APIError{Status: resp.StatusCode, Message: MsgBadResponse, Err: err}
	}
	return nil
}

// errorMessage picks the most specific text from a failed response:
// JSON "detail", then JSON "message", then a non-empty text body.
func errorMessage(raw []byte, isJSON bool) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return MsgRequestFailed
	}

	if isJSON {
		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err != nil {
			return MsgBadResponse
		}
		if detail, ok := payload["detail"].(string); ok {
			return detail
		}
		if message, ok := payload["message"].(string); ok {
			return message
		}
		return MsgRequestFailed
	}

	return trimmed
}

// envelope is the {success, error} wrapper of the student endpoints.
type envelope struct {
	Success *bool   `json:"success"`
	Error   *string `json:"error"`
}

func (e envelope) err() error {
	if e.Success == nil || *e.Success {
		return nil
	}
	msg := MsgRequestFailed
	if e.Error != nil && strings.TrimSpace(*e.Error) != "" {
		msg = *e.Error
	}
	return &APIError{Status: http.StatusOK, Message: msg}
}
