package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careerrise/careerctl/internal/logging"
	"github.com/careerrise/careerctl/internal/models"
)

const requestIDHeader = "X-Request-Id"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// HTTPClient talks to the platform REST API over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewHTTPClient constructs a client for the given endpoint, e.g.
// "http://localhost:8000". The timeout applies to every request.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// SetTokenSource wires the session store in after construction. The store
// needs the client for revalidation, so the two are linked in two steps.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// do issues a request and classifies the outcome. A non-nil error is one
// of ErrUnauthorized, ErrUnavailable, FieldErrors, or *RequestError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, authed bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request completed", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, parseFieldErrors(data)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, &RequestError{Status: resp.StatusCode, Detail: parseDetail(data)}
	default:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
}

// parseDetail extracts the server's {"detail": "..."} explanation.
func parseDetail(data []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

// parseFieldErrors decodes a FastAPI-style 422 body:
// {"detail": [{"loc": ["body", "field"], "msg": "...", "type": "..."}]}.
func parseFieldErrors(data []byte) error {
	var payload struct {
		Detail []struct {
			Loc []json.RawMessage `json:"loc"`
			Msg string            `json:"msg"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Detail) == 0 {
		return &RequestError{Status: http.StatusUnprocessableEntity, Detail: parseDetail(data)}
	}

	fields := make(FieldErrors, len(payload.Detail))
	for _, d := range payload.Detail {
		field := "request"
		if len(d.Loc) > 0 {
			var name string
			if err := json.Unmarshal(d.Loc[len(d.Loc)-1], &name); err == nil {
				field = name
			}
		}
		fields[field] = d.Msg
	}
	return fields
}

// message decodes the common {"message": "..."} success payload.
func message(data []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Message
}

func (c *HTTPClient) SignIn(ctx context.Context, email string, password []byte) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", string(password))

	data, err := c.do(ctx, http.MethodPost, "/signin", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", false)
	if err != nil {
		return "", err
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decoding signin response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("signin response carried no token")
	}
	return payload.AccessToken, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, req *SignupRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, "/signup", bytes.NewReader(body), "application/json", false)
	return err
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Profile, error) {
	data, err := c.do(ctx, http.MethodGet, "/me", nil, "", true)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &profile, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd *models.ProfileUpdate) (string, error) {
	body, err := json.Marshal(upd)
	if err != nil {
		return "", err
	}
	data, err := c.do(ctx, http.MethodPut, "/me", bytes.NewReader(body), "application/json", true)
	if err != nil {
		return "", err
	}
	return message(data), nil
}

func (c *HTTPClient) UploadResume(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	// The server checks the part's Content-Type, so CreateFormFile (which
	// hardcodes application/octet-stream) cannot be used here.
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	header.Set("Content-Type", "application/pdf")

	part, err := mw.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	data, err := c.do(ctx, http.MethodPost, "/upload_resume", &buf, mw.FormDataContentType(), true)
	if err != nil {
		return "", err
	}
	return message(data), nil
}

func (c *HTTPClient) AdminCheck(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/admin/check", nil, "", true)
	return err
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	data, err := c.do(ctx, http.MethodGet, "/admin/users", nil, "", true)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Users []models.UserRecord `json:"users"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding user list: %w", err)
	}
	return payload.Users, nil
}

func (c *HTTPClient) BlockUser(ctx context.Context, email string) (string, error) {
	return c.adminAction(ctx, http.MethodPost, "/admin/block/"+url.PathEscape(email))
}

func (c *HTTPClient) UnblockUser(ctx context.Context, email string) (string, error) {
	return c.adminAction(ctx, http.MethodPost, "/admin/unblock/"+url.PathEscape(email))
}

func (c *HTTPClient) RemoveUser(ctx context.Context, email string) (string, error) {
	return c.adminAction(ctx, http.MethodDelete, "/admin/remove/"+url.PathEscape(email))
}

func (c *HTTPClient) adminAction(ctx context.Context, method, path string) (string, error) {
	data, err := c.do(ctx, method, path, nil, "", true)
	if err != nil {
		return "", err
	}
	return message(data), nil
}
