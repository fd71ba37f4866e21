// Package gateway is the HTTP client for the employee backend. The backend
// owns persistence and OCR; this package only speaks its REST contract.
package gateway

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

	"github.com/go-faster/errors"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

// maxErrorBody bounds how much of a failed response is read for its detail.
const maxErrorBody = 64 << 10

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("gateway: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("gateway: %d %s", e.Status, http.StatusText(e.Status))
}

// Unwrap maps a 404 onto domain.ErrNotFound so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return nil
}

type Client struct {
	base *url.URL
	http *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse gateway url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("gateway url %q must be absolute", baseURL)
	}
	c := &Client{base: u, http: &http.Client{Timeout: 30 * time.Second}}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	err := c.do(ctx, "list", http.MethodGet, "/employees/list", nil, "", func(body []byte) error {
		return json.Unmarshal(body, &out)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Employee{}
	}
	return out, nil
}

func (c *Client) AddEmployee(ctx context.Context, u *domain.Upload) (domain.Employee, error) {
	if u.Empty() {
		return domain.Employee{}, errors.New("gateway: add employee without a file")
	}
	body, contentType, err := multipartBody(u)
	if err != nil {
		return domain.Employee{}, err
	}
	var e domain.Employee
	err = c.do(ctx, "add", http.MethodPost, "/employees/add", body, contentType, func(b []byte) error {
		return decodeEmployee(b, &e)
	})
	return e, err
}

func (c *Client) EditEmployee(ctx context.Context, id domain.EmployeeID, p domain.EmployeePatch) (domain.Employee, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return domain.Employee{}, errors.Wrap(err, "encode patch")
	}
	var e domain.Employee
	path := "/employees/edit/" + url.PathEscape(id.String())
	err = c.do(ctx, "edit", http.MethodPatch, path, bytes.NewReader(payload), "application/json", func(b []byte) error {
		return decodeEmployee(b, &e)
	})
	return e, err
}

func (c *Client) DeleteEmployee(ctx context.Context, id domain.EmployeeID) error {
	path := "/employees/delete/" + url.PathEscape(id.String())
	return c.do(ctx, "delete", http.MethodDelete, path, nil, "", nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, decode func([]byte) error) (err error) {
	start := time.Now()
	defer func() { observe(op, start, err) }()

	endpoint := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return errors.Wrapf(err, "build %s request", op)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Status: resp.StatusCode, Detail: detailOf(raw)}
	}
	if decode == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s response", op)
	}
	if err := decode(raw); err != nil {
		return errors.Wrapf(err, "decode %s response", op)
	}
	return nil
}

// decodeEmployee accepts both {"employee": {...}} and a bare record; the
// backend has shipped both shapes.
func decodeEmployee(b []byte, e *domain.Employee) error {
	var envelope struct {
		Employee json.RawMessage `json:"employee"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return err
	}
	if len(envelope.Employee) > 0 && string(envelope.Employee) != "null" {
		return json.Unmarshal(envelope.Employee, e)
	}
	return json.Unmarshal(b, e)
}

// detailOf extracts the human-readable message from an error payload.
// FastAPI returns {"detail": "..."}; validation errors carry a list.
func detailOf(raw []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(string(raw))
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(payload.Detail)
}

func multipartBody(u *domain.Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	filename := u.Filename
	if filename == "" {
		filename = "id-card"
	}
	contentType := u.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", errors.Wrap(err, "create multipart part")
	}
	if _, err := part.Write(u.Data); err != nil {
		return nil, "", errors.Wrap(err, "write multipart part")
	}
	if err := mw.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close multipart body")
	}
	return &buf, mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
