package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"strings"
	"time"

	"food-storefront/storefront/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a failure reported by the backend: a non-2xx status or success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// TransportError wraps failures that happened before a backend reply was decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HasStatus reports whether err is an APIError with the given HTTP status.
func HasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Client struct {
	baseURL      string
	checkoutPath string
	client       HTTPClient
}

func NewClient(baseURL, checkoutPath string, client HTTPClient) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		checkoutPath: checkoutPath,
		client:       client,
	}
}

// NewHTTPClient returns an http.Client that keeps the backend session cookie.
func NewHTTPClient(timeout time.Duration) *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{Timeout: timeout, Jar: jar}
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) (string, error) {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) (string, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return "", fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

func (c *Client) sendForm(ctx context.Context, method, path string, form *multipartForm, out interface{}) (string, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return "", fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	return c.do(ctx, method, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) (string, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return "", &TransportError{Op: method + " " + path, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("ERROR: backend %s %s: %v", method, path, err)
		return "", &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: method + " " + path, Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if decodeErr != nil {
		return "", &TransportError{Op: "decode " + method + " " + path, Err: decodeErr}
	}
	if !env.Success {
		return "", &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return "", &TransportError{Op: "decode " + method + " " + path, Err: err}
		}
	}
	return env.Message, nil
}

type multipartForm struct {
	fields [][2]string
	file   *domain.ImageFile
	field  string
}

func newMultipartForm() *multipartForm {
	return &multipartForm{}
}

func (f *multipartForm) set(name, value string) {
	f.fields = append(f.fields, [2]string{name, value})
}

func (f *multipartForm) attach(field string, file *domain.ImageFile) {
	f.field = field
	f.file = file
}

func (f *multipartForm) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	if f.file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.file.Filename))
		contentType := f.file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.file.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
