package httpclient

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
)

const (
	DefaultTimeout = 10 * time.Second

	maxBody = 1 << 20
)

// Client envuelve *http.Client para los adapters que hablan con el backend hospedado.
// Headers fijos (apikey, etc.) van en Default y se mandan en cada request.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Default map[string]string
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		HTTP:    &http.Client{Timeout: timeout},
		Default: map[string]string{},
	}

	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// Request describe una llamada JSON.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    any
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// StatusOf devuelve el status de un *HTTPError envuelto, o 0.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// Do ejecuta req y decodifica la respuesta en out (si out != nil y hay body).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(req.Path, req.Query)
	if err != nil {
		return err
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	hr, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}

	hr.Header.Set("Accept", "application/json")
	if req.Body != nil {
		hr.Header.Set("Content-Type", "application/json")
	}
	setHeaders(hr.Header, c.Default)
	setHeaders(hr.Header, req.Headers)

	resp, err := c.HTTP.Do(hr)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

// DoJSON es el atajo para llamadas sin query params.
func (c *Client) DoJSON(ctx context.Context, method, path string, headers map[string]string, in, out any) error {
	return c.Do(ctx, Request{Method: method, Path: path, Headers: headers, Body: in}, out)
}

func (c *Client) resolveURL(path string, q url.Values) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("httpclient: empty url")
	}

	var full string
	switch {
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		full = path
	case c.BaseURL == "":
		return "", errors.New("httpclient: relative path requires BaseURL")
	default:
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		full = c.BaseURL + path
	}

	if len(q) == 0 {
		return full, nil
	}
	sep := "?"
	if strings.Contains(full, "?") {
		sep = "&"
	}
	return full + sep + q.Encode(), nil
}

func setHeaders(h http.Header, m map[string]string) {
	for k, v := range m {
		if strings.TrimSpace(k) == "" {
			continue
		}
		h.Set(k, v)
	}
}
