// Package supabase habla con el backend hospedado: PostgREST para las
// tablas y GoTrue para la autenticación.
package supabase

import (
	"errors"
	"strings"
	"time"

	"animal-rescue/internal/platform/httpclient"
)

var ErrNotConfigured = errors.New("supabase client not configured")

type Config struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

type Client struct {
	http    *httpclient.Client
	anonKey string
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" || strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, ErrNotConfigured
	}
	hc, err := httpclient.New(cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(cfg.AnonKey)
	hc.Default["apikey"] = key
	return &Client{http: hc, anonKey: key}, nil
}

// bearer: sin token de usuario se usa la anon key (rol anon en RLS).
func (c *Client) bearer(token string) map[string]string {
	if strings.TrimSpace(token) == "" {
		token = c.anonKey
	}
	return map[string]string{"Authorization": "Bearer " + token}
}
