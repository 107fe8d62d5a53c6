// Package steam provides the match-history API client for demovault
package steam

import (
	"context"
	"net/http"
	"net/url"
	"time"

	perr "demovault/internal/platform/errors"
	"demovault/internal/platform/logger"
)

const (
	baseURLDefault = "https://api.steampowered.com"
	defaultTimeout = 10 * time.Second
	defaultUA      = "demovault-ingest"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Web API key identifying this deployment
	// per-account auth codes ride alongside in Credentials
	APIKey string
}

// Client is a minimal match-history client
// callers pace and bound their own call sequences, so Do does not retry
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("steam"),
		now:  time.Now,
	}
}

// get issues a GET with the api key and UA applied and logs response metadata
// transport failures come back as ErrorCodeUnavailable; status handling is the
// caller's job since each endpoint reads statuses differently
func (c *Client) get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	if q == nil {
		q = url.Values{}
	}
	if c.opts.APIKey != "" {
		q.Set("key", c.opts.APIKey)
	}
	u := c.opts.BaseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "steam new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)

	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "steam do failed")
	}

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("steam http response")

	return resp, nil
}
