// Package client provides the HTTP facade for a remote job-processing
// service: submit job specs, search and refresh jobs, and watch batches
// to completion.
//
// Usage:
//
//	c, err := client.New("https://hyp3-api.asf.alaska.edu",
//	    client.WithToken("..."),
//	)
//
//	batch, err := c.SubmitJobs(ctx, specs...)
//	result, err := c.Watch(ctx, batch)
//
// A Client is safe for concurrent use; the underlying transport pools
// connections, so several batches can be watched in parallel.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/time/rate"

	hyp3 "github.com/ZachKeskinen/hyp3-sdk"
	"github.com/ZachKeskinen/hyp3-sdk/api"
	"github.com/ZachKeskinen/hyp3-sdk/job"
)

const defaultUserAgent = "hyp3-sdk-go/1.0"

// Client talks to one job-processing API. Construct with New.
type Client struct {
	cfg       hyp3.Config
	baseURL   *url.URL
	httpc     *http.Client
	logger    *slog.Logger
	limiter   *rate.Limiter
	userAgent string
	schema    *job.Schema
}

// New creates a Client for the service at apiURL. An empty apiURL falls
// back to the configured APIURL (the production endpoint by default).
func New(apiURL string, opts ...Option) (*Client, error) {
	c := &Client{
		cfg:       hyp3.DefaultConfig(),
		httpc:     cleanhttp.DefaultPooledClient(),
		logger:    slog.Default(),
		userAgent: defaultUserAgent,
		schema:    job.DefaultSchema(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if apiURL == "" {
		apiURL = c.cfg.APIURL
	}
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q has no scheme or host", apiURL)
	}
	c.baseURL = u

	return c, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() hyp3.Config { return c.cfg }

// do issues one request and decodes the response into out (if non-nil).
// Non-2xx responses become ErrFetchFailed, except 404 which becomes
// ErrMissingJob so callers can tell "gone" from "broken".
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", hyp3.ErrFetchFailed, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		detail := apiErr.Detail
		if detail == "" {
			detail = resp.Status
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s %s: %s", hyp3.ErrMissingJob, method, path, detail)
		}
		c.logger.Warn("request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"detail", detail,
		)
		return fmt.Errorf("%w: %s %s: %d %s", hyp3.ErrFetchFailed, method, path, resp.StatusCode, detail)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode %s %s response: %v", hyp3.ErrFetchFailed, method, path, err)
		}
	}
	return nil
}

// jobPath builds the per-job resource path.
func jobPath(id string) string {
	return "/jobs/" + strings.TrimPrefix(id, "/")
}
