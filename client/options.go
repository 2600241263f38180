package client

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	hyp3 "github.com/ZachKeskinen/hyp3-sdk"
	"github.com/ZachKeskinen/hyp3-sdk/job"
)

// Option configures a Client.
type Option func(*Client)

// WithConfig replaces the whole configuration. Apply it before other
// options so they can override individual fields.
func WithConfig(cfg hyp3.Config) Option {
	return func(c *Client) { c.cfg = cfg }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.cfg.Token = token }
}

// WithHTTPClient replaces the pooled default transport. The client must
// be safe for concurrent use.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRateLimit paces outgoing requests at r per second with the given
// burst, shared across all concurrent watches on this client.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(r, burst) }
}

// WithTracing wraps the transport with OpenTelemetry HTTP instrumentation.
// Apply after WithHTTPClient if both are used.
func WithTracing() Option {
	return func(c *Client) {
		c.httpc.Transport = otelhttp.NewTransport(c.httpc.Transport)
	}
}

// WithMaxPages caps how many listing pages one query may follow.
func WithMaxPages(n int) Option {
	return func(c *Client) { c.cfg.MaxPageFetches = n }
}

// WithMaxSpecsPerRequest sets the submission chunk size.
func WithMaxSpecsPerRequest(n int) Option {
	return func(c *Client) { c.cfg.MaxSpecsPerRequest = n }
}

// WithSchema replaces the job spec validation schema.
func WithSchema(s *job.Schema) Option {
	return func(c *Client) { c.schema = s }
}
