package hyp3

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultAPIURL is the production HyP3 API endpoint.
const DefaultAPIURL = "https://hyp3-api.asf.alaska.edu"

// Config holds client-wide settings. All fields have working defaults;
// construct one with DefaultConfig or ConfigFromEnv and override as needed.
type Config struct {
	// APIURL is the base address of the job-processing API.
	APIURL string `env:"HYP3_API_URL,default=https://hyp3-api.asf.alaska.edu"`

	// Token is the bearer token sent with every request. Empty means
	// unauthenticated.
	Token string `env:"HYP3_TOKEN"`

	// MaxSpecsPerRequest is the largest number of job specs sent in a single
	// submission request. Larger submissions are chunked.
	MaxSpecsPerRequest int `env:"HYP3_MAX_SPECS_PER_REQUEST,default=200"`

	// MaxPageFetches caps how many listing pages a single query will follow
	// before failing with ErrPaginationLimit.
	MaxPageFetches int `env:"HYP3_MAX_PAGE_FETCHES,default=50"`

	// FetchRetries is how many times a watch retries a failed refresh before
	// escalating the failure to the caller.
	FetchRetries int `env:"HYP3_FETCH_RETRIES,default=3"`

	// WatchTimeout is the default deadline for a watch.
	WatchTimeout time.Duration `env:"HYP3_WATCH_TIMEOUT,default=3h"`

	// PollInitialInterval is the first delay between watch polls.
	PollInitialInterval time.Duration `env:"HYP3_POLL_INITIAL_INTERVAL,default=15s"`

	// PollMaxInterval caps the delay between watch polls.
	PollMaxInterval time.Duration `env:"HYP3_POLL_MAX_INTERVAL,default=60s"`

	// PollMultiplier is the growth factor applied to the poll interval.
	PollMultiplier float64 `env:"HYP3_POLL_MULTIPLIER,default=2"`

	// PollJitter is the fraction of the interval used as a random
	// perturbation, e.g. 0.1 means +/-10%.
	PollJitter float64 `env:"HYP3_POLL_JITTER,default=0.1"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIURL:              DefaultAPIURL,
		MaxSpecsPerRequest:  200,
		MaxPageFetches:      50,
		FetchRetries:        3,
		WatchTimeout:        3 * time.Hour,
		PollInitialInterval: 15 * time.Second,
		PollMaxInterval:     60 * time.Second,
		PollMultiplier:      2,
		PollJitter:          0.1,
	}
}

// ConfigFromEnv builds a Config from HYP3_* environment variables,
// falling back to the documented defaults for unset variables.
func ConfigFromEnv(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
