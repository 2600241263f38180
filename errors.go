package hyp3

import "errors"

var (
	// Validation errors. Raised locally before any network I/O and never
	// retried; the caller must fix the input.
	ErrValidationFailed = errors.New("hyp3: job spec validation failed")

	// Batch invariant violations. Programming errors, never transient.
	ErrDuplicateJob = errors.New("hyp3: duplicate job id in batch")
	ErrUnknownJob   = errors.New("hyp3: job id not present in batch")

	// Transport errors. A non-2xx response or failed request; retried only
	// inside a watch's bounded retry budget.
	ErrFetchFailed = errors.New("hyp3: fetch failed")

	// ErrMissingJob marks a job id the service no longer reports.
	ErrMissingJob = errors.New("hyp3: job not found")

	// ErrPaginationLimit is the defensive cap on listing pages. Surfaced,
	// never retried.
	ErrPaginationLimit = errors.New("hyp3: pagination limit exceeded")

	// ErrStatusRegression means a refreshed job reported a status earlier in
	// the lifecycle than one already recorded. This is a service-side
	// protocol bug and is always surfaced.
	ErrStatusRegression = errors.New("hyp3: job status moved backward")
)
