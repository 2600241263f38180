// Package api defines the wire envelopes exchanged with the job service.
// The client package is the only consumer; the types are exported so
// callers can decode raw responses if they bypass the facade.
package api

import "github.com/ZachKeskinen/hyp3-sdk/job"

// SubmitRequest is the body of a POST /jobs request. The service accepts
// multiple specs per request up to its per-request limit.
type SubmitRequest struct {
	Jobs []job.Spec `json:"jobs"`
}

// JobsResponse is one page of job snapshots, returned by both the
// submission and listing endpoints. Next is the continuation token for
// the following page; empty means the listing is exhausted.
type JobsResponse struct {
	Jobs []job.Job `json:"jobs"`
	Next string    `json:"next,omitempty"`
}

// ErrorResponse is the service's error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Quota reports the caller's remaining job allowance.
type Quota struct {
	MaxJobsPerMonth *int `json:"max_jobs_per_month"`
	Remaining       *int `json:"remaining"`
}

// UserResponse is the body of a GET /user response.
type UserResponse struct {
	UserID string `json:"user_id"`
	Quota  Quota  `json:"quota"`
}
