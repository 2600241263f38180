// Package job defines the data model for remote jobs: the Job snapshot,
// the Status lifecycle, the Batch collection, and job spec validation.
//
// Jobs are value snapshots. A refresh replaces a Job wholesale rather than
// patching fields in place, so concurrent watchers on distinct Batches
// need no synchronization.
package job

import (
	"time"
)

// Status is the lifecycle state of a remote job as reported by the service.
type Status string

const (
	// StatusPending means the job is queued and has not started.
	StatusPending Status = "PENDING"
	// StatusRunning means the service is processing the job.
	StatusRunning Status = "RUNNING"
	// StatusSucceeded means the job finished and its output files are
	// available until the expiration time.
	StatusSucceeded Status = "SUCCEEDED"
	// StatusFailed means the job finished unsuccessfully.
	StatusFailed Status = "FAILED"
)

// statusRank orders the lifecycle: PENDING < RUNNING < terminal. The two
// terminal states share a rank; neither may transition to the other.
var statusRank = map[Status]int{
	StatusPending:   0,
	StatusRunning:   1,
	StatusSucceeded: 2,
	StatusFailed:    2,
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// canTransition reports whether a refresh may move a job from s to next.
// RUNNING may be skipped, but the rank must never decrease and terminal
// states never change.
func (s Status) canTransition(next Status) bool {
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	return statusRank[next] > statusRank[s]
}

// File describes one output artifact of a succeeded job.
type File struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}

// Job is a snapshot of one remote job. Field names follow the HyP3 wire
// format. The zero value is not meaningful; jobs come from the service at
// submission or refresh time.
type Job struct {
	ID             string         `json:"job_id"`
	JobType        string         `json:"job_type"`
	Name           string         `json:"name,omitempty"`
	Parameters     map[string]any `json:"job_parameters,omitempty"`
	Status         Status         `json:"status_code"`
	SubmittedAt    *time.Time     `json:"request_time,omitempty"`
	StartedAt      *time.Time     `json:"start_time,omitempty"`
	CompletedAt    *time.Time     `json:"completion_time,omitempty"`
	ExpirationTime *time.Time     `json:"expiration_time,omitempty"`
	Files          []File         `json:"files,omitempty"`
	BrowseImages   []string       `json:"browse_images,omitempty"`
	Logs           []string       `json:"logs,omitempty"`
}

// Complete reports whether the job is in a terminal state.
func (j Job) Complete() bool { return j.Status.Terminal() }

// Succeeded reports whether the job finished successfully.
func (j Job) Succeeded() bool { return j.Status == StatusSucceeded }

// Failed reports whether the job finished unsuccessfully.
func (j Job) Failed() bool { return j.Status == StatusFailed }

// Expired reports whether the job's artifacts may no longer be
// retrievable. This is a terminal-but-stale condition, not an error.
func (j Job) Expired() bool {
	return j.ExpirationTime != nil && time.Now().After(*j.ExpirationTime)
}
