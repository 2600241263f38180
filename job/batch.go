package job

import (
	"fmt"

	hyp3 "github.com/ZachKeskinen/hyp3-sdk"
)

// Batch is an ordered collection of Jobs tracked as one unit of work,
// indexed by job id for O(1) merge. A Batch is not safe for concurrent
// mutation; callers watching a batch concurrently should hand each
// watcher its own Clone.
type Batch struct {
	jobs  []Job
	index map[string]int
}

// NewBatch creates a Batch from the given jobs. It fails with
// ErrDuplicateJob if two jobs share an id.
func NewBatch(jobs ...Job) (*Batch, error) {
	b := &Batch{index: make(map[string]int, len(jobs))}
	if err := b.Add(jobs...); err != nil {
		return nil, err
	}
	return b, nil
}

// Add appends jobs to the batch. If any id is already present, or appears
// twice in the arguments, Add fails with ErrDuplicateJob and the batch is
// left unchanged. Silent overwrite is never performed: it could mask a
// stale refresh.
func (b *Batch) Add(jobs ...Job) error {
	seen := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		if _, ok := b.index[j.ID]; ok || seen[j.ID] {
			return fmt.Errorf("%w: %q", hyp3.ErrDuplicateJob, j.ID)
		}
		seen[j.ID] = true
	}
	for _, j := range jobs {
		b.index[j.ID] = len(b.jobs)
		b.jobs = append(b.jobs, j)
	}
	return nil
}

// Merge replaces existing entries with freshly fetched snapshots. Every
// updated job must already be present (ErrUnknownJob otherwise), and its
// status must not move backward in the lifecycle (ErrStatusRegression).
// The batch is unchanged if any update is rejected.
//
// Merge is idempotent per job id: merging the same snapshot twice leaves
// the batch identical to merging it once.
func (b *Batch) Merge(updated ...Job) error {
	for _, u := range updated {
		i, ok := b.index[u.ID]
		if !ok {
			return fmt.Errorf("%w: %q", hyp3.ErrUnknownJob, u.ID)
		}
		if cur := b.jobs[i].Status; !cur.canTransition(u.Status) {
			return fmt.Errorf("%w: job %q reported %s after %s",
				hyp3.ErrStatusRegression, u.ID, u.Status, cur)
		}
	}
	for _, u := range updated {
		i := b.index[u.ID]
		b.jobs[i] = carryTimestamps(b.jobs[i], u)
	}
	return nil
}

// carryTimestamps preserves already-reported timestamps that the fresh
// snapshot omits. Timestamps are only ever added, never cleared.
func carryTimestamps(old, fresh Job) Job {
	if fresh.SubmittedAt == nil {
		fresh.SubmittedAt = old.SubmittedAt
	}
	if fresh.StartedAt == nil {
		fresh.StartedAt = old.StartedAt
	}
	if fresh.CompletedAt == nil {
		fresh.CompletedAt = old.CompletedAt
	}
	if fresh.ExpirationTime == nil {
		fresh.ExpirationTime = old.ExpirationTime
	}
	return fresh
}

// Len returns the number of jobs in the batch.
func (b *Batch) Len() int { return len(b.jobs) }

// Jobs returns the batch's jobs in insertion order. The slice is a copy.
func (b *Batch) Jobs() []Job {
	out := make([]Job, len(b.jobs))
	copy(out, b.jobs)
	return out
}

// IDs returns the job ids in insertion order.
func (b *Batch) IDs() []string {
	out := make([]string, len(b.jobs))
	for i, j := range b.jobs {
		out[i] = j.ID
	}
	return out
}

// Get returns the job with the given id.
func (b *Batch) Get(id string) (Job, bool) {
	i, ok := b.index[id]
	if !ok {
		return Job{}, false
	}
	return b.jobs[i], true
}

// Complete reports whether every job in the batch is terminal. An empty
// batch is complete.
func (b *Batch) Complete() bool {
	for _, j := range b.jobs {
		if !j.Complete() {
			return false
		}
	}
	return true
}

// Succeeded returns the succeeded jobs, preserving insertion order.
func (b *Batch) Succeeded() []Job {
	return b.filter(Job.Succeeded)
}

// Failed returns the failed jobs, preserving insertion order.
func (b *Batch) Failed() []Job {
	return b.filter(Job.Failed)
}

func (b *Batch) filter(keep func(Job) bool) []Job {
	var out []Job
	for _, j := range b.jobs {
		if keep(j) {
			out = append(out, j)
		}
	}
	return out
}

// Clone returns an independent copy of the batch. Watchers operate on a
// clone so the caller's batch is never mutated mid-watch.
func (b *Batch) Clone() *Batch {
	c := &Batch{
		jobs:  make([]Job, len(b.jobs)),
		index: make(map[string]int, len(b.index)),
	}
	copy(c.jobs, b.jobs)
	for id, i := range b.index {
		c.index[id] = i
	}
	return c
}
