package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"

	hyp3 "github.com/ZachKeskinen/hyp3-sdk"
	"github.com/ZachKeskinen/hyp3-sdk/api"
	"github.com/ZachKeskinen/hyp3-sdk/job"
)

// Filter narrows a job search. Zero-valued fields are omitted from the
// query; the zero Filter matches every job the caller can see.
type Filter struct {
	// Name matches jobs submitted with this name.
	Name string
	// JobType matches one processing type, e.g. job.TypeRTC.
	JobType string
	// Status matches jobs currently in this state.
	Status job.Status
	// Start and End bound the submission time.
	Start time.Time
	End   time.Time
}

func (f Filter) query() url.Values {
	v := url.Values{}
	if f.Name != "" {
		v.Set("name", f.Name)
	}
	if f.JobType != "" {
		v.Set("job_type", f.JobType)
	}
	if f.Status != "" {
		v.Set("status_code", string(f.Status))
	}
	if !f.Start.IsZero() {
		v.Set("start", f.Start.UTC().Format(time.RFC3339))
	}
	if !f.End.IsZero() {
		v.Set("end", f.End.UTC().Format(time.RFC3339))
	}
	return v
}

// SubmitJobs validates every spec against the client's schema, then
// submits them, chunking into the service's per-request limit. Validation
// failures are reported all at once and nothing is sent: a structurally
// invalid spec never costs a network call.
func (c *Client) SubmitJobs(ctx context.Context, specs ...job.Spec) (*job.Batch, error) {
	batch, err := job.NewBatch()
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return batch, nil
	}

	var errs *multierror.Error
	for i, spec := range specs {
		if err := c.schema.Validate(spec); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("spec %d: %w", i, err))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	limit := c.cfg.MaxSpecsPerRequest
	if limit <= 0 {
		limit = len(specs)
	}
	for start := 0; start < len(specs); start += limit {
		end := min(start+limit, len(specs))
		var resp api.JobsResponse
		if err := c.do(ctx, http.MethodPost, "/jobs", nil, api.SubmitRequest{Jobs: specs[start:end]}, &resp); err != nil {
			return nil, err
		}
		if err := batch.Add(resp.Jobs...); err != nil {
			return nil, err
		}
	}

	c.logger.Info("submitted jobs", "count", batch.Len())
	return batch, nil
}

// FindJobs searches the service for jobs matching the filter, following
// continuation tokens until the listing is exhausted or the page cap is
// hit (ErrPaginationLimit). Zero matches is not an error.
func (c *Client) FindJobs(ctx context.Context, f Filter) (*job.Batch, error) {
	batch, err := job.NewBatch()
	if err != nil {
		return nil, err
	}

	query := f.query()
	for page := 0; ; page++ {
		if page >= c.cfg.MaxPageFetches {
			return nil, fmt.Errorf("%w: followed %d pages", hyp3.ErrPaginationLimit, page)
		}
		var resp api.JobsResponse
		if err := c.do(ctx, http.MethodGet, "/jobs", query, nil, &resp); err != nil {
			return nil, err
		}
		if err := batch.Add(resp.Jobs...); err != nil {
			return nil, err
		}
		if resp.Next == "" {
			break
		}
		query = f.query()
		query.Set("start_token", resp.Next)
	}

	if batch.Len() == 0 {
		c.logger.Warn("found zero jobs")
	}
	return batch, nil
}

// GetJob fetches one job by id. A 404 is reported as ErrMissingJob.
func (c *Client) GetJob(ctx context.Context, id string) (job.Job, error) {
	var j job.Job
	if err := c.do(ctx, http.MethodGet, jobPath(id), nil, nil, &j); err != nil {
		return job.Job{}, err
	}
	return j, nil
}

// RefreshJobs fetches fresh snapshots for the given ids, one request per
// id, strictly in order. Ids the service no longer reports come back in
// missing instead of failing the whole refresh. RefreshJobs implements
// watch.Refresher.
func (c *Client) RefreshJobs(ctx context.Context, ids []string) ([]job.Job, []string, error) {
	updated := make([]job.Job, 0, len(ids))
	var missing []string
	for _, id := range ids {
		j, err := c.GetJob(ctx, id)
		if err != nil {
			if errors.Is(err, hyp3.ErrMissingJob) {
				missing = append(missing, id)
				continue
			}
			return nil, nil, err
		}
		updated = append(updated, j)
	}
	return updated, missing, nil
}

// SubmitAutoRIFT submits one autoRIFT job for a granule pair.
func (c *Client) SubmitAutoRIFT(ctx context.Context, granule1, granule2, name string) (*job.Batch, error) {
	return c.SubmitJobs(ctx, job.NewAutoRIFTSpec(granule1, granule2, name))
}

// SubmitRTC submits one RTC_GAMMA job for a granule.
func (c *Client) SubmitRTC(ctx context.Context, granule, name string, opts job.RTCOptions) (*job.Batch, error) {
	spec, err := job.NewRTCSpec(granule, name, opts)
	if err != nil {
		return nil, err
	}
	return c.SubmitJobs(ctx, spec)
}

// SubmitInSAR submits one INSAR_GAMMA job for a granule pair.
func (c *Client) SubmitInSAR(ctx context.Context, granule1, granule2, name string, opts job.InSAROptions) (*job.Batch, error) {
	spec, err := job.NewInSARSpec(granule1, granule2, name, opts)
	if err != nil {
		return nil, err
	}
	return c.SubmitJobs(ctx, spec)
}
