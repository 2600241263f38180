// Package hyp3 provides a Go client for HyP3-style asynchronous job
// processing APIs. It submits batches of job specs, enumerates existing
// jobs through the paginated listing endpoint, and watches batches until
// every job reaches a terminal state, backing off adaptively between
// polls.
//
// The SDK is a client only: it never executes jobs and holds no local
// state beyond the in-memory Batch the caller owns.
//
// # Quick Start
//
//	c, err := client.New("https://hyp3-api.asf.alaska.edu",
//	    client.WithToken(os.Getenv("HYP3_TOKEN")),
//	)
//
//	batch, err := c.SubmitAutoRIFT(ctx, granule1, granule2, "my-pair")
//	result, err := c.Watch(ctx, batch)
//	if result.Outcome == watch.Done {
//	    for _, j := range result.Batch.Succeeded() {
//	        fmt.Println(j.Files[0].URL)
//	    }
//	}
//
// # Architecture
//
// Each concern lives in its own package: job (data model and spec
// validation), api (wire envelopes), backoff (delay strategies), watch
// (the polling state machine), and client (the HTTP facade composing
// them). The root package carries the shared error taxonomy and
// configuration.
package hyp3
