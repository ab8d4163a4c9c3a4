// Package asyncx holds the small set of concurrency helpers the portal needs
// at its edges: settling independent probes in parallel, bounding a call with
// a deadline, and retrying dependency connections during startup.
//
//	results := asyncx.Settle(ctx,
//	    func(ctx context.Context) (string, error) { return "redis", rdb.Ping(ctx).Err() },
//	    func(ctx context.Context) (string, error) { return "postgres", db.PingContext(ctx) },
//	)
//
// Every helper honours context cancellation.
package asyncx
