// Package scheduler runs independent calls on a bounded pool of workers.
//
// It is used wherever many API calls can go out at once and only their
// collective outcome matters: closing every issue a test run created, or
// changing the state of a list of issues from the CLI.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                           Scheduler                                 │
//	│                                                                     │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │   Worker 1   │      │   Worker 2   │      │   Worker N   │       │
//	│  └──────────────┘      └──────────────┘      └──────────────┘       │
//	│         ▲                     ▲                     ▲               │
//	│         └─────────────────────┼─────────────────────┘               │
//	│                        ┌──────┴──────┐                              │
//	│                        │  dispatch() │                              │
//	│                        └──────┬──────┘                              │
//	│  ┌────────────────────────────┴────────────────────────────┐        │
//	│  │                 Work Queue (FIFO)                       │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                               ▲                                     │
//	│                        Submit(s, work)                              │
//	└─────────────────────────────────────────────────────────────────────┘
//
// Submit is a function rather than a method so the result type can be a
// type parameter. Internally every request is erased to a closure; the
// closure owns the typed result channel of its Future.
//
// # Futures
//
//	f := scheduler.Submit(s, func(ctx context.Context) (models.IssueState, error) {
//	    return client.SetIssueState(ctx, 42, models.IssueStateClosed)
//	})
//	state, err := f.Wait(ctx)
//
// A Future receives exactly one Result. Stop cancels the work's context;
// Wait cancels it too when the caller's context ends first.
//
// # Batches
//
// Run submits a slice of work and waits for all of it. Values come back in
// submission order with failures left out; the failures are joined into
// the returned error:
//
//	states, err := scheduler.Run(ctx, s, works...)
//
// # Shutdown
//
// Close cancels the main context, aborts queued work with context.Canceled,
// waits for in-flight workers, then stops the event loop. Submitting after
// Close yields a Future already holding context.Canceled. Close is idempotent.
//
// Workers recover from panics; the Future receives an error and the worker
// goes back to the pool.
package scheduler
