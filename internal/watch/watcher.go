// Package watch implements the job-status polling loop: fetch immediately,
// then refetch on a fixed interval while the job is still processing, and
// stop on the first terminal status. Cancelling the context tears the loop
// down with no further fetches.
package watch

import (
	"context"
	"errors"
	"time"

	"github.com/kimocks-netizen/docproc-client/internal/backend"
	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

// DefaultInterval is the fixed delay between poll ticks.
const DefaultInterval = 3 * time.Second

// Update is one observation of the watched job. Exactly one of Result,
// NotFound or Err is meaningful per update.
type Update struct {
	Result *models.ProcessingResult
	// NotFound is set when the backend answered but no job matches.
	// It is distinct from Err, which covers transport and server failures.
	NotFound bool
	// Err carries a transient poll failure. A failed tick does not stop the
	// loop; only a terminal status does.
	Err error
	// Terminal is set on the final update before the channel closes.
	Terminal bool
}

// Watcher owns the poll loop for a single job. At most one fetch is in
// flight at a time: each tick performs one fetch and the next tick is not
// scheduled until it returns.
type Watcher struct {
	client   backend.Client
	interval time.Duration
}

// New creates a watcher polling through client every interval.
// A non-positive interval falls back to DefaultInterval.
func New(client backend.Client, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{client: client, interval: interval}
}

// Watch starts polling jobID and returns a channel of updates. The channel
// closes after a terminal status is observed, the job is reported missing,
// or ctx is cancelled. The first fetch happens immediately.
func (w *Watcher) Watch(ctx context.Context, jobID string) <-chan Update {
	updates := make(chan Update)

	go func() {
		defer close(updates)

		if done := w.poll(ctx, jobID, updates); done {
			return
		}

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if done := w.poll(ctx, jobID, updates); done {
					return
				}
			}
		}
	}()

	return updates
}

// poll performs one fetch and delivers its update. It reports true when the
// loop should stop: terminal status, missing job, or cancelled context.
func (w *Watcher) poll(ctx context.Context, jobID string, updates chan<- Update) bool {
	result, err := w.client.GetResult(ctx, jobID)

	var update Update
	switch {
	case err == nil:
		update = Update{Result: result, Terminal: models.IsTerminal(result.Status)}
	case errors.Is(err, backend.ErrNotFound):
		update = Update{NotFound: true, Terminal: true}
	case ctx.Err() != nil:
		// Cancelled mid-fetch: suppress the update instead of racing a
		// torn-down consumer.
		return true
	default:
		update = Update{Err: err}
	}

	select {
	case updates <- update:
	case <-ctx.Done():
		return true
	}

	return update.Terminal
}

// Refresh performs a single on-demand fetch outside the timer, for the
// manual refresh action offered while a job is processing.
func (w *Watcher) Refresh(ctx context.Context, jobID string) (*models.ProcessingResult, error) {
	return w.client.GetResult(ctx, jobID)
}
