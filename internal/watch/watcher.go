package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/robinrj6/FFmpeg-batch/pkg/logging"
	"github.com/robinrj6/FFmpeg-batch/pkg/models"
	"github.com/robinrj6/FFmpeg-batch/pkg/retry"
)

// JobGetter fetches the current state of a job. Satisfied by the API
// client; tests substitute a scripted implementation.
type JobGetter interface {
	GetJob(id string) (*models.Job, error)
}

// Options configures a watch loop. The zero value polls every second,
// writes to stdout, observes no interrupt channel and fails fast on the
// first poll error.
type Options struct {
	Interval  time.Duration    // poll cadence, default 1s
	Out       io.Writer        // progress output, default os.Stdout
	Interrupt <-chan os.Signal // stop requests, observed only between polls
	Retry     retry.Config     // zero value keeps the fail-fast behavior
	Logger    *logging.Logger
}

// Watcher polls a job until it reaches a terminal status, re-rendering a
// single progress line in place after every poll.
type Watcher struct {
	jobs JobGetter
	opts Options
}

// New creates a watcher over the given job source
func New(jobs JobGetter, opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(logging.WARN, false)
	}
	return &Watcher{jobs: jobs, opts: opts}
}

// Watch polls the job until terminal status, interrupt, or a poll error.
// A job that ends in failed or cancelled state is a normal outcome and is
// returned without error; only transport-level trouble produces one. An
// interrupt returns (nil, nil).
func (w *Watcher) Watch(jobID string) (*models.Job, error) {
	out := w.opts.Out
	fmt.Fprintf(out, "Watching job %s...\n", jobID)
	fmt.Fprintf(out, "Press Ctrl+C to stop watching\n\n")

	for {
		if w.interrupted() {
			fmt.Fprintln(out, "\n\nStopped watching")
			return nil, nil
		}

		job, err := w.fetch(jobID)
		if err != nil {
			// End the in-place progress line before the caller prints
			// the error
			fmt.Fprintln(out)
			return nil, err
		}

		w.render(job)

		if models.IsTerminalState(job.Status) {
			w.summarize(job)
			return job, nil
		}

		select {
		case <-w.opts.Interrupt:
			fmt.Fprintln(out, "\n\nStopped watching")
			return nil, nil
		case <-time.After(w.opts.Interval):
		}
	}
}

// interrupted drains a stop request that arrived while a poll was in
// flight
func (w *Watcher) interrupted() bool {
	select {
	case <-w.opts.Interrupt:
		return true
	default:
		return false
	}
}

// fetch performs one poll. With retries configured, transient transport
// errors are retried with backoff before giving up; everything else
// surfaces immediately.
func (w *Watcher) fetch(jobID string) (*models.Job, error) {
	if !w.opts.Retry.Enabled() {
		return w.jobs.GetJob(jobID)
	}

	var job *models.Job
	err := retry.Do(context.Background(), w.opts.Retry, func() error {
		var err error
		job, err = w.jobs.GetJob(jobID)
		if err != nil {
			w.opts.Logger.Warn(fmt.Sprintf("Poll failed: %v", err))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// render rewrites the single status line in place
func (w *Watcher) render(job *models.Job) {
	fmt.Fprint(w.opts.Out, "\r"+strings.Repeat(" ", 100)+"\r")
	fmt.Fprintf(w.opts.Out, "Status: %-12s | Progress: %.1f%% | Operation: %s",
		job.Status, job.Progress, job.Operation)
}

// summarize prints the terminal-state report below the progress line
func (w *Watcher) summarize(job *models.Job) {
	out := w.opts.Out
	fmt.Fprint(out, "\n\n")

	switch job.Status {
	case models.JobStatusCompleted:
		fmt.Fprintln(out, "✓ Job completed successfully")
		fmt.Fprintf(out, "Output: %s\n", job.OutputFile)
	case models.JobStatusFailed:
		errText := job.Error
		if errText == "" {
			errText = "Unknown error"
		}
		fmt.Fprintf(out, "✗ Job failed: %s\n", errText)
	default:
		fmt.Fprintln(out, "⚠ Job was cancelled")
	}
}
