package tasks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lysyi3m/rss-lens/app/feed"
)

var _ TaskInterface = (*FetchSourceTask)(nil)

// FetchSourceTask fetches one source. After Execute returns, Entries holds
// the result on success and Err the cause on failure.
type FetchSourceTask struct {
	Task
	Source  feed.Source
	Entries []feed.Entry
	Err     error
	fetcher Fetcher
}

func NewFetchSourceTask(source feed.Source, fetcher Fetcher) *FetchSourceTask {
	return &FetchSourceTask{
		Task:    NewTask(TaskTypeFetchSource, source.Name),
		Source:  source,
		fetcher: fetcher,
	}
}

func (t *FetchSourceTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		t.Err = ctx.Err()
		return t.Err
	default:
	}

	entries, err := t.fetcher.Fetch(ctx, t.Source)
	if err != nil {
		t.Err = err
		return err
	}
	t.Entries = entries

	slog.Info("Task completed",
		"type", t.GetType(),
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"entries", len(entries))

	return nil
}

// fail records err as the outcome and discards any partial result.
func (t *FetchSourceTask) fail(err error) {
	t.Entries = nil
	t.Err = err
}

// Problem describes the failure of the task, if any.
func (t *FetchSourceTask) Problem() *feed.Problem {
	if t.Err == nil {
		return nil
	}

	cause := t.Err
	var fetchErr *feed.FetchError
	if errors.As(cause, &fetchErr) && fetchErr.Err != nil {
		cause = fetchErr.Err
	}

	return &feed.Problem{Source: t.SourceName, Err: cause.Error()}
}
