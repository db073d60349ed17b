package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lysyi3m/rss-lens/app/feed"
)

// MaxWorkers caps the fetch pool regardless of configuration.
const MaxWorkers = 10

type Aggregator struct {
	fetcher     Fetcher
	workerCount int
}

func NewAggregator(fetcher Fetcher, workerCount int) *Aggregator {
	if workerCount <= 0 {
		workerCount = MaxWorkers
	}
	return &Aggregator{
		fetcher:     fetcher,
		workerCount: workerCount,
	}
}

// Start runs the aggregation on a background goroutine and returns at once.
func (a *Aggregator) Start(ctx context.Context, session *Session, sources []feed.Source, favorites FavoriteSeeder) {
	go a.Run(ctx, session, sources, favorites)
}

// Run fetches every source once, merges the results in completion order and
// publishes them sorted newest first. Failed sources become problems on the
// session; they never abort the run.
func (a *Aggregator) Run(ctx context.Context, session *Session, sources []feed.Source, favorites FavoriteSeeder) {
	session.Begin(len(sources))

	workerCount := min(a.workerCount, MaxWorkers, len(sources))
	slog.Debug("Starting aggregation", "sources", len(sources), "workers", workerCount)

	taskQueue := make(chan *FetchSourceTask, len(sources))
	results := make(chan *FetchSourceTask, len(sources))

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go a.worker(ctx, i, taskQueue, results, &wg)
	}

	for _, source := range sources {
		taskQueue <- NewFetchSourceTask(source, a.fetcher)
	}
	close(taskQueue)

	go func() {
		wg.Wait()
		close(results)
	}()

	var buffer []feed.Entry
	for task := range results {
		buffer = append(buffer, task.Entries...)
		session.complete(task.Problem())
	}

	feed.SortEntries(buffer)

	if favorites != nil {
		favorites.SeedFavorites(buffer)
	}

	session.publish(buffer)

	progress := session.Progress()
	slog.Info("Aggregation completed",
		"sources", progress.Total,
		"entries", len(buffer),
		"problems", len(session.Problems()))
}

func (a *Aggregator) worker(ctx context.Context, id int, taskQueue <-chan *FetchSourceTask, results chan<- *FetchSourceTask, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range taskQueue {
		if err := a.executeTask(ctx, id, task); err != nil {
			task.fail(err)
		}
		results <- task
	}
}

// executeTask runs one task and converts a panic into its error.
func (a *Aggregator) executeTask(ctx context.Context, workerID int, task TaskInterface) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Worker task panicked", "worker_id", workerID, "source", task.GetSourceName(), "panic", r)
			err = &feed.FetchError{Source: task.GetSourceName(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	task.Start()

	if err := task.Execute(ctx); err != nil {
		slog.Warn("Worker task execution failed",
			"worker_id", workerID,
			"type", string(task.GetType()),
			"id", task.GetID(),
			"source", task.GetSourceName(),
			"duration", task.GetDuration(),
			"error", err)
		return err
	}

	return nil
}
