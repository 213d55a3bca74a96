package domain

import "context"

// SyncVotesWorker keeps the cached upvote counts in step with the vote rows.
// Usecases send the parent ID of every vote mutation; the worker batches,
// recounts from the store and refreshes the cache.
type SyncVotesWorker interface {
	Start(ctx context.Context)

	// Send enqueues a recount for the given parent. Never blocks; the task
	// is dropped when the worker is saturated.
	Send(parentID string)
}
