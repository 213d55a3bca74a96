package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crowdsage/crowdsage/domain"
)

// syncVotesWorker refreshes the cached upvote counts after vote mutations.
// Parent IDs arrive on a buffered channel, get deduplicated per batch, and
// every flush recounts the affected parents from the database before writing
// the counts back to the cache.
type syncVotesWorker struct {
	voteRepo domain.VoteRepository
	cache    domain.VoteCountCache
	ch       chan string
}

var _ domain.SyncVotesWorker = (*syncVotesWorker)(nil)

func NewSyncVotesWorker(voteRepo domain.VoteRepository, cache domain.VoteCountCache) *syncVotesWorker {
	return &syncVotesWorker{
		voteRepo: voteRepo,
		cache:    cache,
		ch:       make(chan string, 1024),
	}
}

func (s *syncVotesWorker) Send(parentID string) {
	select {
	case s.ch <- parentID:
	default:
		logrus.Info("SyncVotesWorker's channel is full, task dropped")
	}
}

func (s *syncVotesWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	const batchSize = 100
	batch := make([]string, 0, batchSize)
	for {
		select {
		case parentID := <-s.ch:
			batch = append(batch, parentID)
			if len(batch) == batchSize {
				s.flush(ctx, batch)
				batch = make([]string, 0, batchSize)
			}
		case <-ticker.C:
			s.flush(ctx, batch)
			batch = make([]string, 0, batchSize)
		case <-ctx.Done():
			logrus.Info("shutting down SyncVotesWorker, flushing remaining tasks...")
			for {
				select {
				case parentID := <-s.ch:
					batch = append(batch, parentID)
				default:
					s.flush(context.Background(), batch)
					return
				}
			}
		}
	}
}

func (s *syncVotesWorker) flush(ctx context.Context, batch []string) {
	if len(batch) == 0 {
		return
	}

	unique := make(map[string]struct{}, len(batch))
	for _, parentID := range batch {
		unique[parentID] = struct{}{}
	}

	for parentID := range unique {
		count, err := s.voteRepo.CountUpvotes(ctx, parentID)
		if err != nil {
			logrus.Errorf("failed to recount votes for %s: %v", parentID, err)
			continue
		}
		if err := s.cache.SetCount(ctx, parentID, count); err != nil {
			logrus.Errorf("failed to refresh vote count cache for %s: %v", parentID, err)
		}
	}
}
