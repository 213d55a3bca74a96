package repository

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/crowdsage/crowdsage/domain"
)

// cachedVoteRepository 协调层: upvote counts are served from the cache and
// rebuilt from the database on miss; everything else goes straight through.
// Rebuilds for the same parent collapse via singleflight so a hot question
// cannot stampede the vote table.
type cachedVoteRepository struct {
	db           domain.VoteRepository
	cache        domain.VoteCountCache
	rebuildGroup singleflight.Group
}

var _ domain.VoteRepository = (*cachedVoteRepository)(nil)

// NewCachedVoteRepository 创建协调层repository
func NewCachedVoteRepository(db domain.VoteRepository, cache domain.VoteCountCache) *cachedVoteRepository {
	return &cachedVoteRepository{
		db:    db,
		cache: cache,
	}
}

func (r *cachedVoteRepository) CountUpvotes(ctx context.Context, parentID string) (int64, error) {
	count, err := r.cache.GetCount(ctx, parentID)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("vote count cache get error: %v", err)
	}

	result, err, _ := r.rebuildGroup.Do(parentID, func() (any, error) {
		count, err := r.db.CountUpvotes(ctx, parentID)
		if err != nil {
			return int64(0), err
		}
		if err := r.cache.SetCount(ctx, parentID, count); err != nil {
			logrus.Warnf("failed to set vote count cache: %v", err)
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(int64), nil
}

func (r *cachedVoteRepository) CountUpvotesByParents(ctx context.Context, parentIDs []string) (map[string]int64, error) {
	if len(parentIDs) == 0 {
		return map[string]int64{}, nil
	}

	cached, err := r.cache.GetCounts(ctx, parentIDs)
	if err != nil {
		logrus.Warnf("vote count cache mget error: %v", err)
		cached = map[string]int64{}
	}

	missed := make([]string, 0, len(parentIDs))
	for _, id := range parentIDs {
		if _, ok := cached[id]; !ok {
			missed = append(missed, id)
		}
	}
	if len(missed) == 0 {
		return cached, nil
	}

	fromDB, err := r.db.CountUpvotesByParents(ctx, missed)
	if err != nil {
		return nil, err
	}
	for _, id := range missed {
		count := fromDB[id] // zero when the parent has no votes
		cached[id] = count
		if err := r.cache.SetCount(ctx, id, count); err != nil {
			logrus.Warnf("failed to set vote count cache: %v", err)
		}
	}
	return cached, nil
}

func (r *cachedVoteRepository) GetByParentAndUser(ctx context.Context, parentID, userID string) (domain.VoteValue, error) {
	return r.db.GetByParentAndUser(ctx, parentID, userID)
}

func (r *cachedVoteRepository) GetByParentsAndUser(ctx context.Context, parentIDs []string, userID string) (map[string]domain.VoteValue, error) {
	return r.db.GetByParentsAndUser(ctx, parentIDs, userID)
}

// Upsert writes through to the database and drops the cached count; the next
// read (or the sync worker) rebuilds it.
func (r *cachedVoteRepository) Upsert(ctx context.Context, v *domain.Vote) error {
	if err := r.db.Upsert(ctx, v); err != nil {
		return err
	}
	if err := r.cache.DeleteCount(ctx, v.ParentID); err != nil {
		logrus.Warnf("failed to invalidate vote count cache: %v", err)
	}
	return nil
}
