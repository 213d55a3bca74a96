package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crowdsage/crowdsage/domain"
)

const (
	// KeyVoteCount is namespaced by parent kind ("question"/"answer") so
	// both caches can share one redis database.
	KeyVoteCount = "votes:%s:%s"

	voteCountTTL = 10 * time.Minute
)

type voteCountCache struct {
	client *redis.Client
	kind   string
}

var _ domain.VoteCountCache = (*voteCountCache)(nil)

// NewVoteCountCache creates the upvote-count cache for one parent kind.
func NewVoteCountCache(client *redis.Client, kind string) *voteCountCache {
	return &voteCountCache{
		client: client,
		kind:   kind,
	}
}

func (c *voteCountCache) key(parentID string) string {
	return fmt.Sprintf(KeyVoteCount, c.kind, parentID)
}

func (c *voteCountCache) GetCount(ctx context.Context, parentID string) (int64, error) {
	val, err := c.client.Get(ctx, c.key(parentID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrCacheMiss
	} else if err != nil {
		return 0, err
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (c *voteCountCache) GetCounts(ctx context.Context, parentIDs []string) (map[string]int64, error) {
	if len(parentIDs) == 0 {
		return map[string]int64{}, nil
	}

	keys := make([]string, len(parentIDs))
	for i, id := range parentIDs {
		keys[i] = c.key(id)
	}

	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	res := make(map[string]int64, len(parentIDs))
	for i, val := range vals {
		if val == nil {
			continue
		}
		str, ok := val.(string)
		if !ok {
			continue
		}
		count, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			continue
		}
		res[parentIDs[i]] = count
	}
	return res, nil
}

func (c *voteCountCache) SetCount(ctx context.Context, parentID string, count int64) error {
	return c.client.Set(ctx, c.key(parentID), count, voteCountTTL).Err()
}

func (c *voteCountCache) DeleteCount(ctx context.Context, parentID string) error {
	return c.client.Del(ctx, c.key(parentID)).Err()
}
