package redis

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsage/crowdsage/domain"
)

func TestGetCount(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewVoteCountCache(client, "question")
	ctx := context.Background()

	mock.ExpectGet("votes:question:q1").SetVal("42")
	count, err := cache.GetCount(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)

	mock.ExpectGet("votes:question:q2").RedisNil()
	_, err = cache.GetCount(ctx, "q2")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCounts_SkipsMissesAndGarbage(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewVoteCountCache(client, "answer")
	ctx := context.Background()

	mock.ExpectMGet("votes:answer:a1", "votes:answer:a2", "votes:answer:a3").
		SetVal([]interface{}{"3", nil, "not-a-number"})

	counts, err := cache.GetCounts(ctx, []string{"a1", "a2", "a3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a1": 3}, counts)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCounts_EmptyInput(t *testing.T) {
	client, _ := redismock.NewClientMock()
	cache := NewVoteCountCache(client, "question")

	counts, err := cache.GetCounts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestSetAndDeleteCount(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewVoteCountCache(client, "question")
	ctx := context.Background()

	mock.ExpectSet("votes:question:q1", int64(7), 10*time.Minute).SetVal("OK")
	require.NoError(t, cache.SetCount(ctx, "q1", 7))

	mock.ExpectDel("votes:question:q1").SetVal(1)
	require.NoError(t, cache.DeleteCount(ctx, "q1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// The two caches must not collide on the same parent ID.
func TestKeyIsNamespacedByKind(t *testing.T) {
	client, mock := redismock.NewClientMock()
	questionCache := NewVoteCountCache(client, "question")
	answerCache := NewVoteCountCache(client, "answer")
	ctx := context.Background()

	mock.ExpectGet("votes:question:same-id").SetVal("1")
	mock.ExpectGet("votes:answer:same-id").SetVal("2")

	qCount, err := questionCache.GetCount(ctx, "same-id")
	require.NoError(t, err)
	aCount, err := answerCache.GetCount(ctx, "same-id")
	require.NoError(t, err)

	assert.Equal(t, int64(1), qCount)
	assert.Equal(t, int64(2), aCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
