package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/repository/mysql/model"
)

func setupVoteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to in-memory SQLite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.QuestionVote{}, &model.AnswerVote{}))
	return db
}

func TestUpsert_OneRowPerParentAndUser(t *testing.T) {
	db := setupVoteDB(t)
	repo := NewQuestionVoteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.Vote{ParentID: "q1", UserID: "u1", Value: domain.VoteUpvote}))
	require.NoError(t, repo.Upsert(ctx, &domain.Vote{ParentID: "q1", UserID: "u1", Value: domain.VoteUpvote}))
	require.NoError(t, repo.Upsert(ctx, &domain.Vote{ParentID: "q1", UserID: "u2", Value: domain.VoteUpvote}))

	var rows int64
	require.NoError(t, db.Model(&model.QuestionVote{}).Where("question_id = ?", "q1").Count(&rows).Error)
	assert.Equal(t, int64(2), rows)

	count, err := repo.CountUpvotes(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Flipping back to neutral updates the row in place.
	require.NoError(t, repo.Upsert(ctx, &domain.Vote{ParentID: "q1", UserID: "u1", Value: domain.VoteNeutral}))

	require.NoError(t, db.Model(&model.QuestionVote{}).Where("question_id = ?", "q1").Count(&rows).Error)
	assert.Equal(t, int64(2), rows)

	count, err = repo.CountUpvotes(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetByParentAndUser_NeutralWhenAbsent(t *testing.T) {
	db := setupVoteDB(t)
	repo := NewQuestionVoteRepository(db)
	ctx := context.Background()

	value, err := repo.GetByParentAndUser(ctx, "q1", "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.VoteNeutral, value)

	require.NoError(t, repo.Upsert(ctx, &domain.Vote{ParentID: "q1", UserID: "u1", Value: domain.VoteUpvote}))

	value, err = repo.GetByParentAndUser(ctx, "q1", "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.VoteUpvote, value)
}

func TestCountUpvotesByParents_GroupsAndSkipsVoteless(t *testing.T) {
	db := setupVoteDB(t)
	repo := NewAnswerVoteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.Vote{ParentID: "a1", UserID: "u1", Value: domain.VoteUpvote}))
	require.NoError(t, repo.Upsert(ctx, &domain.Vote{ParentID: "a1", UserID: "u2", Value: domain.VoteUpvote}))
	require.NoError(t, repo.Upsert(ctx, &domain.Vote{ParentID: "a2", UserID: "u1", Value: domain.VoteNeutral}))

	counts, err := repo.CountUpvotesByParents(ctx, []string{"a1", "a2", "a3"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["a1"])

	// Neutral rows and unknown parents contribute nothing.
	assert.NotContains(t, counts, "a2")
	assert.NotContains(t, counts, "a3")
}

func TestGetByParentsAndUser(t *testing.T) {
	db := setupVoteDB(t)
	repo := NewQuestionVoteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.Vote{ParentID: "q1", UserID: "u1", Value: domain.VoteUpvote}))
	require.NoError(t, repo.Upsert(ctx, &domain.Vote{ParentID: "q2", UserID: "u2", Value: domain.VoteUpvote}))

	votes, err := repo.GetByParentsAndUser(ctx, []string{"q1", "q2"}, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.VoteUpvote, votes["q1"])

	// q2 belongs to another user's vote.
	assert.NotContains(t, votes, "q2")
}
