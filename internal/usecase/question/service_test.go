package question_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crowdsage/crowdsage/domain"
	mysqlRepo "github.com/crowdsage/crowdsage/internal/repository/mysql"
	"github.com/crowdsage/crowdsage/internal/repository/mysql/model"
	"github.com/crowdsage/crowdsage/internal/usecase/question"
)

// syncerStub records which parents were queued for a recount.
type syncerStub struct {
	sent []string
}

func (s *syncerStub) Start(ctx context.Context) {}

func (s *syncerStub) Send(parentID string) {
	s.sent = append(s.sent, parentID)
}

// setupTestDB opens an in-memory SQLite database and migrates the schema.
// A single connection keeps every query on the same :memory: database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to in-memory SQLite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Answer{},
		&model.QuestionVote{},
		&model.AnswerVote{},
		&model.QuestionBookmark{},
		&model.AnswerBookmark{},
		&model.QuestionComment{},
		&model.AnswerComment{},
	)
	require.NoError(t, err, "Failed to migrate database schema")

	return db
}

func newService(t *testing.T, db *gorm.DB) (*question.Service, *syncerStub) {
	t.Helper()
	syncer := &syncerStub{}
	svc := question.NewService(
		mysqlRepo.NewQuestionRepository(db),
		mysqlRepo.NewUserRepository(db),
		mysqlRepo.NewQuestionVoteRepository(db),
		mysqlRepo.NewQuestionBookmarkRepository(db),
		syncer,
	)
	return svc, syncer
}

func createTestUser(t *testing.T, db *gorm.DB) domain.User {
	t.Helper()
	u := domain.User{
		UserName: faker.Username(),
		Email:    faker.Email(),
		Password: "hashed-password",
	}
	err := mysqlRepo.NewUserRepository(db).Insert(context.Background(), &u)
	require.NoError(t, err, "Failed to create test user")
	return u
}

func storeTestQuestion(t *testing.T, svc *question.Service, authorID string) domain.Question {
	t.Helper()
	q := domain.Question{
		Title:    faker.Sentence(),
		Content:  faker.Paragraph(),
		AuthorID: authorID,
	}
	require.NoError(t, svc.Store(context.Background(), &q))
	return q
}

func TestStore_CastsAuthorUpvote(t *testing.T) {
	db := setupTestDB(t)
	svc, syncer := newService(t, db)
	author := createTestUser(t, db)
	ctx := context.Background()

	q := storeTestQuestion(t, svc, author.ID)

	assert.NotEmpty(t, q.ID)
	assert.Equal(t, int64(1), q.Votes)
	assert.Equal(t, domain.VoteUpvote, q.ViewerVote)
	assert.False(t, q.Bookmarked)
	assert.Equal(t, author.UserName, q.Author.UserName)
	assert.Contains(t, syncer.sent, q.ID)

	// The author's own upvote must be visible on a fresh read.
	got, err := svc.GetByID(ctx, q.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Votes)
	assert.Equal(t, domain.VoteUpvote, got.ViewerVote)

	// Anonymous viewers see the count but no personal state.
	anon, err := svc.GetByID(ctx, q.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), anon.Votes)
	assert.Equal(t, domain.VoteNeutral, anon.ViewerVote)
	assert.False(t, anon.Bookmarked)
}

func TestStore_RejectsBlankTitleOrContent(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newService(t, db)
	author := createTestUser(t, db)
	ctx := context.Background()

	err := svc.Store(ctx, &domain.Question{Title: "  ", Content: "body", AuthorID: author.ID})
	assert.ErrorIs(t, err, domain.ErrBadParamInput)

	err = svc.Store(ctx, &domain.Question{Title: "title", Content: "", AuthorID: author.ID})
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newService(t, db)

	_, err := svc.GetByID(context.Background(), "no-such-question", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVote_UpvoteIsIdempotentAndNeutralRetracts(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newService(t, db)
	author := createTestUser(t, db)
	voter := createTestUser(t, db)
	ctx := context.Background()

	q := storeTestQuestion(t, svc, author.ID)

	// A second user's upvote raises the count to two.
	require.NoError(t, svc.Vote(ctx, q.ID, voter.ID, domain.VoteUpvote))
	got, err := svc.GetByID(ctx, q.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Votes)
	assert.Equal(t, domain.VoteUpvote, got.ViewerVote)

	// Upvoting again changes nothing.
	require.NoError(t, svc.Vote(ctx, q.ID, voter.ID, domain.VoteUpvote))
	got, err = svc.GetByID(ctx, q.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Votes)

	// Going back to neutral retracts exactly this user's vote.
	require.NoError(t, svc.Vote(ctx, q.ID, voter.ID, domain.VoteNeutral))
	got, err = svc.GetByID(ctx, q.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Votes)
	assert.Equal(t, domain.VoteNeutral, got.ViewerVote)
}

func TestVote_UnknownQuestion(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newService(t, db)
	voter := createTestUser(t, db)

	err := svc.Vote(context.Background(), "no-such-question", voter.ID, domain.VoteUpvote)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookmark_DuplicatesRemovedOneAtATime(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newService(t, db)
	author := createTestUser(t, db)
	reader := createTestUser(t, db)
	ctx := context.Background()

	q := storeTestQuestion(t, svc, author.ID)

	// Bookmarking twice leaves two rows; the question stays bookmarked until
	// both are removed.
	require.NoError(t, svc.Bookmark(ctx, q.ID, reader.ID))
	require.NoError(t, svc.Bookmark(ctx, q.ID, reader.ID))

	var rows int64
	require.NoError(t, db.Model(&model.QuestionBookmark{}).
		Where("question_id = ? AND user_id = ?", q.ID, reader.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(2), rows)

	// The bookmark list reports the question once regardless of row count.
	bookmarked, err := svc.FetchBookmarked(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, bookmarked, 1)
	assert.Equal(t, q.ID, bookmarked[0].ID)
	assert.True(t, bookmarked[0].Bookmarked)

	require.NoError(t, svc.RemoveBookmark(ctx, q.ID, reader.ID))
	got, err := svc.GetByID(ctx, q.ID, reader.ID)
	require.NoError(t, err)
	assert.True(t, got.Bookmarked)

	require.NoError(t, svc.RemoveBookmark(ctx, q.ID, reader.ID))
	got, err = svc.GetByID(ctx, q.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, got.Bookmarked)

	// Removing with nothing left reports not found.
	err = svc.RemoveBookmark(ctx, q.ID, reader.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_CascadesToAnswersAndChildren(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newService(t, db)
	author := createTestUser(t, db)
	other := createTestUser(t, db)
	ctx := context.Background()

	q := storeTestQuestion(t, svc, author.ID)
	sibling := storeTestQuestion(t, svc, author.ID)

	// Hang an answer with its own vote, bookmark and comment off the question.
	answer := model.Answer{QuestionID: q.ID, AuthorID: other.ID, Content: faker.Paragraph()}
	require.NoError(t, db.Create(&answer).Error)
	require.NoError(t, db.Create(&model.AnswerVote{AnswerID: answer.ID, UserID: other.ID, Value: 1}).Error)
	require.NoError(t, db.Create(&model.AnswerBookmark{AnswerID: answer.ID, UserID: other.ID}).Error)
	require.NoError(t, db.Create(&model.AnswerComment{AnswerID: answer.ID, AuthorID: other.ID, Content: "nice"}).Error)

	require.NoError(t, svc.Bookmark(ctx, q.ID, other.ID))
	require.NoError(t, db.Create(&model.QuestionComment{QuestionID: q.ID, AuthorID: other.ID, Content: "why"}).Error)

	require.NoError(t, svc.Delete(ctx, q.ID))

	_, err := svc.GetByID(ctx, q.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, m := range []any{
		&model.Answer{}, &model.AnswerVote{}, &model.AnswerBookmark{}, &model.AnswerComment{},
		&model.QuestionComment{},
	} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}

	var votes int64
	require.NoError(t, db.Model(&model.QuestionVote{}).Where("question_id = ?", q.ID).Count(&votes).Error)
	assert.Zero(t, votes)

	// The sibling question is untouched.
	got, err := svc.GetByID(ctx, sibling.ID, "")
	require.NoError(t, err)
	assert.Equal(t, sibling.ID, got.ID)
	assert.Equal(t, int64(1), got.Votes)
}

func TestDelete_UnknownQuestion(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newService(t, db)

	err := svc.Delete(context.Background(), "no-such-question")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEdit_UpdatesTitleAndContentOnly(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newService(t, db)
	author := createTestUser(t, db)
	ctx := context.Background()

	q := storeTestQuestion(t, svc, author.ID)

	require.NoError(t, svc.Edit(ctx, q.ID, "new title", "new content"))

	got, err := svc.GetByID(ctx, q.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "new content", got.Content)
	assert.Equal(t, author.ID, got.AuthorID)
	assert.WithinDuration(t, q.CreatedAt, got.CreatedAt, time.Second)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	err = svc.Edit(ctx, q.ID, " ", "content")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)

	err = svc.Edit(ctx, "no-such-question", "title", "content")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchNew_NewestFirstWithViewerState(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newService(t, db)
	author := createTestUser(t, db)
	reader := createTestUser(t, db)
	ctx := context.Background()

	var ids []string
	for range 3 {
		q := storeTestQuestion(t, svc, author.ID)
		ids = append(ids, q.ID)
		time.Sleep(2 * time.Millisecond)
	}

	require.NoError(t, svc.Vote(ctx, ids[0], reader.ID, domain.VoteUpvote))
	require.NoError(t, svc.Bookmark(ctx, ids[1], reader.ID))

	page, err := svc.FetchNew(ctx, reader.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[1], page[1].ID)
	assert.True(t, page[1].Bookmarked)
	assert.Equal(t, author.UserName, page[0].Author.UserName)

	rest, err := svc.FetchNew(ctx, reader.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, ids[0], rest[0].ID)
	assert.Equal(t, int64(2), rest[0].Votes)
	assert.Equal(t, domain.VoteUpvote, rest[0].ViewerVote)
}
