package comment_test

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
	"github.com/crowdsage/crowdsage/internal/usecase/comment"
)

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
		&model.QuestionComment{},
		&model.AnswerComment{},
	)
	require.NoError(t, err, "Failed to migrate database schema")

	return db
}

// newQuestionCommentService wires the comment service against question parents.
func newQuestionCommentService(db *gorm.DB) domain.CommentUsecase {
	return comment.NewService(
		mysqlRepo.NewQuestionCommentRepository(db),
		mysqlRepo.NewQuestionRepository(db),
		mysqlRepo.NewUserRepository(db),
	)
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

func createTestQuestion(t *testing.T, db *gorm.DB, authorID string) string {
	t.Helper()
	q := model.Question{
		Title:    faker.Sentence(),
		Content:  faker.Paragraph(),
		AuthorID: authorID,
	}
	require.NoError(t, db.Create(&q).Error)
	return q.ID
}

func TestAdd_ValidatesParentAndContent(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionCommentService(db)
	author := createTestUser(t, db)
	ctx := context.Background()

	_, err := svc.Add(ctx, "no-such-question", author.ID, "hello")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	questionID := createTestQuestion(t, db, author.ID)
	_, err = svc.Add(ctx, questionID, author.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)

	c, err := svc.Add(ctx, questionID, author.ID, "first!")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, questionID, c.ParentID)
	require.NotNil(t, c.Author)
	assert.Equal(t, author.UserName, c.Author.UserName)
}

func TestEdit_TouchesContentAndUpdatedAtOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionCommentService(db)
	author := createTestUser(t, db)
	questionID := createTestQuestion(t, db, author.ID)
	ctx := context.Background()

	c, err := svc.Add(ctx, questionID, author.ID, "original")
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, svc.Edit(ctx, c.ID, "revised"))

	got, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "revised", got.Content)
	assert.Equal(t, author.ID, got.AuthorID)
	assert.Equal(t, questionID, got.ParentID)
	assert.WithinDuration(t, c.CreatedAt, got.CreatedAt, time.Second)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	err = svc.Edit(ctx, c.ID, " ")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)

	err = svc.Edit(ctx, "no-such-comment", "text")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_RemovesComment(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionCommentService(db)
	author := createTestUser(t, db)
	questionID := createTestQuestion(t, db, author.ID)
	ctx := context.Background()

	c, err := svc.Add(ctx, questionID, author.ID, "soon gone")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))

	_, err = svc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchByParent_OrderedWithAuthors(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuestionCommentService(db)
	author := createTestUser(t, db)
	other := createTestUser(t, db)
	questionID := createTestQuestion(t, db, author.ID)
	ctx := context.Background()

	// No comments yet: an empty list, not an error.
	comments, err := svc.FetchByParent(ctx, questionID)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)

	first, err := svc.Add(ctx, questionID, author.ID, "first")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := svc.Add(ctx, questionID, other.ID, "second")
	require.NoError(t, err)

	comments, err = svc.FetchByParent(ctx, questionID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
	require.NotNil(t, comments[1].Author)
	assert.Equal(t, other.UserName, comments[1].Author.UserName)
}

func TestAnswerComments_UseAnswerParents(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db)
	questionID := createTestQuestion(t, db, author.ID)
	ctx := context.Background()

	svc := comment.NewService(
		mysqlRepo.NewAnswerCommentRepository(db),
		mysqlRepo.NewAnswerRepository(db),
		mysqlRepo.NewUserRepository(db),
	)

	// A question ID is not a valid answer parent.
	_, err := svc.Add(ctx, questionID, author.ID, "hello")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	a := model.Answer{QuestionID: questionID, AuthorID: author.ID, Content: faker.Paragraph()}
	require.NoError(t, db.Create(&a).Error)

	c, err := svc.Add(ctx, a.ID, author.ID, "on the answer")
	require.NoError(t, err)
	assert.Equal(t, a.ID, c.ParentID)
}
