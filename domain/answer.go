package domain

import (
	"context"
	"time"
)

// Answer is representing the Answer data struct.
type Answer struct {
	ID         string
	QuestionID string // Parent question
	Content    string // Markdown body
	AuthorID   string
	Author     Author
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Votes      int64
	ViewerVote VoteValue
	Bookmarked bool
}

// AnswerRepository defines the contract for answer data persistence.
type AnswerRepository interface {
	// FetchByQuestion retrieves all answers of a question, oldest first.
	FetchByQuestion(ctx context.Context, questionID string) ([]Answer, error)

	// GetByID returns ErrNotFound if the answer doesn't exist.
	GetByID(ctx context.Context, id string) (Answer, error)

	// Exists reports whether an answer row with the given ID exists.
	Exists(ctx context.Context, id string) (bool, error)

	Store(ctx context.Context, a *Answer) error

	// Update persists content and updated_at only.
	Update(ctx context.Context, a *Answer) error

	// Delete removes an answer together with its votes, bookmarks and
	// comments in one transaction. Sibling answers are untouched.
	Delete(ctx context.Context, id string) error

	FetchBookmarkedByUser(ctx context.Context, userID string, take, offset int) ([]Answer, error)
}

// AnswerUsecase defines the business logic contract for answers.
type AnswerUsecase interface {
	GetByID(ctx context.Context, id, viewerID string) (Answer, error)
	FetchByQuestion(ctx context.Context, questionID, viewerID string) ([]Answer, error)

	// Store validates the parent question, creates the answer and casts the
	// author's own upvote.
	Store(ctx context.Context, a *Answer) error

	Edit(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error

	Vote(ctx context.Context, id, viewerID string, value VoteValue) error
	Bookmark(ctx context.Context, id, viewerID string) error
	RemoveBookmark(ctx context.Context, id, viewerID string) error
	FetchBookmarked(ctx context.Context, viewerID string, take, offset int) ([]Answer, error)
}
