package domain

import (
	"context"
	"time"
)

// Question is representing the Question data struct.
// Votes, ViewerVote and Bookmarked are viewer-relative fields merged in by
// the usecase layer; they are never stored on the question row itself.
type Question struct {
	ID        string    // UUID
	Title     string    // Question title
	Content   string    // Markdown body
	AuthorID  string    // ID of the asking user
	Author    Author    // Author projection
	CreatedAt time.Time // Creation timestamp
	UpdatedAt time.Time // Last edit timestamp

	Votes      int64     // Number of live upvotes
	ViewerVote VoteValue // The requesting user's own vote
	Bookmarked bool      // Whether the requesting user bookmarked it
}

// QuestionRepository defines the contract for question data persistence.
type QuestionRepository interface {
	// FetchNew retrieves a page of questions ordered by created_at DESC.
	FetchNew(ctx context.Context, take, offset int) ([]Question, error)

	// GetByID retrieves a single question by its ID.
	// Returns ErrNotFound if the question doesn't exist.
	GetByID(ctx context.Context, id string) (Question, error)

	// Exists reports whether a question row with the given ID exists.
	Exists(ctx context.Context, id string) (bool, error)

	// Store creates a new question and backfills ID and timestamps.
	Store(ctx context.Context, q *Question) error

	// Update persists title, content and updated_at of an existing question.
	// Returns ErrNotFound if the question doesn't exist.
	Update(ctx context.Context, q *Question) error

	// Delete removes a question together with its votes, bookmarks,
	// comments and answers (and the answers' own children) in one
	// transaction. Returns ErrNotFound if the question doesn't exist.
	Delete(ctx context.Context, id string) error

	// FetchBookmarkedByUser lists the questions a user has bookmarked,
	// ordered by the question's created_at DESC, paginated.
	FetchBookmarkedByUser(ctx context.Context, userID string, take, offset int) ([]Question, error)
}

// QuestionUsecase defines the business logic contract for questions.
// All read operations take the viewer's user ID, empty string for anonymous.
type QuestionUsecase interface {
	GetByID(ctx context.Context, id, viewerID string) (Question, error)
	FetchNew(ctx context.Context, viewerID string, take, offset int) ([]Question, error)

	// Store creates the question and casts the author's own upvote, so a
	// fresh question always projects with Votes == 1.
	Store(ctx context.Context, q *Question) error

	Edit(ctx context.Context, id, title, content string) error
	Delete(ctx context.Context, id string) error

	Vote(ctx context.Context, id, viewerID string, value VoteValue) error
	Bookmark(ctx context.Context, id, viewerID string) error
	RemoveBookmark(ctx context.Context, id, viewerID string) error
	FetchBookmarked(ctx context.Context, viewerID string, take, offset int) ([]Question, error)
}
