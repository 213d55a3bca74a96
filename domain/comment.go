package domain

import (
	"context"
	"time"
)

// Comment domain model, attached either to a question or to an answer
// depending on which repository it came from.
type Comment struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Author 评论作者信息
	Author *Author `json:"author,omitempty"`
}

// CommentUsecase 业务逻辑接口
type CommentUsecase interface {
	// Add validates content and parent existence, stamps timestamps and
	// returns the stored comment with its author projected.
	Add(ctx context.Context, parentID, authorID, content string) (Comment, error)
	GetByID(ctx context.Context, id string) (Comment, error)
	// Edit updates content and updated_at only.
	Edit(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
	// FetchByParent returns all comments of a parent, oldest first; an
	// unknown parent yields an empty slice, never an error.
	FetchByParent(ctx context.Context, parentID string) ([]Comment, error)
}

// CommentRepository 数据存取接口
type CommentRepository interface {
	GetByID(ctx context.Context, id string) (Comment, error)
	FetchByParent(ctx context.Context, parentID string) ([]Comment, error)
	Store(ctx context.Context, c *Comment) error
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id string) error
}

// ParentChecker resolves whether the parent of a child row exists; backed by
// the question or answer repository.
type ParentChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}
