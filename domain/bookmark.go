package domain

import (
	"context"
	"time"
)

// Bookmark marks a question or answer as saved by a user.
//
// Bookmarks are intentionally not unique per (ParentID, UserID): bookmarking
// twice yields two rows and removing deletes exactly one of them. Callers
// that want a clean slate must remove until ErrNotFound.
type Bookmark struct {
	ID        string
	ParentID  string
	UserID    string
	CreatedAt time.Time
}

// BookmarkRepository defines bookmark persistence for one parent kind.
type BookmarkRepository interface {
	// Store unconditionally inserts a new bookmark row.
	Store(ctx context.Context, b *Bookmark) error

	// DeleteOne removes exactly one row matching (parentID, userID).
	// Returns ErrNotFound when no row matches.
	DeleteOne(ctx context.Context, parentID, userID string) error

	// Exists reports whether at least one bookmark row matches.
	Exists(ctx context.Context, parentID, userID string) (bool, error)

	// ExistsByParents batch-resolves membership for a page of parents.
	ExistsByParents(ctx context.Context, parentIDs []string, userID string) (map[string]bool, error)
}
