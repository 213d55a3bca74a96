package domain

import (
	"context"
	"time"
)

// VoteValue is the two-valued vote state. Neutral is the absence of a live
// vote, not a downvote; counting ignores Neutral rows.
type VoteValue int8

const (
	VoteNeutral VoteValue = iota
	VoteUpvote
)

func (v VoteValue) String() string {
	switch v {
	case VoteUpvote:
		return "upvote"
	case VoteNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// ParseVoteValue maps the wire representation to a VoteValue.
// Returns ErrBadParamInput for anything else.
func ParseVoteValue(s string) (VoteValue, error) {
	switch s {
	case "upvote":
		return VoteUpvote, nil
	case "neutral":
		return VoteNeutral, nil
	default:
		return VoteNeutral, ErrBadParamInput
	}
}

// Vote is one user's recorded vote on a question or an answer.
// At most one live row exists per (ParentID, UserID); the repositories
// enforce this with a unique index and an atomic upsert.
type Vote struct {
	ID        string
	ParentID  string // Question or answer the vote is attached to
	UserID    string
	Value     VoteValue
	CreatedAt time.Time
}

// VoteRepository defines vote persistence for one parent kind (questions or
// answers); the implementation decides which table ParentID refers to.
type VoteRepository interface {
	// CountUpvotes counts rows with value == VoteUpvote for the parent.
	CountUpvotes(ctx context.Context, parentID string) (int64, error)

	// CountUpvotesByParents batch-counts upvotes for a page of parents.
	// Parents with no votes are absent from the result map.
	CountUpvotesByParents(ctx context.Context, parentIDs []string) (map[string]int64, error)

	// GetByParentAndUser returns the user's recorded value, VoteNeutral
	// when no row exists. Never returns ErrNotFound.
	GetByParentAndUser(ctx context.Context, parentID, userID string) (VoteValue, error)

	// GetByParentsAndUser batch-resolves the user's votes for a page of
	// parents. Parents without a row are absent from the result map.
	GetByParentsAndUser(ctx context.Context, parentIDs []string, userID string) (map[string]VoteValue, error)

	// Upsert inserts the vote row or overwrites the value of the existing
	// (ParentID, UserID) row in a single atomic statement.
	Upsert(ctx context.Context, v *Vote) error
}

// VoteCountCache caches per-parent upvote counts.
type VoteCountCache interface {
	// GetCount returns ErrCacheMiss when the parent has no cached count.
	GetCount(ctx context.Context, parentID string) (int64, error)
	GetCounts(ctx context.Context, parentIDs []string) (map[string]int64, error)
	SetCount(ctx context.Context, parentID string, count int64) error
	DeleteCount(ctx context.Context, parentID string) error
}
