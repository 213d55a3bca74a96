package domain

import (
	"context"
	"time"
)

// User represents a user entity in the system.
// A user can register, login, ask questions, answer and vote.
type User struct {
	ID        string    // Unique identifier (UUID)
	UserName  string    // Login username (unique)
	Email     string    // Contact address (unique)
	Password  string    // Bcrypt hashed password
	URLPhoto  *string   // Optional avatar reference
	CreatedAt time.Time // Account creation timestamp
	UpdatedAt time.Time // Last profile update timestamp
}

// Author is the read-only projection of a User embedded in every
// outward-facing DTO.
type Author struct {
	ID       string  `json:"id"`
	UserName string  `json:"userName"`
	URLPhoto *string `json:"urlPhoto"`
}

// AsAuthor projects the user into its public author view.
func (u User) AsAuthor() Author {
	return Author{
		ID:       u.ID,
		UserName: u.UserName,
		URLPhoto: u.URLPhoto,
	}
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id string) (User, error)

	// GetByIDs retrieves users by their IDs; missing IDs are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]User, error)

	// GetByUserName retrieves a user by their username.
	// Used during login to verify credentials.
	GetByUserName(ctx context.Context, userName string) (User, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	Insert(ctx context.Context, u *User) error

	// Update modifies an existing user's information.
	Update(ctx context.Context, u *User) error
}

// UserUsecase defines the business logic contract for user operations.
type UserUsecase interface {
	// Register creates a new user account.
	// Returns ErrConflict if the username already exists.
	Register(ctx context.Context, userName, email, password string) error

	// Login verifies user credentials and returns a signed JWT.
	// Returns ErrNotFound if the user doesn't exist.
	// Returns ErrBadParamInput if the password is incorrect.
	Login(ctx context.Context, userName, password string) (string, error)
}
