package user

import (
	"context"

	"github.com/hirehub/hirehub/pkg/kernel"
)

type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, id kernel.UserID, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// ExistsByEmail checks if an account exists for an email
	ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error)
}

// PasswordService hashes and verifies account passwords
type PasswordService interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}
