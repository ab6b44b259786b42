package user

import (
	"context"
)

// UserRepository defines data access methods for user records.
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, u User) (User, error)

	// GetByEmail retrieves a user by email (the primary identifier)
	GetByEmail(ctx context.Context, email string) (User, error)

	// Update overwrites the mutable fields of an existing user
	Update(ctx context.Context, u User) error

	// SetActive flips the active flag without touching other fields
	SetActive(ctx context.Context, email string, active bool) error

	// ListByCompany retrieves all users belonging to a company
	ListByCompany(ctx context.Context, companyID string) ([]User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
