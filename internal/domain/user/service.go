package user

import (
	"context"
)

// UserService defines business logic for user management
type UserService interface {
	// CreateUser registers a new user in the caller's company scope
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// GetUser retrieves a user by email
	GetUser(ctx context.Context, email string) (UserResponse, error)

	// UpdateUser updates profile fields, including the weekend choice
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// DeactivateUser disables the account without deleting its history
	DeactivateUser(ctx context.Context, email string) error

	// ListCompanyUsers retrieves all users of a company
	ListCompanyUsers(ctx context.Context, companyID string) ([]UserResponse, error)

	// ListCompanyAdmins retrieves the company's users with employer permission
	ListCompanyAdmins(ctx context.Context, companyID string) ([]UserResponse, error)
}
