package user

import "errors"

// User domain errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailExists       = errors.New("a user with this email already exists")
	ErrUserInactive      = errors.New("user account is deactivated")
	ErrUnauthorized      = errors.New("unauthorized to access this user")
	ErrInvalidPermission = errors.New("invalid permission level")
)
