package report

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnauthorized = errors.New("not allowed to view this report")
)
