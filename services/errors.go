package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrUnknownProduct     = errors.New("order references an unknown menu item")
	ErrMenuItemInUse      = errors.New("menu item is referenced by existing orders")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrProtectedUser      = errors.New("this user cannot be deleted")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// MinPasswordLength applies to newly created accounts
const MinPasswordLength = 6
