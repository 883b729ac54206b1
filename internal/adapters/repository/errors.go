package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound         = errors.New("user not found")
	ErrDuplicateContact = errors.New("contact already registered")
	ErrSelfFriendship   = errors.New("cannot befriend yourself")
)
