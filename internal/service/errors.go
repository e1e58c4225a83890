package service

import (
	"errors"

	"github.com/pageza/recipe-tracker/backend/internal/store"
)

var (
	ErrEmptyCredentials   = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidQuantity    = errors.New("quantity must be a finite number of zero or more")
	ErrInvalidDate        = errors.New("date must be formatted YYYY-MM-DD")
	ErrEmptyQuery         = errors.New("search query is required")
	ErrNoCloudProfile     = errors.New("no cloud profile for this account")

	// ErrNotFound is the store's not-found sentinel, re-exported so callers
	// need only this package.
	ErrNotFound = store.ErrNotFound
)
