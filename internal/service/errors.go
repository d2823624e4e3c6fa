package service

import (
	"errors"

	"github.com/ankleshchaudhari/store-rating-app/internal/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrStoreNotFound      = errors.New("store not found")
	ErrOwnerNotFound      = errors.New("store owner not found")
	ErrInvalidToken       = jwt.ErrInvalidToken
)
