package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid employee code or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccessDenied       = errors.New("access denied")
)
