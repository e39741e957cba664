package store

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrJobNotFound   = errors.New("job not found in shortlisted jobs")
	ErrDuplicateJob  = errors.New("job already shortlisted")
	ErrInvalidUserID = errors.New("invalid user ID format")
)
