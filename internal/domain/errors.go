package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrCannotRankSelf  = errors.New("cannot rank own profile")
)
