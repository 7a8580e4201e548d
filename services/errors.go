package services

import "errors"

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrForbidden      = errors.New("admin role required")
	ErrInvalidInput   = errors.New("invalid input")
	ErrAlreadyPlaying = errors.New("already playing")
)
