package domain

import "errors"

var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("option not found")
	ErrLikeNotFound   = errors.New("like not found")
)
