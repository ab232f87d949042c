package catalog

import "errors"

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrScreenNotFound = errors.New("screen not found")
)
