package domain

import "errors"

// ErrInvalidInput is returned by every analyzer when the record collection
// is missing, empty or not a list. No partial result accompanies it.
var ErrInvalidInput = errors.New("invalid input")
