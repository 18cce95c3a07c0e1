package service

import "errors"

// ErrValidation marks input that a use case rejects before touching storage.
var ErrValidation = errors.New("validation failed")
