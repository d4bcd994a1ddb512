package domain

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrNotLegacy = errors.New("not a legacy path")
	ErrStrict    = errors.New("strict mode check failed")
)
