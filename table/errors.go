package table

import "errors"

var (
	ErrFieldCountMismatch = errors.New("invalid number of fields")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrUnknownField       = errors.New("unknown field")
	ErrRowNotFound        = errors.New("no row with that primary key")
	ErrImmutableField     = errors.New("primary key cannot be amended")
	ErrInvalidValue       = errors.New("value cannot be stored")
)
