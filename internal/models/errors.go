package models

import "errors"

// Custom errors
var (
	ErrNotFound              = errors.New("record not found")
	ErrDuplicateKey          = errors.New("duplicate key violation")
	ErrUnknownStat           = errors.New("unknown stat category")
	ErrMalformedInput        = errors.New("malformed input table")
	ErrUndefinedDistribution = errors.New("undefined performance distribution")
)
