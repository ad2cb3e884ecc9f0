package event

import "errors"

var (
	ErrInvalidAction   = errors.New("unknown attendance action")
	ErrInvalidLocation = errors.New("unknown location tag")
)
