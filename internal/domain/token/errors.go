package token

import "errors"

var (
	ErrNoActiveToken = errors.New("no active token")
	ErrTokenNotFound = errors.New("token not found")
)
