package attendance

import "errors"

var ErrInvalidToken = errors.New("token is unknown, already used, or expired")
