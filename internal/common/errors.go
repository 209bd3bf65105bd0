package common

import "errors"

// Token errors. Callers match these with errors.Is.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
