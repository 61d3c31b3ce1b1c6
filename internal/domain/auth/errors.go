package auth

import "errors"

var (
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenRevoked          = errors.New("token has been revoked")
	ErrManagerAccessRequired = errors.New("manager or owner access required")
	ErrInvalidRole           = errors.New("invalid role")
)
