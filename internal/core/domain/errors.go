package domain

import "errors"

var (
	ErrMalformedToken     = errors.New("malformed session token")
	ErrTokenExpired       = errors.New("session token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrUpstream           = errors.New("inventory api error")
	ErrInvalidPeriod      = errors.New("invalid report period")
)
