package model

import "errors"

var (
	ErrMissingToken = errors.New("not authenticated")
	ErrInvalidToken = errors.New("could not validate credentials")
)
