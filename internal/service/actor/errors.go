package actor

import "errors"

var (
	ErrInvalidUserID = errors.New("invalid user id")
	ErrUnknownActor  = errors.New("unknown actor")
	ErrUnknownRole   = errors.New("unknown role")
)
