package dispatcher

import "errors"

var (
	ErrDependency = errors.New("side effect dependency failed")
	ErrClosed     = errors.New("dispatcher is closed")
)
