package push

import (
	"errors"
	"fmt"
)

var ErrPushRejected = errors.New("push service rejected request")

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("push service responded with status %d", e.code)
}

func (e *statusError) Unwrap() error {
	return ErrPushRejected
}
