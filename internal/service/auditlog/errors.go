package auditlog

import "errors"

var (
	ErrMissingActionType = errors.New("missing action type")
	ErrInvalidEntity     = errors.New("invalid audit entity")
)
