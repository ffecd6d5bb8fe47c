package listing

import "errors"

var (
	ErrInvalidListingID = errors.New("invalid listing id")
	ErrListingNotFound  = errors.New("listing not found")
)
