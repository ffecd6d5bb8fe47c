package delivery

import "errors"

var (
	ErrInvalidJobID     = errors.New("invalid delivery job id")
	ErrInvalidJobStatus = errors.New("invalid delivery job status")
	ErrInvalidLocation  = errors.New("lat and lon must be given together")
	ErrInvalidRadius    = errors.New("radius must be positive")
	ErrClaimRequired    = errors.New("claimed status can only be set by claiming the job")

	ErrJobNotFound       = errors.New("delivery job not found")
	ErrJobNotClaimable   = errors.New("delivery job is not open")
	ErrJobAlreadyClaimed = errors.New("delivery job already claimed")
	ErrClaimConflict     = errors.New("delivery job claim raced a concurrent update, retry")
	ErrJobNotClaimed     = errors.New("delivery job has no delivery partner")
	ErrJobFinalized      = errors.New("delivery job is already finalized")
	ErrForbidden         = errors.New("forbidden")
	ErrDeliveryRole      = errors.New("only delivery partners can claim jobs")
)
