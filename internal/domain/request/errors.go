package request

import "errors"

var (
	ErrRequestNotFound         = errors.New("request not found")
	ErrDuplicateRequest        = errors.New("a request for this date already exists")
	ErrRequestAlreadyProcessed = errors.New("request has already been processed")
	ErrInsufficientLeaveDays   = errors.New("insufficient paid leave days remaining")
	ErrInvalidRequestType      = errors.New("invalid request type")
)
