package vacation

import "errors"

var (
	ErrInvalidName       = errors.New("vacation: invalid name")
	ErrMalformedRequest  = errors.New("vacation: malformed request command")
	ErrRequestNotFound   = errors.New("vacation: request not found")
	ErrInvalidTargetDate = errors.New("vacation: invalid target date")
)
