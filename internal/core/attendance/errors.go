package attendance

import "errors"

var (
	ErrInvalidName  = errors.New("attendance: invalid name")
	ErrNoOpenRecord = errors.New("attendance: no open record")
)
