package shift

import "errors"

var ErrInvalidName = errors.New("shift: invalid name")
