package domain

import "errors"

// ErrDataUnavailable marks a missing grid or missing required columns. Entry
// points surface it as an "Error" report status with the accumulated log
// rather than failing the hosting process.
var ErrDataUnavailable = errors.New("dataset unavailable")
