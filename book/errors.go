package book

import "errors"

// Common errors
var (
	// ErrTooLarge indicates the laid-out document exceeds the printable page limit
	ErrTooLarge = errors.New("document exceeds the maximum printable page count")
)
