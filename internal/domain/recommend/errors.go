package recommend

import "errors"

// Sentinel kinds for recommendation errors.
var (
	ErrInvalidLimit = errors.New("invalid recommendation limit")
)
