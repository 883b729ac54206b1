package graph

import (
	"errors"
	"fmt"
)

// Sentinel kinds for graph errors.
var (
	// ErrUnknownNode marks an operation that referenced a user id absent
	// from the current snapshot. Callers should surface it as not-found;
	// it is never worth retrying against the same snapshot.
	ErrUnknownNode = errors.New("unknown user in graph snapshot")
)

func unknownNode(userID string) error {
	return fmt.Errorf("%w: %s", ErrUnknownNode, userID)
}
