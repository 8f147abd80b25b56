package engine

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound is returned when a requested id is absent from the node set.
var ErrNodeNotFound = errors.New("node not found")

func nodeNotFound(role, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNodeNotFound, role, id)
}
