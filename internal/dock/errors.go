package dock

import (
	"fmt"

	"dock-cli/internal/model"
)

// NotFoundError reports an item id that the order model has never held.
// This is an integration bug, not a user-recoverable state.
type NotFoundError struct {
	ID model.ItemID
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.ID)
}

// LayoutUnavailableError reports a geometry query made before the strip has been laid out.
// Callers recover locally (zero-duration flight, ignored hover); it is never surfaced.
type LayoutUnavailableError struct {
	Reason string
}

func (e LayoutUnavailableError) Error() string {
	if e.Reason == "" {
		return "layout unavailable"
	}
	return "layout unavailable: " + e.Reason
}

// IndexError reports move indices that do not describe a valid permutation step.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}
