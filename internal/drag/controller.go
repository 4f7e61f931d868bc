package drag

import "context"

// Reorderer applies a live reorder to whichever list is being dragged in.
type Reorderer interface {
	Reorder(ctx context.Context, movedID, targetID string) bool
}

// ReorderFunc adapts a function to Reorderer.
type ReorderFunc func(ctx context.Context, movedID, targetID string) bool

func (f ReorderFunc) Reorder(ctx context.Context, movedID, targetID string) bool {
	return f(ctx, movedID, targetID)
}

// Controller tracks one drag over a single list. The zero value is idle.
//
// Reordering happens on every Enter, not on drop: the list shuffles as the
// pointer passes over items, and whatever order is showing when End fires
// is final.
type Controller struct {
	moving string
	over   string
}

func (c *Controller) Active() bool { return c.moving != "" }

// Start picks up id. An empty id leaves the controller idle.
func (c *Controller) Start(id string) {
	c.moving = id
	c.over = ""
}

// Enter records id as the item under the pointer and, while dragging a
// different item, moves the dragged item to id's position.
func (c *Controller) Enter(ctx context.Context, r Reorderer, id string) bool {
	c.over = id
	if !c.Active() || id == "" || id == c.moving {
		return false
	}
	return r.Reorder(ctx, c.moving, id)
}

// End drops the item where it is and returns to idle.
func (c *Controller) End() {
	c.moving = ""
	c.over = ""
}

func (c *Controller) MovingID() string { return c.moving }

func (c *Controller) Moving(id string) bool { return c.Active() && id == c.moving }

// Over reports whether id is the current drop target (never the dragged item itself).
func (c *Controller) Over(id string) bool {
	return c.Active() && id != "" && id == c.over && id != c.moving
}
