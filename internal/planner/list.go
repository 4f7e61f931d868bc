package planner

import (
	"time"

	"github.com/idilsaglam/serene/internal/model"
)

// List is an ordered sequence of items with unique ids.
// Order is render order and persisted order.
type List struct {
	items []model.Item
}

func NewList(items []model.Item) *List {
	return &List{items: append([]model.Item(nil), items...)}
}

func (l *List) Len() int { return len(l.items) }

// Items returns a copy of the current order.
func (l *List) Items() []model.Item {
	return append([]model.Item{}, l.items...)
}

// Index returns the position of id, or -1.
func (l *List) Index(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add puts it at the front.
func (l *List) Add(it model.Item) {
	l.items = append([]model.Item{it}, l.items...)
}

func (l *List) Delete(id string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Reorder removes movedID and reinserts it at the index targetID held
// before the removal. Dragging A onto C in [A B C] gives [B C A];
// dragging C onto A gives [C A B].
func (l *List) Reorder(movedID, targetID string) bool {
	if movedID == targetID {
		return false
	}
	from, to := l.Index(movedID), l.Index(targetID)
	if from < 0 || to < 0 {
		return false
	}
	moved := l.items[from]
	rest := make([]model.Item, 0, len(l.items))
	rest = append(rest, l.items[:from]...)
	rest = append(rest, l.items[from+1:]...)

	out := make([]model.Item, 0, len(l.items))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	l.items = out
	return true
}

// FilterExpired drops every item at least ttl old and returns how many went.
func (l *List) FilterExpired(now time.Time, ttl time.Duration) int {
	kept := l.items[:0:0]
	for _, it := range l.items {
		if !it.Expired(now, ttl) {
			kept = append(kept, it)
		}
	}
	removed := len(l.items) - len(kept)
	l.items = kept
	return removed
}
