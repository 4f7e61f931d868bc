package model

import (
	"fmt"
	"strings"
)

// ListName selects one of the two planner lists.
type ListName string

const (
	Daily  ListName = "daily"
	Global ListName = "global"
)

// Lists is every list in display order.
var Lists = []ListName{Daily, Global}

func ParseListName(s string) (ListName, error) {
	switch ListName(strings.ToLower(strings.TrimSpace(s))) {
	case Daily:
		return Daily, nil
	case Global:
		return Global, nil
	}
	return "", fmt.Errorf("unknown list %q (want daily or global)", s)
}

// Key is the fixed storage key the list's snapshot lives under.
func (n ListName) Key() string {
	if n == Global {
		return "serenePlannerGlobalTodos"
	}
	return "serenePlannerTodos"
}

// Expires reports whether items on this list age out.
func (n ListName) Expires() bool { return n == Daily }

func (n ListName) Title() string {
	if n == Global {
		return "Global"
	}
	return "Daily"
}

func (n ListName) Placeholder() string {
	if n == Global {
		return "What's a bigger goal?"
	}
	return "What's the plan for today?"
}

func (n ListName) EmptyMessage() string {
	if n == Global {
		return "No global goals yet. Add one!"
	}
	return "Your mind is clear. Add a plan to begin."
}

// Other returns the list a toggle switches to.
func (n ListName) Other() ListName {
	if n == Daily {
		return Global
	}
	return Daily
}
