package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/serene/internal/drag"
	"github.com/idilsaglam/serene/internal/model"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

func (i listItem) Title() string       { return i.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

func toListItems(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{Item: it})
	}
	return out
}

// itemDelegate renders one row per item. Row geometry is fixed (height 1,
// no spacing) because mouse hits are mapped back to rows by Y offset.
type itemDelegate struct {
	drag      *drag.Controller
	now       func() time.Time
	ttl       time.Duration
	showTimer bool
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}

	var timer string
	if d.showTimer {
		left := it.Remaining(d.now(), d.ttl)
		label := model.FormatRemaining(left)
		if left <= 0 {
			timer = expiredStyle.Render(label)
		} else {
			timer = mutedStyle.Render(label)
		}
	}

	// text gets whatever the timer leaves over
	width := m.Width() - xansi.StringWidth(prefix)
	textW := width
	if timer != "" {
		textW = width - xansi.StringWidth(timer) - 2
	}
	if textW < 4 {
		textW = 4
	}
	text := xansi.Truncate(it.Text, textW, "…")

	switch {
	case d.drag.Moving(it.ID):
		text = draggingStyle.Render("⠿ " + xansi.Truncate(it.Text, textW-2, "…"))
	case d.drag.Over(it.ID):
		text = dragOverStyle.Render(text)
	}

	line := text
	if timer != "" {
		gap := width - xansi.StringWidth(text) - xansi.StringWidth(timer)
		if gap < 2 {
			gap = 2
		}
		line = text + strings.Repeat(" ", gap) + timer
	}
	fmt.Fprint(w, prefix+line)
}
