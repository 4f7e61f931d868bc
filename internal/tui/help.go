package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `
# Serene Planner

Two lists live side by side:

- **Daily**: plans for today. Each item disappears **25 hours** after you add it.
- **Global**: bigger goals. These stay until you delete them.

## Keys

| key | action |
|-----|--------|
| ` + "`a`" + ` / ` + "`i`" + ` | focus the input; ` + "`enter`" + ` adds, ` + "`esc`" + ` leaves |
| ` + "`d`" + ` / ` + "`x`" + ` | delete the selected item |
| ` + "`m`" + ` | pick up the selected item; ` + "`↑`/`↓`" + ` move it, ` + "`m`" + ` or ` + "`enter`" + ` drops |
| ` + "`tab`" + `, ` + "`1`" + `, ` + "`2`" + ` | switch between daily and global |
| ` + "`y`" + ` | copy the selected item's text |
| ` + "`?`" + ` | toggle this help |
| ` + "`q`" + ` | quit |

## Mouse

Press on an item and drag it over the others: the list reorders as you
move, and the order you see when you let go is kept. Click a tab to switch
lists.
`

var (
	helpRendererMu sync.Mutex
	helpRenderers  = map[string]*glamour.TermRenderer{}
)

// renderHelp renders the help page for the given width. Renderers are cached
// per width+style; a fixed style avoids terminal background queries.
func renderHelp(width int, plain bool) string {
	if width < 20 {
		width = 20
	}
	style := "dark"
	if plain {
		style = "ascii"
	}
	key := style + ":" + strconv.Itoa(width)

	helpRendererMu.Lock()
	defer helpRendererMu.Unlock()
	r := helpRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return strings.TrimSpace(helpMarkdown)
		}
		helpRenderers[key] = rr
		r = rr
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return strings.TrimSpace(helpMarkdown)
	}
	return strings.TrimRight(out, "\n")
}
