package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/serene/internal/drag"
	"github.com/idilsaglam/serene/internal/model"
	"github.com/idilsaglam/serene/internal/planner"
)

// Options tune the interactive session.
type Options struct {
	Theme         string
	SweepInterval time.Duration // defaults to SweepInterval
}

// footerLines is the status line plus the short help line.
const footerLines = 2

// tabGap is the separator width between tab labels.
const tabGap = 1

var copyToClipboard = clipboard.WriteAll

type modelTUI struct {
	ctx     context.Context
	planner *planner.Planner
	sweeper *Sweeper
	drag    *drag.Controller
	dragRow int // last row a mouse drag entered

	keys keyMap
	help help.Model

	active model.ListName
	list   list.Model
	form   inputForm

	showHelp bool
	plain    bool
	status   string
	width    int
	height   int
}

// Run starts the Bubble Tea program over p. The expiration sweeper lives
// exactly as long as the program.
func Run(ctx context.Context, p *planner.Planner, opt Options) error {
	applyColorProfilePreference(opt.Theme)
	m := newModel(ctx, p, opt)
	defer m.sweeper.Stop()

	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func newModel(ctx context.Context, p *planner.Planner, opt Options) modelTUI {
	interval := opt.SweepInterval
	if interval <= 0 {
		interval = SweepInterval
	}
	m := modelTUI{
		ctx:     ctx,
		planner: p,
		sweeper: NewSweeper(ctx, interval),
		drag:    &drag.Controller{},
		keys:    defaultKeys(),
		help:    help.New(),
		active:  model.Daily,
		form:    newInputForm(model.Daily.Placeholder()),
		plain:   strings.EqualFold(opt.Theme, "mono"),
		width:   80,
		height:  24,
	}
	m.help.Styles.ShortKey = helpStyle
	m.help.Styles.ShortDesc = helpStyle

	l := list.New(nil, m.delegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false) // rows must map 1:1 to the list for mouse drag
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = helpStyle
	m.list = l

	m.refresh()
	m.resize()
	return m
}

func (m modelTUI) delegate() itemDelegate {
	return itemDelegate{
		drag:      m.drag,
		now:       m.planner.Now,
		ttl:       m.planner.TTL(),
		showTimer: m.active.Expires(),
	}
}

func (m modelTUI) reorderer() drag.Reorderer {
	active := m.active
	return drag.ReorderFunc(func(ctx context.Context, movedID, targetID string) bool {
		return m.planner.Reorder(ctx, active, movedID, targetID)
	})
}

// refresh reloads the active list into the view. While dragging, the
// cursor follows the dragged item.
func (m *modelTUI) refresh() {
	items := m.planner.Items(m.active)
	sel := m.list.Index()
	m.list.SetItems(toListItems(items))
	if id := m.drag.MovingID(); id != "" {
		for i, it := range items {
			if it.ID == id {
				sel = i
				break
			}
		}
	}
	if sel >= len(items) {
		sel = len(items) - 1
	}
	if sel < 0 {
		sel = 0
	}
	m.list.Select(sel)
}

func (m *modelTUI) resize() {
	innerW := m.width - 2*frameInsetX
	if innerW < 20 {
		innerW = 20
	}
	m.form.SetWidth(innerW - 8)
	m.help.Width = innerW

	h := m.height - 2*frameInsetY - lipgloss.Height(m.headerView()) - footerLines
	if h < 3 {
		h = 3
	}
	m.list.SetSize(innerW, h)
}

// switchTo changes the active list. Any drag in progress is dropped; the
// other list's data is not touched.
func (m *modelTUI) switchTo(n model.ListName) {
	if n == m.active {
		return
	}
	m.drag.End()
	m.active = n
	m.status = ""
	m.form.SetPlaceholder(n.Placeholder())
	m.list.SetDelegate(m.delegate())
	m.list.Select(0)
	m.refresh()
}

func (m modelTUI) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return it.Item, true
}

func (m modelTUI) itemAt(index int) (model.Item, bool) {
	items := m.list.Items()
	if index < 0 || index >= len(items) {
		return model.Item{}, false
	}
	it, ok := items[index].(listItem)
	return it.Item, ok
}

func (m *modelTUI) quit() tea.Cmd {
	m.drag.End()
	m.sweeper.Stop()
	return tea.Quit
}

// Update and View implement Bubble Tea's Model on modelTUI
func (m modelTUI) Init() tea.Cmd { return m.sweeper.Next() }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case sweepMsg:
		if removed := m.planner.Sweep(m.ctx); removed > 0 {
			m.status = fmt.Sprintf("%d expired", removed)
		}
		// the dragged item may have just expired
		if id := m.drag.MovingID(); id != "" {
			if _, ok := m.planner.Get(m.active, id); !ok {
				m.drag.End()
			}
		}
		m.refresh()
		return m, m.sweeper.Next()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cmd := m.quit()
			return m, cmd
		}
		switch {
		case m.showHelp:
			return m.updateHelp(msg)
		case m.form.Focused():
			return m.updateForm(msg)
		case m.drag.Active():
			return m.updateDrag(msg)
		}
		return m.updateNormal(msg)
	}

	// cursor blink and other component messages
	var formCmd, listCmd tea.Cmd
	m.form, formCmd = m.form.Update(msg)
	m.list, listCmd = m.list.Update(msg)
	return m, tea.Batch(formCmd, listCmd)
}

func (m modelTUI) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
		m.showHelp = false
	}
	return m, nil
}

func (m modelTUI) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		text, ok := m.form.Submit()
		if !ok {
			return m, nil
		}
		if _, added := m.planner.Add(m.ctx, m.active, text); added {
			m.list.Select(0)
			m.refresh()
			m.status = ""
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.form.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Switch):
		m.switchTo(m.active.Other())
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// updateDrag handles the keyboard drag: each step enters the neighbouring
// item exactly like the pointer would.
func (m modelTUI) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.dragStep(-1)
	case key.Matches(msg, m.keys.Down):
		m.dragStep(1)
	case key.Matches(msg, m.keys.Grab, m.keys.Submit, m.keys.Cancel):
		m.drag.End()
		m.refresh()
	case key.Matches(msg, m.keys.Quit):
		cmd := m.quit()
		return m, cmd
	}
	return m, nil
}

func (m *modelTUI) dragStep(delta int) {
	target, ok := m.itemAt(m.list.Index() + delta)
	if !ok {
		return
	}
	if m.drag.Enter(m.ctx, m.reorderer(), target.ID) {
		m.refresh()
	}
}

func (m modelTUI) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		cmd := m.quit()
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Switch):
		m.switchTo(m.active.Other())
		return m, nil
	case key.Matches(msg, m.keys.Daily):
		m.switchTo(model.Daily)
		return m, nil
	case key.Matches(msg, m.keys.Global):
		m.switchTo(model.Global)
		return m, nil
	case key.Matches(msg, m.keys.Add):
		cmd := m.form.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok {
			m.planner.Delete(m.ctx, m.active, it.ID)
			m.refresh()
			m.status = "deleted"
		}
		return m, nil
	case key.Matches(msg, m.keys.Grab):
		if it, ok := m.selected(); ok {
			m.drag.Start(it.ID)
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if it, ok := m.selected(); ok {
			if err := copyToClipboard(it.Text); err != nil {
				m.status = errorStyle.Render("copy failed: " + err.Error())
			} else {
				m.status = "copied"
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if n, ok := m.tabAt(msg.X, msg.Y); ok {
			m.switchTo(n)
			return m, nil
		}
		if idx, ok := m.rowAt(msg.Y); ok {
			if it, ok := m.itemAt(idx); ok {
				m.form.Blur()
				m.list.Select(idx)
				m.drag.Start(it.ID)
				m.dragRow = idx
			}
		}

	case msg.Action == tea.MouseActionMotion && m.drag.Active():
		idx, ok := m.rowAt(msg.Y)
		if !ok || idx == m.dragRow {
			return m, nil
		}
		m.dragRow = idx
		if it, ok := m.itemAt(idx); ok && m.drag.Enter(m.ctx, m.reorderer(), it.ID) {
			m.refresh()
		}

	case msg.Action == tea.MouseActionRelease:
		if m.drag.Active() {
			m.drag.End()
			m.refresh()
		}

	case msg.Button == tea.MouseButtonWheelUp:
		m.list.CursorUp()
	case msg.Button == tea.MouseButtonWheelDown:
		m.list.CursorDown()
	}
	return m, nil
}

// rowAt maps a screen row to an index into the active list.
func (m modelTUI) rowAt(y int) (int, bool) {
	row := y - frameInsetY - lipgloss.Height(m.headerView())
	if row < 0 {
		return 0, false
	}
	start, end := m.list.Paginator.GetSliceBounds(len(m.list.Items()))
	if start+row >= end {
		return 0, false
	}
	return start + row, true
}

// tabAt maps a click on the tab row to a list.
func (m modelTUI) tabAt(x, y int) (model.ListName, bool) {
	if y != frameInsetY+1 {
		return "", false
	}
	x -= frameInsetX
	pos := 0
	for _, n := range model.Lists {
		w := lipgloss.Width(m.tab(n))
		if x >= pos && x < pos+w {
			return n, true
		}
		pos += w + tabGap
	}
	return "", false
}

func (m modelTUI) tab(n model.ListName) string {
	if n == m.active {
		return tabActiveStyle.Render(n.Title())
	}
	return tabInactiveStyle.Render(n.Title())
}

func (m modelTUI) headerView() string {
	tabs := make([]string, 0, len(model.Lists))
	for _, n := range model.Lists {
		tabs = append(tabs, m.tab(n))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Serene Planner"),
		strings.Join(tabs, strings.Repeat(" ", tabGap)),
		"",
		m.form.View(),
		"",
	)
}

func (m modelTUI) statusView() string {
	if m.status != "" {
		return m.status
	}
	n := len(m.list.Items())
	noun := "items"
	if n == 1 {
		noun = "item"
	}
	s := fmt.Sprintf("%d %s", n, noun)
	if m.drag.Active() {
		s += "  " + successStyle.Render("moving")
	}
	return mutedStyle.Render(s)
}

func (m modelTUI) View() string {
	if m.showHelp {
		return frameBorder.Render(renderHelp(m.width-2*frameInsetX-2, m.plain))
	}

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = mutedStyle.Render(m.active.EmptyMessage())
	}

	var footer string
	if m.drag.Active() {
		footer = m.help.View(dragHelp{})
	} else {
		footer = m.help.View(m.keys)
	}

	return frameBorder.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.statusView(),
		footer,
	))
}
