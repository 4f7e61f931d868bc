package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SweepInterval is how often the daily list is checked for expired items.
const SweepInterval = time.Minute

type sweepMsg struct{ at time.Time }

// Sweeper re-arms a tick every interval until it is stopped. Once stopped,
// a tick already in flight delivers nothing, so a torn-down session is never
// swept.
type Sweeper struct {
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewSweeper(parent context.Context, interval time.Duration) *Sweeper {
	ctx, cancel := context.WithCancel(parent)
	return &Sweeper{interval: interval, ctx: ctx, cancel: cancel}
}

// Next schedules the following tick; nil once stopped.
func (s *Sweeper) Next() tea.Cmd {
	if s.ctx.Err() != nil {
		return nil
	}
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		if s.ctx.Err() != nil {
			return nil
		}
		return sweepMsg{at: t}
	})
}

func (s *Sweeper) Stop() { s.cancel() }

func (s *Sweeper) Stopped() bool { return s.ctx.Err() != nil }
