package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/serene/internal/logging"
	"github.com/idilsaglam/serene/internal/model"
)

// Persister is the snapshot store behind a Planner.
type Persister interface {
	Load(ctx context.Context, key string) []model.Item
	Save(ctx context.Context, key string, items []model.Item)
}

// Planner owns the daily and global lists. Every add, delete and reorder
// rewrites that list's snapshot in full before returning, even when the call
// changed nothing. Blank adds and sweeps that remove nothing do not write.
//
// A Planner is not safe for concurrent use; one event loop drives it.
type Planner struct {
	lists map[model.ListName]*List
	store Persister
	now   func() time.Time
	newID func() string
	ttl   time.Duration
	log   *slog.Logger
}

type Option func(*Planner)

func WithClock(now func() time.Time) Option { return func(p *Planner) { p.now = now } }

func WithIDGenerator(f func() string) Option { return func(p *Planner) { p.newID = f } }

func WithTTL(ttl time.Duration) Option { return func(p *Planner) { p.ttl = ttl } }

func WithLogger(l *slog.Logger) Option { return func(p *Planner) { p.log = l } }

// New returns a planner with two empty lists. Call Hydrate to load snapshots.
func New(store Persister, opts ...Option) *Planner {
	p := &Planner{
		lists: map[model.ListName]*List{},
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
		ttl:   model.ExpirationTTL,
		log:   logging.Discard(),
	}
	for _, n := range model.Lists {
		p.lists[n] = NewList(nil)
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Hydrate loads both lists from their snapshots. Expired daily items are
// dropped on the way in and the trimmed snapshot is written back. It returns
// how many items expired.
func (p *Planner) Hydrate(ctx context.Context) int {
	for _, n := range model.Lists {
		p.lists[n] = NewList(p.store.Load(ctx, n.Key()))
		p.log.Debug("hydrated list", "list", string(n), "items", p.lists[n].Len())
	}
	total := 0
	for _, n := range model.Lists {
		if !n.Expires() {
			continue
		}
		if removed := p.lists[n].FilterExpired(p.now(), p.ttl); removed > 0 {
			p.log.Info("expired items on load", "list", string(n), "removed", removed)
			p.save(ctx, n)
			total += removed
		}
	}
	return total
}

func (p *Planner) Now() time.Time { return p.now() }

func (p *Planner) TTL() time.Duration { return p.ttl }

// Items returns a copy of the named list in display order.
func (p *Planner) Items(n model.ListName) []model.Item {
	l, ok := p.lists[n]
	if !ok {
		return nil
	}
	return l.Items()
}

func (p *Planner) Get(n model.ListName, id string) (model.Item, bool) {
	l, ok := p.lists[n]
	if !ok {
		return model.Item{}, false
	}
	if i := l.Index(id); i >= 0 {
		return l.items[i], true
	}
	return model.Item{}, false
}

// Add prepends a new item with text trimmed. Blank text is ignored.
func (p *Planner) Add(ctx context.Context, n model.ListName, text string) (model.Item, bool) {
	l, ok := p.lists[n]
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return model.Item{}, false
	}
	it := model.Item{
		ID:        p.newID(),
		Text:      text,
		CreatedAt: time.UnixMilli(p.now().UnixMilli()),
	}
	l.Add(it)
	p.save(ctx, n)
	return it, true
}

// Delete removes id if present and rewrites the snapshot either way. It
// reports whether anything was removed.
func (p *Planner) Delete(ctx context.Context, n model.ListName, id string) bool {
	l, ok := p.lists[n]
	if !ok {
		return false
	}
	removed := l.Delete(id)
	p.save(ctx, n)
	return removed
}

// Reorder moves movedID to targetID's position (see List.Reorder) and
// rewrites the snapshot either way.
func (p *Planner) Reorder(ctx context.Context, n model.ListName, movedID, targetID string) bool {
	l, ok := p.lists[n]
	if !ok {
		return false
	}
	moved := l.Reorder(movedID, targetID)
	p.save(ctx, n)
	return moved
}

// FilterExpired drops items older than the TTL from the named list.
func (p *Planner) FilterExpired(ctx context.Context, n model.ListName) int {
	l, ok := p.lists[n]
	if !ok {
		return 0
	}
	removed := l.FilterExpired(p.now(), p.ttl)
	if removed > 0 {
		p.log.Info("expired items", "list", string(n), "removed", removed)
		p.save(ctx, n)
	}
	return removed
}

// Sweep is the periodic expiration pass over the daily list.
func (p *Planner) Sweep(ctx context.Context) int {
	return p.FilterExpired(ctx, model.Daily)
}

// Resolve finds an item by 1-based position, full id, or unique id prefix.
// A number outside the list's range is tried as an id before giving up.
func (p *Planner) Resolve(n model.ListName, ref string) (model.Item, error) {
	items := p.Items(n)
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Item{}, fmt.Errorf("empty item reference")
	}
	pos, err := strconv.Atoi(ref)
	numeric := err == nil
	if numeric && pos >= 1 && pos <= len(items) {
		return items[pos-1], nil
	}
	var hits []model.Item
	for _, it := range items {
		if it.ID == ref {
			return it, nil
		}
		if strings.HasPrefix(it.ID, ref) {
			hits = append(hits, it)
		}
	}
	switch len(hits) {
	case 0:
		if numeric {
			return model.Item{}, fmt.Errorf("index out of range: have %d, got %d", len(items), pos)
		}
		return model.Item{}, fmt.Errorf("no %s item matches %q", n, ref)
	case 1:
		return hits[0], nil
	}
	return model.Item{}, fmt.Errorf("ambiguous id prefix %q matches %d items", ref, len(hits))
}

func (p *Planner) save(ctx context.Context, n model.ListName) {
	p.store.Save(ctx, n.Key(), p.lists[n].Items())
}
