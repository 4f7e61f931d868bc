package planner

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/serene/internal/model"
	"github.com/idilsaglam/serene/internal/persist"
	"github.com/idilsaglam/serene/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestPlanner(t *testing.T) (*Planner, *store.Memory, *fakeClock) {
	t.Helper()
	kv := store.NewMemory()
	clk := &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	p := New(persist.New(kv, nil), WithClock(clk.Now), WithIDGenerator(seqIDs()))
	p.Hydrate(context.Background())
	return p, kv, clk
}

func snapshot(t *testing.T, kv *store.Memory, n model.ListName) string {
	t.Helper()
	b, err := kv.Get(context.Background(), n.Key())
	if err != nil {
		return ""
	}
	return string(b)
}

func TestAdd_PrependsAndPersists(t *testing.T) {
	ctx := context.Background()
	p, kv, _ := newTestPlanner(t)

	p.Add(ctx, model.Daily, "first")
	it, ok := p.Add(ctx, model.Daily, "  buy milk  ")
	if !ok {
		t.Fatalf("expected add to succeed")
	}
	if it.Text != "buy milk" {
		t.Fatalf("text not trimmed: %q", it.Text)
	}
	items := p.Items(model.Daily)
	if len(items) != 2 || items[0].ID != it.ID {
		t.Fatalf("new item should be first: %+v", items)
	}

	reloaded := persist.New(kv, nil).Load(ctx, model.Daily.Key())
	if !reflect.DeepEqual(ids(reloaded), ids(items)) {
		t.Fatalf("snapshot %v != memory %v", ids(reloaded), ids(items))
	}
}

func TestAdd_BlankIsRejected(t *testing.T) {
	ctx := context.Background()
	p, kv, _ := newTestPlanner(t)
	for _, s := range []string{"", "  ", "\t\n"} {
		if _, ok := p.Add(ctx, model.Daily, s); ok {
			t.Fatalf("Add(%q) should be rejected", s)
		}
	}
	if n := len(p.Items(model.Daily)); n != 0 {
		t.Fatalf("length changed to %d", n)
	}
	if snapshot(t, kv, model.Daily) != "" {
		t.Fatalf("rejected add must not write a snapshot")
	}
}

func TestDelete_IdempotentAndPersisted(t *testing.T) {
	ctx := context.Background()
	p, kv, _ := newTestPlanner(t)
	a, _ := p.Add(ctx, model.Global, "a")
	p.Add(ctx, model.Global, "b")

	if !p.Delete(ctx, model.Global, a.ID) {
		t.Fatalf("expected delete")
	}
	after := snapshot(t, kv, model.Global)
	if p.Delete(ctx, model.Global, a.ID) {
		t.Fatalf("second delete should be a no-op")
	}
	if got := snapshot(t, kv, model.Global); got != after {
		t.Fatalf("no-op delete changed the snapshot")
	}
	if n := len(p.Items(model.Global)); n != 1 {
		t.Fatalf("len = %d", n)
	}
}

func TestReorder_DragAOntoC(t *testing.T) {
	ctx := context.Background()
	p, kv, _ := newTestPlanner(t)
	c, _ := p.Add(ctx, model.Daily, "C")
	b, _ := p.Add(ctx, model.Daily, "B")
	a, _ := p.Add(ctx, model.Daily, "A")

	if !p.Reorder(ctx, model.Daily, a.ID, c.ID) {
		t.Fatalf("expected reorder")
	}
	want := []string{b.ID, c.ID, a.ID}
	if got := ids(p.Items(model.Daily)); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	reloaded := persist.New(kv, nil).Load(ctx, model.Daily.Key())
	if !reflect.DeepEqual(ids(reloaded), want) {
		t.Fatalf("persisted order = %v", ids(reloaded))
	}
}

func TestSweep_RemovesItemsAfter26Hours(t *testing.T) {
	ctx := context.Background()
	p, kv, clk := newTestPlanner(t)
	p.Add(ctx, model.Daily, "X")
	p.Add(ctx, model.Global, "forever")

	clk.Advance(26 * time.Hour)
	if removed := p.Sweep(ctx); removed != 1 {
		t.Fatalf("removed = %d", removed)
	}
	if n := len(p.Items(model.Daily)); n != 0 {
		t.Fatalf("daily should be empty, has %d", n)
	}
	if n := len(p.Items(model.Global)); n != 1 {
		t.Fatalf("global must not expire, has %d", n)
	}
	if got := persist.New(kv, nil).Load(ctx, model.Daily.Key()); len(got) != 0 {
		t.Fatalf("sweep should have rewritten the snapshot: %+v", got)
	}
}

func TestSweep_KeepsItemsYoungerThanTTL(t *testing.T) {
	ctx := context.Background()
	p, _, clk := newTestPlanner(t)
	p.Add(ctx, model.Daily, "X")
	clk.Advance(24*time.Hour + 59*time.Minute)
	if removed := p.Sweep(ctx); removed != 0 {
		t.Fatalf("removed = %d", removed)
	}
}

func TestHydrate_FiltersExpiredDailyAndWritesBack(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	seed := persist.New(kv, nil)
	seed.Save(ctx, model.Daily.Key(), []model.Item{
		{ID: "new", Text: "n", CreatedAt: now.Add(-time.Hour)},
		{ID: "old", Text: "o", CreatedAt: now.Add(-30 * time.Hour)},
	})
	seed.Save(ctx, model.Global.Key(), []model.Item{
		{ID: "ancient", Text: "g", CreatedAt: now.Add(-1000 * time.Hour)},
	})

	p := New(seed, WithClock(func() time.Time { return now }))
	if n := p.Hydrate(ctx); n != 1 {
		t.Fatalf("Hydrate expired %d items, want 1", n)
	}

	if got := ids(p.Items(model.Daily)); !reflect.DeepEqual(got, []string{"new"}) {
		t.Fatalf("daily = %v", got)
	}
	if got := ids(p.Items(model.Global)); !reflect.DeepEqual(got, []string{"ancient"}) {
		t.Fatalf("global = %v", got)
	}
	if got := ids(seed.Load(ctx, model.Daily.Key())); !reflect.DeepEqual(got, []string{"new"}) {
		t.Fatalf("hydration should write back the filtered daily list, got %v", got)
	}
}

func TestMutatingOneListNeverTouchesTheOther(t *testing.T) {
	ctx := context.Background()
	p, kv, _ := newTestPlanner(t)
	g, _ := p.Add(ctx, model.Global, "goal")
	before := snapshot(t, kv, model.Global)

	d1, _ := p.Add(ctx, model.Daily, "one")
	d2, _ := p.Add(ctx, model.Daily, "two")
	p.Reorder(ctx, model.Daily, d1.ID, d2.ID)
	p.Delete(ctx, model.Daily, d1.ID)
	p.Delete(ctx, model.Daily, g.ID) // id from the other list: no-op here

	if got := snapshot(t, kv, model.Global); got != before {
		t.Fatalf("global snapshot changed:\n%s\n%s", before, got)
	}
}

func TestCreatedAtSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	now := time.Date(2024, 5, 1, 9, 0, 0, 123456789, time.UTC)
	p := New(persist.New(kv, nil), WithClock(func() time.Time { return now }))
	it, _ := p.Add(ctx, model.Daily, "x")

	p2 := New(persist.New(kv, nil), WithClock(func() time.Time { return now }))
	p2.Hydrate(ctx)
	got, ok := p2.Get(model.Daily, it.ID)
	if !ok || !got.CreatedAt.Equal(it.CreatedAt) || got.Text != it.Text {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, it)
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	p := New(persist.New(store.NewMemory(), nil), WithIDGenerator(func() func() string {
		next := []string{"abc-1", "abd-2", "xyz-3"}
		return func() string {
			id := next[0]
			next = next[1:]
			return id
		}
	}()))
	p.Add(ctx, model.Daily, "one")
	p.Add(ctx, model.Daily, "two")
	p.Add(ctx, model.Daily, "three") // order: xyz-3, abd-2, abc-1

	cases := []struct {
		ref    string
		wantID string
		err    bool
	}{
		{"1", "xyz-3", false},
		{"3", "abc-1", false},
		{"4", "", true},
		{"abd-2", "abd-2", false},
		{"xy", "xyz-3", false},
		{"ab", "", true},
		{"nope", "", true},
	}
	for _, c := range cases {
		it, err := p.Resolve(model.Daily, c.ref)
		if c.err {
			if err == nil {
				t.Fatalf("Resolve(%q) expected error, got %+v", c.ref, it)
			}
			continue
		}
		if err != nil || it.ID != c.wantID {
			t.Fatalf("Resolve(%q) = %q, %v; want %q", c.ref, it.ID, err, c.wantID)
		}
	}
}

type countingKV struct {
	*store.Memory
	sets map[string]int
}

func (c *countingKV) Set(ctx context.Context, key string, value []byte) error {
	c.sets[key]++
	return c.Memory.Set(ctx, key, value)
}

func TestNoOpDeleteAndReorderStillWrite(t *testing.T) {
	ctx := context.Background()
	kv := &countingKV{Memory: store.NewMemory(), sets: map[string]int{}}
	p := New(persist.New(kv, nil), WithIDGenerator(seqIDs()))
	a, _ := p.Add(ctx, model.Daily, "a")
	key := model.Daily.Key()

	cases := []struct {
		name string
		call func() bool
	}{
		{"delete unknown id", func() bool { return p.Delete(ctx, model.Daily, "missing") }},
		{"reorder onto itself", func() bool { return p.Reorder(ctx, model.Daily, a.ID, a.ID) }},
		{"reorder unknown target", func() bool { return p.Reorder(ctx, model.Daily, a.ID, "missing") }},
	}
	for _, c := range cases {
		before := kv.sets[key]
		if c.call() {
			t.Fatalf("%s: reported a change", c.name)
		}
		if kv.sets[key] != before+1 {
			t.Fatalf("%s: writes = %d, want %d", c.name, kv.sets[key], before+1)
		}
	}
	if got := ids(p.Items(model.Daily)); !reflect.DeepEqual(got, []string{a.ID}) {
		t.Fatalf("daily = %v", got)
	}
}

func TestResolve_NumericIDPrefix(t *testing.T) {
	ctx := context.Background()
	p := New(persist.New(store.NewMemory(), nil), WithIDGenerator(func() func() string {
		next := []string{"abcdef00-bbbb", "12345678-aaaa"}
		return func() string {
			id := next[0]
			next = next[1:]
			return id
		}
	}()))
	p.Add(ctx, model.Daily, "letters")
	p.Add(ctx, model.Daily, "digits") // order: 12345678-aaaa, abcdef00-bbbb

	it, err := p.Resolve(model.Daily, "12345678")
	if err != nil || it.ID != "12345678-aaaa" {
		t.Fatalf("Resolve(12345678) = %q, %v", it.ID, err)
	}
	if it, err := p.Resolve(model.Daily, "2"); err != nil || it.ID != "abcdef00-bbbb" {
		t.Fatalf("in-range numbers stay positions, got %q, %v", it.ID, err)
	}
	if _, err := p.Resolve(model.Daily, "99"); err == nil || !strings.Contains(err.Error(), "index out of range") {
		t.Fatalf("Resolve(99) err = %v", err)
	}
}

func TestHydrate_RepairsMalformedSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	_ = kv.Set(ctx, model.Global.Key(), []byte(`not json`))

	p := New(persist.New(kv, nil))
	p.Hydrate(ctx)

	if n := len(p.Items(model.Global)); n != 0 {
		t.Fatalf("global has %d items", n)
	}
	b, err := kv.Get(ctx, model.Global.Key())
	if err != nil || strings.TrimSpace(string(b)) != "[]" {
		t.Fatalf("malformed snapshot should be replaced with [], got %q, %v", b, err)
	}
	if _, err := kv.Get(ctx, model.Daily.Key()); err == nil {
		t.Fatalf("a missing snapshot should stay missing")
	}
}
