package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/idilsaglam/serene/internal/logging"
	"github.com/idilsaglam/serene/internal/model"
	"github.com/idilsaglam/serene/internal/store"
)

// Adapter reads and writes whole list snapshots through a KV.
//
// Reads never fail: a missing key, a read error or a malformed payload all
// yield an empty list. A malformed payload, or one with duplicate ids, is
// overwritten with what was recovered. Writes are best effort; failures are
// logged and dropped.
type Adapter struct {
	kv  store.KV
	log *slog.Logger
}

func New(kv store.KV, log *slog.Logger) *Adapter {
	if log == nil {
		log = logging.Discard()
	}
	return &Adapter{kv: kv, log: log}
}

func (a *Adapter) Load(ctx context.Context, key string) []model.Item {
	b, err := a.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.log.Warn("load snapshot failed; starting empty", "key", key, "err", err)
		}
		return []model.Item{}
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		a.log.Warn("malformed snapshot; starting empty", "key", key, "err", err)
		a.Save(ctx, key, nil)
		return []model.Item{}
	}

	// ids must be unique within a list
	seen := make(map[string]bool, len(items))
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if seen[it.ID] {
			a.log.Warn("dropping duplicate id in snapshot", "key", key, "id", it.ID)
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	if len(out) != len(items) {
		a.Save(ctx, key, out)
	}
	return out
}

func (a *Adapter) Save(ctx context.Context, key string, items []model.Item) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		a.log.Error("marshal snapshot", "key", key, "err", err)
		return
	}
	if err := a.kv.Set(ctx, key, b); err != nil {
		a.log.Error("save snapshot", "key", key, "err", err)
		return
	}
	a.log.Debug("saved snapshot", "key", key, "items", len(items))
}
