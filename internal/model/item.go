package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ExpirationTTL is how long a daily item lives after it was created.
const ExpirationTTL = 25 * time.Hour

// Item is the domain model for a planner entry.
// Items are immutable once created; lists only add, drop or reorder them.
type Item struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// wireItem is the persisted shape; createdAt is Unix milliseconds.
type wireItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireItem{ID: it.ID, Text: it.Text, CreatedAt: it.CreatedAt.UnixMilli()})
}

func (it *Item) UnmarshalJSON(b []byte) error {
	var w wireItem
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*it = Item{ID: w.ID, Text: w.Text, CreatedAt: time.UnixMilli(w.CreatedAt)}
	return nil
}

func (it Item) Age(now time.Time) time.Duration { return now.Sub(it.CreatedAt) }

func (it Item) Remaining(now time.Time, ttl time.Duration) time.Duration {
	return it.CreatedAt.Add(ttl).Sub(now)
}

// Expired reports whether the item is at least ttl old.
func (it Item) Expired(now time.Time, ttl time.Duration) bool {
	return it.Age(now) >= ttl
}

// FormatRemaining renders a countdown like "3h 12m left".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "Expired"
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm left", h, m)
}
