package ingest

import (
	"sort"
	"time"

	"github.com/rs1134/ai-disruption-tracker/app/classify"
)

type ItemType string

const (
	TypeSocial ItemType = "social"
	TypeNews   ItemType = "news"
)

// Item is the normalized unit of content every source adapter emits.
// Content fields are immutable after ingestion; engagement counters may be
// refreshed when the same item (same ID) is fetched again.
type Item struct {
	ID              string
	Type            ItemType
	Title           string
	Content         string
	Author          string
	Source          string
	URL             string
	ImageURL        string
	EngagementScore float64
	Likes           int
	Reposts         int
	Replies         int
	Views           int
	Category        classify.Category
	Sentiment       classify.Sentiment
	Tags            []string
	PublishedAt     time.Time
}

// Deduplicate collapses near-duplicate items by fuzzy title key, keeping
// the first item per key in input order. Callers that care which duplicate
// wins should order by preferred source first.
func Deduplicate(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		key := classify.TitleKey(item.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// SortByEngagement orders items by engagement score descending. The sort
// is stable so score ties keep their input order.
func SortByEngagement(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EngagementScore > items[j].EngagementScore
	})
}
