package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

var _ ItemRepository = (*ItemRepo)(nil)

// ItemRepo handles database operations for feed items.
type ItemRepo struct {
	db *DB
}

func NewItemRepo(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// UpsertItem inserts a feed item or, when the ID already exists, refreshes
// its engagement counters and pushes the expiry another 24 hours out.
func (r *ItemRepo) UpsertItem(item FeedItem) error {
	_, err := r.db.Exec(`
		INSERT INTO feed_items (
			id, type, title, content, author, source, url, image_url,
			engagement_score, likes, reposts, replies, views,
			category, sentiment, tags, published_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''),
			$9, $10, $11, $12, $13, $14, $15, $16, $17,
			NOW() + INTERVAL '24 hours')
		ON CONFLICT (id) DO UPDATE SET
			engagement_score = EXCLUDED.engagement_score,
			likes            = EXCLUDED.likes,
			reposts          = EXCLUDED.reposts,
			replies          = EXCLUDED.replies,
			views            = EXCLUDED.views,
			expires_at       = NOW() + INTERVAL '24 hours'
	`, item.ID, item.Type, item.Title, item.Content, item.Author, item.Source,
		item.URL, item.ImageURL, item.EngagementScore, item.Likes, item.Reposts,
		item.Replies, item.Views, item.Category, item.Sentiment,
		pq.Array(item.Tags), item.PublishedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert feed item: %w", err)
	}

	return nil
}

const itemColumns = `
	id, type, title, COALESCE(content, ''), COALESCE(author, ''),
	COALESCE(source, ''), url, COALESCE(image_url, ''),
	engagement_score, likes, reposts, replies, views,
	category, sentiment, COALESCE(tags, '{}'),
	published_at, created_at, expires_at`

// GetItems returns non-expired items ordered by engagement score,
// optionally restricted to one item type.
func (r *ItemRepo) GetItems(itemType string, limit, offset int) ([]Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM feed_items
		WHERE expires_at > NOW()
		  AND ($1 = '' OR type = $1)
		ORDER BY engagement_score DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, itemType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// GetTopItem returns the highest-scoring non-expired item outside the
// General category, or nil when there is none.
func (r *ItemRepo) GetTopItem() (*Item, error) {
	row := r.db.QueryRow(`
		SELECT ` + itemColumns + `
		FROM feed_items
		WHERE expires_at > NOW() AND category != 'General'
		ORDER BY engagement_score DESC
		LIMIT 1
	`)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get top item: %w", err)
	}
	return item, nil
}

func (r *ItemRepo) GetItemCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM feed_items WHERE expires_at > NOW()`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get item count: %w", err)
	}
	return count, nil
}

// GetStats aggregates the live feed by type, category, sentiment, and
// source.
func (r *ItemRepo) GetStats() (*FeedStats, error) {
	stats := &FeedStats{
		CountsByType:      make(map[string]int),
		CountsByCategory:  make(map[string]int),
		CountsBySentiment: make(map[string]int),
	}

	if err := r.countGroups(`SELECT type, COUNT(*) FROM feed_items WHERE expires_at > NOW() GROUP BY type`, stats.CountsByType); err != nil {
		return nil, err
	}
	if err := r.countGroups(`SELECT category, COUNT(*) FROM feed_items WHERE expires_at > NOW() GROUP BY category`, stats.CountsByCategory); err != nil {
		return nil, err
	}
	if err := r.countGroups(`SELECT sentiment, COUNT(*) FROM feed_items WHERE expires_at > NOW() GROUP BY sentiment`, stats.CountsBySentiment); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT source, COUNT(*) AS count
		FROM feed_items
		WHERE expires_at > NOW()
		GROUP BY source
		ORDER BY count DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get top sources: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan source count: %w", err)
		}
		stats.TopSources = append(stats.TopSources, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source counts: %w", err)
	}

	return stats, nil
}

func (r *ItemRepo) countGroups(query string, dest map[string]int) error {
	rows, err := r.db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to get group counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("failed to scan group count: %w", err)
		}
		dest[key] = count
	}
	return rows.Err()
}

// GetKeywordCounts unnests the tag sets of all non-expired items and
// counts each keyword.
func (r *ItemRepo) GetKeywordCounts(limit int) ([]KeywordCount, error) {
	rows, err := r.db.Query(`
		SELECT unnest(tags) AS keyword, COUNT(*) AS count
		FROM feed_items
		WHERE expires_at > NOW()
		GROUP BY keyword
		ORDER BY count DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get keyword counts: %w", err)
	}
	defer rows.Close()

	var counts []KeywordCount
	for rows.Next() {
		var kc KeywordCount
		if err := rows.Scan(&kc.Keyword, &kc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan keyword count: %w", err)
		}
		counts = append(counts, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keyword counts: %w", err)
	}

	return counts, nil
}

// DeleteExpired physically removes items past their TTL.
func (r *ItemRepo) DeleteExpired() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM feed_items WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired items: %w", err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*Item, error) {
	var item Item
	err := row.Scan(
		&item.ID, &item.Type, &item.Title, &item.Content, &item.Author,
		&item.Source, &item.URL, &item.ImageURL,
		&item.EngagementScore, &item.Likes, &item.Reposts, &item.Replies, &item.Views,
		&item.Category, &item.Sentiment, pq.Array(&item.Tags),
		&item.PublishedAt, &item.CreatedAt, &item.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]Item, error) {
	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}
