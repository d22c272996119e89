package database

import (
	"fmt"
)

var _ CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo handles database operations for trending company counters.
type CompanyRepo struct {
	db *DB
}

func NewCompanyRepo(db *DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// UpsertCompany records one mention: inserts with count 1 or atomically
// increments the existing counter. The increment happens in SQL, not via
// read-modify-write, so concurrent writers stay correct. Sentiment is
// last-write-wins.
func (r *CompanyRepo) UpsertCompany(name, sentiment string) error {
	_, err := r.db.Exec(`
		INSERT INTO trending_companies (name, count, sentiment, expires_at)
		VALUES ($1, 1, $2, NOW() + INTERVAL '24 hours')
		ON CONFLICT (name) DO UPDATE SET
			count      = trending_companies.count + 1,
			sentiment  = EXCLUDED.sentiment,
			last_seen  = NOW(),
			expires_at = NOW() + INTERVAL '24 hours'
	`, name, sentiment)

	if err != nil {
		return fmt.Errorf("failed to upsert trending company: %w", err)
	}

	return nil
}

func (r *CompanyRepo) GetTrendingCompanies(limit int) ([]TrendingCompany, error) {
	rows, err := r.db.Query(`
		SELECT name, count, sentiment, last_seen, expires_at
		FROM trending_companies
		WHERE expires_at > NOW()
		ORDER BY count DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending companies: %w", err)
	}
	defer rows.Close()

	var companies []TrendingCompany
	for rows.Next() {
		var c TrendingCompany
		if err := rows.Scan(&c.Name, &c.Count, &c.Sentiment, &c.LastSeen, &c.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan trending company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trending companies: %w", err)
	}

	return companies, nil
}

func (r *CompanyRepo) DeleteExpired() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM trending_companies WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired companies: %w", err)
	}
	return result.RowsAffected()
}
