package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

var _ FundingRepository = (*FundingRepo)(nil)

// FundingRepo handles database operations for the funding rounds dataset.
type FundingRepo struct {
	db *DB
}

func NewFundingRepo(db *DB) *FundingRepo {
	return &FundingRepo{db: db}
}

// UpsertRound inserts a funding round or updates the mutable fields of an
// existing one. The ID is derived from company+amount+month, so the same
// round reported by seed data and a live feed lands on one row.
func (r *FundingRepo) UpsertRound(round FundingRound) error {
	var amount sql.NullFloat64
	if round.AmountM != nil {
		amount = sql.NullFloat64{Float64: *round.AmountM, Valid: true}
	}

	_, err := r.db.Exec(`
		INSERT INTO funding_rounds (
			id, company_name, funding_amount_m, funding_display, round_type,
			investors, industry, location, announced_date, source_url,
			description, valuation_display, is_seed_data
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, NULLIF($12, ''), $13)
		ON CONFLICT (id) DO UPDATE SET
			funding_amount_m  = EXCLUDED.funding_amount_m,
			funding_display   = EXCLUDED.funding_display,
			investors         = EXCLUDED.investors,
			description       = EXCLUDED.description,
			valuation_display = EXCLUDED.valuation_display
	`, round.ID, round.CompanyName, amount, round.Display, round.RoundType,
		pq.Array(round.Investors), round.Industry, round.Location,
		round.AnnouncedDate, round.SourceURL, round.Description,
		round.ValuationDisplay, round.IsSeedData)

	if err != nil {
		return fmt.Errorf("failed to upsert funding round: %w", err)
	}

	return nil
}

const fundingWhere = `
	($1 = '' OR LOWER(company_name) LIKE '%' || LOWER($1) || '%')
	AND ($2 = '' OR industry = $2)
	AND ($3 = '' OR round_type = $3)
	AND ($4 = '' OR location ILIKE '%' || $4 || '%')
	AND ($5 = '' OR EXTRACT(YEAR FROM announced_date)::TEXT = $5)`

func (r *FundingRepo) GetRounds(filter FundingFilter) ([]FundingRound, error) {
	if filter.Limit <= 0 {
		filter.Limit = 200
	}

	query := `
		SELECT id, company_name, funding_amount_m, funding_display, round_type,
		       COALESCE(investors, '{}'), industry, location, announced_date,
		       COALESCE(source_url, ''), description, COALESCE(valuation_display, ''),
		       is_seed_data, created_at
		FROM funding_rounds
		WHERE ` + fundingWhere + `
		ORDER BY ` + fundingOrder(filter.Sort, filter.Order) + `
		LIMIT $6 OFFSET $7
	`

	rows, err := r.db.Query(query, filter.Search, filter.Industry, filter.Stage,
		filter.Location, filter.Year, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get funding rounds: %w", err)
	}
	defer rows.Close()

	var rounds []FundingRound
	for rows.Next() {
		var round FundingRound
		var amount sql.NullFloat64
		err := rows.Scan(
			&round.ID, &round.CompanyName, &amount, &round.Display, &round.RoundType,
			pq.Array(&round.Investors), &round.Industry, &round.Location,
			&round.AnnouncedDate, &round.SourceURL, &round.Description,
			&round.ValuationDisplay, &round.IsSeedData, &round.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan funding round: %w", err)
		}
		if amount.Valid {
			round.AmountM = &amount.Float64
		}
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating funding rounds: %w", err)
	}

	return rounds, nil
}

// fundingOrder maps the filter's sort/order pair onto a whitelisted ORDER
// BY clause; anything unrecognized falls back to newest-first.
func fundingOrder(sortBy, order string) string {
	dir := "DESC"
	if order == "asc" {
		dir = "ASC"
	}

	switch sortBy {
	case "amount":
		return "funding_amount_m " + dir + " NULLS LAST, announced_date DESC"
	case "company":
		return "company_name " + dir
	default:
		return "announced_date " + dir
	}
}

func (r *FundingRepo) CountRounds(filter FundingFilter) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM funding_rounds WHERE `+fundingWhere,
		filter.Search, filter.Industry, filter.Stage, filter.Location, filter.Year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count funding rounds: %w", err)
	}
	return count, nil
}

func (r *FundingRepo) GetStats() (*FundingStats, error) {
	stats := &FundingStats{}

	var latestDate sql.NullTime
	err := r.db.QueryRow(`
		SELECT
			COUNT(*),
			COUNT(DISTINCT company_name),
			COALESCE(SUM(funding_amount_m), 0),
			COALESCE(AVG(funding_amount_m), 0),
			COALESCE(MAX(funding_amount_m), 0),
			COALESCE((SELECT company_name FROM funding_rounds ORDER BY funding_amount_m DESC NULLS LAST LIMIT 1), ''),
			COALESCE((SELECT funding_display FROM funding_rounds ORDER BY funding_amount_m DESC NULLS LAST LIMIT 1), ''),
			COALESCE((SELECT company_name FROM funding_rounds ORDER BY announced_date DESC LIMIT 1), ''),
			COALESCE((SELECT funding_display FROM funding_rounds ORDER BY announced_date DESC LIMIT 1), ''),
			(SELECT announced_date FROM funding_rounds ORDER BY announced_date DESC LIMIT 1)
		FROM funding_rounds
	`).Scan(&stats.TotalRounds, &stats.TotalCompanies, &stats.TotalAmountM,
		&stats.AvgAmountM, &stats.MaxAmountM, &stats.LargestCompany,
		&stats.LargestDisplay, &stats.LatestCompany, &stats.LatestDisplay, &latestDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get funding totals: %w", err)
	}
	if latestDate.Valid {
		stats.LatestDate = &latestDate.Time
	}

	rows, err := r.db.Query(`
		SELECT industry, SUM(funding_amount_m), COUNT(*)
		FROM funding_rounds
		WHERE funding_amount_m IS NOT NULL
		GROUP BY industry
		ORDER BY SUM(funding_amount_m) DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get industry stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s FundingIndustryStat
		if err := rows.Scan(&s.Industry, &s.TotalM, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan industry stat: %w", err)
		}
		stats.ByIndustry = append(stats.ByIndustry, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating industry stats: %w", err)
	}

	stageRows, err := r.db.Query(`
		SELECT round_type, COUNT(*), COALESCE(SUM(funding_amount_m), 0)
		FROM funding_rounds
		GROUP BY round_type
		ORDER BY SUM(funding_amount_m) DESC NULLS LAST
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage stats: %w", err)
	}
	defer stageRows.Close()

	for stageRows.Next() {
		var s FundingStageStat
		if err := stageRows.Scan(&s.RoundType, &s.Count, &s.TotalM); err != nil {
			return nil, fmt.Errorf("failed to scan stage stat: %w", err)
		}
		stats.ByStage = append(stats.ByStage, s)
	}
	if err := stageRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stage stats: %w", err)
	}

	monthRows, err := r.db.Query(`
		SELECT TO_CHAR(announced_date, 'YYYY-MM') AS month,
		       COALESCE(SUM(funding_amount_m), 0), COUNT(*)
		FROM funding_rounds
		WHERE announced_date >= NOW() - INTERVAL '24 months'
		GROUP BY month
		ORDER BY month ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get month stats: %w", err)
	}
	defer monthRows.Close()

	for monthRows.Next() {
		var s FundingMonthStat
		if err := monthRows.Scan(&s.Month, &s.TotalM, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan month stat: %w", err)
		}
		stats.ByMonth = append(stats.ByMonth, s)
	}
	if err := monthRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating month stats: %w", err)
	}

	return stats, nil
}

// IsSeeded reports whether any bootstrap seed rows are present.
func (r *FundingRepo) IsSeeded() (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM funding_rounds WHERE is_seed_data = true`).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check seed state: %w", err)
	}
	return count > 0, nil
}
