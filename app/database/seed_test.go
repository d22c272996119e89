package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingFundingRepo struct {
	seeded   bool
	upserted []FundingRound
}

func (r *recordingFundingRepo) UpsertRound(round FundingRound) error {
	r.upserted = append(r.upserted, round)
	return nil
}

func (r *recordingFundingRepo) GetRounds(filter FundingFilter) ([]FundingRound, error) {
	return nil, nil
}

func (r *recordingFundingRepo) CountRounds(filter FundingFilter) (int, error) { return 0, nil }
func (r *recordingFundingRepo) GetStats() (*FundingStats, error)              { return nil, nil }
func (r *recordingFundingRepo) IsSeeded() (bool, error)                       { return r.seeded, nil }

func TestSeedFundingRounds(t *testing.T) {
	repo := &recordingFundingRepo{}

	count, err := SeedFundingRounds(repo)
	require.NoError(t, err)
	require.Equal(t, len(seedRounds), count)
	require.Len(t, repo.upserted, len(seedRounds))

	for _, round := range repo.upserted {
		require.True(t, round.IsSeedData)
		require.NotNil(t, round.AmountM)
		require.False(t, round.AnnouncedDate.IsZero())
	}
}

func TestSeedFundingRoundsSkipsWhenSeeded(t *testing.T) {
	repo := &recordingFundingRepo{seeded: true}

	count, err := SeedFundingRounds(repo)
	require.NoError(t, err)
	require.Zero(t, count)
	require.Empty(t, repo.upserted)
}

func TestSeedDatasetIntegrity(t *testing.T) {
	ids := make(map[string]bool, len(seedRounds))
	for _, s := range seedRounds {
		require.NotEmpty(t, s.id)
		require.False(t, ids[s.id], "duplicate seed id %q", s.id)
		ids[s.id] = true

		require.NotEmpty(t, s.company)
		require.NotEmpty(t, s.display)
		require.NotEmpty(t, s.round)
		require.NotEmpty(t, s.industry)
		require.NotEmpty(t, s.location)
		require.Positive(t, s.amountM)

		_, err := time.Parse("2006-01-02", s.date)
		require.NoError(t, err, "seed %q has unparseable date", s.id)
	}
}

func TestFundingOrder(t *testing.T) {
	tests := []struct {
		name     string
		sortBy   string
		order    string
		expected string
	}{
		{"date desc default", "date", "desc", "announced_date DESC"},
		{"date asc", "date", "asc", "announced_date ASC"},
		{"amount keeps date tiebreak", "amount", "desc", "funding_amount_m DESC NULLS LAST, announced_date DESC"},
		{"company asc", "company", "asc", "company_name ASC"},
		{"unknown column falls back", "id; DROP TABLE", "desc", "announced_date DESC"},
		{"unknown order falls back", "date", "sideways", "announced_date DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, fundingOrder(tt.sortBy, tt.order))
		})
	}
}
