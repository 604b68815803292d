package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type OverviewStats struct {
	AccountCount  int `db:"account_count"`
	RankedCount   int `db:"ranked_count"`
	UnrankedCount int `db:"unranked_count"`
}

type RegionCount struct {
	Region string `db:"region"`
	Count  int    `db:"count"`
}

type StatsRepository interface {
	GetOverviewStats(ctx context.Context) (*OverviewStats, error)
	CountByRegion(ctx context.Context) ([]RegionCount, error)
}

type statsRepo struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) GetOverviewStats(ctx context.Context) (*OverviewStats, error) {
	var stats OverviewStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(*) AS account_count,
			COUNT(*) FILTER (WHERE rank != 'Unranked') AS ranked_count,
			COUNT(*) FILTER (WHERE rank = 'Unranked') AS unranked_count
		FROM accounts
	`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepo) CountByRegion(ctx context.Context) ([]RegionCount, error) {
	var counts []RegionCount
	err := r.db.SelectContext(ctx, &counts, `
		SELECT region, COUNT(*) AS count
		FROM accounts
		GROUP BY region
		ORDER BY count DESC, region
	`)
	if err != nil {
		return nil, err
	}
	return counts, nil
}
