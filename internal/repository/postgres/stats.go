package postgres

import (
	"database/sql"

	"relaybot/internal/domain"
)

// StatsRepo implements repository.StatsRepository on a single-row table
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo creates a new stats repository
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// GetStats returns the counters, zeroed when the row does not exist yet
func (r *StatsRepo) GetStats() (domain.BroadcastStats, error) {
	var s domain.BroadcastStats
	query := `
		SELECT sent_users, failed_users, sent_groups, failed_groups
		FROM broadcast_stats
		WHERE id = 1
	`
	err := r.db.QueryRow(query).Scan(&s.SentUsers, &s.FailedUsers, &s.SentGroups, &s.FailedGroups)
	if err == sql.ErrNoRows {
		return domain.BroadcastStats{}, nil
	}
	if err != nil {
		return domain.BroadcastStats{}, err
	}
	return s, nil
}

// AddStats increments the counters in one statement, so concurrent callers never lose deltas
func (r *StatsRepo) AddStats(delta domain.BroadcastStats) (domain.BroadcastStats, error) {
	var s domain.BroadcastStats
	query := `
		INSERT INTO broadcast_stats (id, sent_users, failed_users, sent_groups, failed_groups)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			sent_users = broadcast_stats.sent_users + EXCLUDED.sent_users,
			failed_users = broadcast_stats.failed_users + EXCLUDED.failed_users,
			sent_groups = broadcast_stats.sent_groups + EXCLUDED.sent_groups,
			failed_groups = broadcast_stats.failed_groups + EXCLUDED.failed_groups
		RETURNING sent_users, failed_users, sent_groups, failed_groups
	`
	err := r.db.QueryRow(query, delta.SentUsers, delta.FailedUsers, delta.SentGroups, delta.FailedGroups).
		Scan(&s.SentUsers, &s.FailedUsers, &s.SentGroups, &s.FailedGroups)
	if err != nil {
		return domain.BroadcastStats{}, err
	}
	return s, nil
}
