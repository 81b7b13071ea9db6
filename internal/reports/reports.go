// Package reports builds read-only projections for the admin UI. The
// queries are plain SQL aggregates over the pgx pool; no business
// logic from the token gate is duplicated here beyond state labeling.
package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/android19/discipleship-form-sub001/internal/token"
	"github.com/android19/discipleship-form-sub001/pkg/db"
)

// TokenUsage is one row of the token-usage report.
type TokenUsage struct {
	Code            string    `db:"code" json:"code"`
	LeaderLabel     string    `db:"leader_label" json:"leader_label"`
	UsedCount       int       `db:"used_count" json:"used_count"`
	MaxUses         *int      `db:"max_uses" json:"max_uses"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	ExpiresAt       time.Time `db:"expires_at" json:"expires_at"`
	SubmissionCount int       `db:"submission_count" json:"submission_count"`
	State           string    `db:"-" json:"state"`
}

// LeaderActivity is one row of the submissions report.
type LeaderActivity struct {
	LeaderLabel     string     `db:"leader_label" json:"leader_label"`
	SubmissionCount int        `db:"submission_count" json:"submission_count"`
	LastSubmittedAt *time.Time `db:"last_submitted_at" json:"last_submitted_at"`
}

// Reporter runs report queries against the pool.
type Reporter struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New builds a Reporter. A nil clock defaults to time.Now.
func New(pool *pgxpool.Pool, now func() time.Time) *Reporter {
	if now == nil {
		now = time.Now
	}
	return &Reporter{pool: pool, now: now}
}

// TokenUsageReport lists every token with its usage accounting and the
// display state evaluated at call time.
func (r *Reporter) TokenUsageReport(ctx context.Context) ([]TokenUsage, error) {
	var rows []TokenUsage
	err := db.Select(ctx, r.pool, &rows, `
		SELECT t.code, t.leader_label, t.used_count, t.max_uses, t.is_active, t.expires_at,
		       count(s.id) AS submission_count
		FROM discipled.form_tokens t
		LEFT JOIN discipled.submissions s ON s.form_token_id = t.id
		GROUP BY t.id
		ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, err
	}

	now := r.now()
	for i := range rows {
		snapshot := token.Token{
			IsActive:  rows[i].IsActive,
			ExpiresAt: rows[i].ExpiresAt,
			MaxUses:   rows[i].MaxUses,
			UsedCount: rows[i].UsedCount,
		}
		rows[i].State = snapshot.StateAt(now).Label()
	}
	return rows, nil
}

// LeaderActivityReport aggregates stored submissions per leader label.
func (r *Reporter) LeaderActivityReport(ctx context.Context) ([]LeaderActivity, error) {
	var rows []LeaderActivity
	err := db.Select(ctx, r.pool, &rows, `
		SELECT leader_label,
		       count(*) AS submission_count,
		       max(submitted_at) AS last_submitted_at
		FROM discipled.submissions
		GROUP BY leader_label
		ORDER BY max(submitted_at) DESC`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
