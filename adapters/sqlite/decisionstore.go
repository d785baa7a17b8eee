package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/artpar/actiongate/domain/decision"
	"github.com/artpar/actiongate/ports"
)

// DecisionStore implements ports.DecisionStore using SQLite.
type DecisionStore struct {
	db *DB
}

// NewDecisionStore creates a new SQLite decision store.
func NewDecisionStore(db *DB) *DecisionStore {
	return &DecisionStore{db: db}
}

// RecordBatch stores multiple decisions.
func (s *DecisionStore) RecordBatch(ctx context.Context, decisions []decision.Decision) error {
	if len(decisions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO validation_decisions (
			id, mode, service, action, parameter, outcome, reason, correlation_id, checked_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range decisions {
		// Store timestamps in UTC for consistent querying
		_, err := stmt.ExecContext(ctx,
			d.ID, d.Mode, d.Service, d.Action, d.Parameter, d.Outcome,
			d.Reason, d.CorrelationID, d.CheckedAt.UTC(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Recent returns the most recent decisions, newest first. Ties on checked_at
// break by insertion order.
func (s *DecisionStore) Recent(ctx context.Context, limit int) ([]decision.Decision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, service, action, parameter, outcome, reason, correlation_id, checked_at
		FROM validation_decisions
		ORDER BY checked_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []decision.Decision
	for rows.Next() {
		var d decision.Decision
		var parameter, reason, correlationID sql.NullString

		err := rows.Scan(
			&d.ID, &d.Mode, &d.Service, &d.Action, &parameter,
			&d.Outcome, &reason, &correlationID, &d.CheckedAt,
		)
		if err != nil {
			return nil, err
		}

		if parameter.Valid {
			d.Parameter = parameter.String
		}
		if reason.Valid {
			d.Reason = reason.String
		}
		if correlationID.Valid {
			d.CorrelationID = correlationID.String
		}

		decisions = append(decisions, d)
	}

	return decisions, rows.Err()
}

// Summary returns aggregated counts for decisions checked in [from, to).
func (s *DecisionStore) Summary(ctx context.Context, from, to time.Time) (decision.Summary, error) {
	// Format times as ISO8601 strings for SQLite comparison
	// Convert to UTC since timestamps are stored in UTC
	fromStr := from.UTC().Format("2006-01-02 15:04:05")
	toStr := to.UTC().Format("2006-01-02 15:04:05")

	rows, err := s.db.QueryContext(ctx, `
		SELECT outcome, COALESCE(reason, ''), COUNT(*)
		FROM validation_decisions
		WHERE datetime(checked_at) >= datetime(?) AND datetime(checked_at) < datetime(?)
		GROUP BY outcome, reason
	`, fromStr, toStr)
	if err != nil {
		return decision.Summary{}, err
	}
	defer rows.Close()

	summary := decision.Summary{From: from, To: to}
	for rows.Next() {
		var outcome, reason string
		var count int64
		if err := rows.Scan(&outcome, &reason, &count); err != nil {
			return decision.Summary{}, err
		}

		summary.Total += count
		if outcome == decision.OutcomeValid {
			summary.Valid += count
			continue
		}

		summary.Invalid += count
		if reason != "" {
			if summary.ByReason == nil {
				summary.ByReason = make(map[string]int64)
			}
			summary.ByReason[reason] += count
		}
	}

	return summary, rows.Err()
}

// Cleanup removes decisions checked before olderThan.
func (s *DecisionStore) Cleanup(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM validation_decisions WHERE datetime(checked_at) < datetime(?)
	`, olderThan.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Ensure interface compliance.
var _ ports.DecisionStore = (*DecisionStore)(nil)
