package weightlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores the weight log and moves the user's latest weight forward if the log
// is not older than the current one. It reports whether the log became the latest.
func (r *Repo) Add(ctx context.Context, wl WeightLog) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weightlog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("add weight log [begin]: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = multierr.Append(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	_, err = tx.Exec(
		ctx,
		`
			INSERT INTO weight_log (id, user_id, weight, recorded_at)
			VALUES ($1, $2, $3, $4)
		`,
		wl.ID,
		wl.UserID,
		wl.Weight,
		wl.RecordedAt,
	)
	if err != nil {
		return false, fmt.Errorf("add weight log [insert]: %w", err)
	}

	tag, err := tx.Exec(
		ctx,
		`
			UPDATE users
			SET latest_weight = $2, latest_weight_at = $3
			WHERE id = $1 AND (latest_weight_at IS NULL OR latest_weight_at <= $3)
		`,
		wl.UserID,
		wl.Weight,
		wl.RecordedAt,
	)
	if err != nil {
		return false, fmt.Errorf("add weight log [update user]: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("add weight log [commit]: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List returns the user's weight logs recorded at or after since, oldest first.
func (r *Repo) List(ctx context.Context, userID string, since *time.Time) (_ []WeightLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weightlog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, weight, recorded_at
			FROM weight_log
			WHERE user_id = $1 AND ($2::timestamptz IS NULL OR recorded_at >= $2)
			ORDER BY recorded_at, id
		`,
		userID,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("list weight logs [query]: %w", err)
	}
	defer rows.Close()

	logs := []WeightLog{}
	for rows.Next() {
		var wl WeightLog
		if err := rows.Scan(&wl.ID, &wl.UserID, &wl.Weight, &wl.RecordedAt); err != nil {
			return nil, fmt.Errorf("list weight logs [rows scan]: %w", err)
		}
		logs = append(logs, wl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list weight logs [rows error]: %w", err)
	}
	return logs, nil
}

func (r *Repo) Latest(ctx context.Context, userID string) (_ *WeightLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weightlog.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var wl WeightLog
	err = r.db.QueryRow(
		ctx,
		`
			SELECT id, user_id, weight, recorded_at
			FROM weight_log
			WHERE user_id = $1
			ORDER BY recorded_at DESC, id DESC
			LIMIT 1
		`,
		userID,
	).Scan(&wl.ID, &wl.UserID, &wl.Weight, &wl.RecordedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoWeightLogs
		}
		return nil, fmt.Errorf("latest weight log: %w", err)
	}
	return &wl, nil
}
