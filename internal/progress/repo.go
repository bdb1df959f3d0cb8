package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

const sessionRowColumns = `
	s.id, s.user_id, s.name, s.start_time, s.end_time,
	e.id, e.exercise_id, e.position, x.name, x.primary_muscles,
	st.id, st.position, st.weight, st.reps, st.is_hard_set
`

// scan order: session start time, entry position, set position
const sessionRowOrder = `ORDER BY s.start_time, s.id, e.position, e.id, st.position, st.id`

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

// SessionsSince returns the user's sessions started at or after since (all of them
// when since is nil), with their entries and sets.
func (r *Repo) SessionsSince(ctx context.Context, userID string, since *time.Time) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.sessions_since")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+sessionRowColumns+`
			FROM workout_session s
			LEFT JOIN exercise_entry e ON e.session_id = s.id
			LEFT JOIN exercise x ON x.id = e.exercise_id
			LEFT JOIN exercise_set st ON st.entry_id = e.id
			WHERE s.user_id = $1 AND ($2::timestamptz IS NULL OR s.start_time >= $2)
		`+sessionRowOrder,
		userID,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("sessions since [query]: %w", err)
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("progress.sessions", len(sessions)))
	return sessions, nil
}

// SessionsWithExercises returns all the user's sessions containing any of the given
// exercises. Only the entries of those exercises are included.
func (r *Repo) SessionsWithExercises(ctx context.Context, userID string, exerciseIDs []string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.sessions_with_exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.StringSlice("progress.exercise_ids", exerciseIDs),
	)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+sessionRowColumns+`
			FROM workout_session s
			JOIN exercise_entry e ON e.session_id = s.id
			JOIN exercise x ON x.id = e.exercise_id
			LEFT JOIN exercise_set st ON st.entry_id = e.id
			WHERE s.user_id = $1 AND e.exercise_id = ANY($2)
		`+sessionRowOrder,
		userID,
		exerciseIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("sessions with exercises [query]: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// scanSessions assembles the flat joined rows into sessions. Rows must come grouped
// by session and entry.
func scanSessions(rows pgx.Rows) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		var (
			s              Session
			entryID        *string
			exerciseID     *string
			entryPosition  *int
			exerciseName   *string
			primaryMuscles []string
			setID          *string
			setPosition    *int
			weight         *float64
			reps           *int
			isHardSet      *bool
		)
		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Name,
			&s.StartTime,
			&s.EndTime,
			&entryID,
			&exerciseID,
			&entryPosition,
			&exerciseName,
			&primaryMuscles,
			&setID,
			&setPosition,
			&weight,
			&reps,
			&isHardSet,
		)
		if err != nil {
			return nil, fmt.Errorf("sessions [rows scan]: %w", err)
		}

		if len(sessions) == 0 || sessions[len(sessions)-1].ID != s.ID {
			sessions = append(sessions, s)
		}
		session := &sessions[len(sessions)-1]
		if entryID == nil {
			continue
		}

		entries := session.Entries
		if len(entries) == 0 || entries[len(entries)-1].ID != *entryID {
			session.Entries = append(session.Entries, Entry{
				ID:             *entryID,
				ExerciseID:     deref(exerciseID),
				ExerciseName:   deref(exerciseName),
				PrimaryMuscles: primaryMuscles,
				Position:       deref(entryPosition),
			})
		}
		if setID == nil {
			continue
		}

		entry := &session.Entries[len(session.Entries)-1]
		entry.Sets = append(entry.Sets, Set{
			ID:        *setID,
			Position:  deref(setPosition),
			Weight:    deref(weight),
			Reps:      deref(reps),
			IsHardSet: deref(isHardSet),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sessions [rows error]: %w", err)
	}
	return sessions, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
