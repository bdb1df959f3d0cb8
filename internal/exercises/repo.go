package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

const exerciseColumns = `id, name, category, equipment, primary_muscles, secondary_muscles, instructions, is_custom, created_by`

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

// ListVisible returns the global exercises plus the custom ones owned by the user,
// ordered by name.
func (r *Repo) ListVisible(ctx context.Context, userID string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list_visible")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+exerciseColumns+`
			FROM exercise
			WHERE is_custom = FALSE OR created_by = $1
			ORDER BY name, id
		`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list visible [query]: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// ListAll returns every exercise, all users' custom ones included.
func (r *Repo) ListAll(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list_all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+exerciseColumns+`
			FROM exercise
			ORDER BY name, id
		`,
	)
	if err != nil {
		return nil, fmt.Errorf("list all [query]: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+exerciseColumns+`
			FROM exercise
			WHERE id = $1
		`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("get [query]: %w", err)
	}
	defer rows.Close()

	exercises, err := scanExercises(rows)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, ErrExerciseNotFound
	}
	return &exercises[0], nil
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO exercise (`+exerciseColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
		exercise.ID,
		exercise.Name,
		exercise.Category,
		exercise.Equipment,
		nonNilStrings(exercise.PrimaryMuscles),
		nonNilStrings(exercise.SecondaryMuscles),
		exercise.Instructions,
		exercise.IsCustom,
		ownerArg(exercise),
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return fmt.Errorf("%w: id %s already exists", ErrInvalidExercise, exercise.ID)
		}
		return fmt.Errorf("add [exec]: %w", err)
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, exercise Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE exercise
			SET name = $2, category = $3, equipment = $4, primary_muscles = $5,
			    secondary_muscles = $6, instructions = $7
			WHERE id = $1 AND is_custom AND created_by = $8
		`,
		exercise.ID,
		exercise.Name,
		exercise.Category,
		exercise.Equipment,
		nonNilStrings(exercise.PrimaryMuscles),
		nonNilStrings(exercise.SecondaryMuscles),
		exercise.Instructions,
		exercise.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("update [exec]: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// Delete removes a custom exercise owned by userID. Global exercises and other
// users' exercises are left untouched and reported as not found.
func (r *Repo) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM exercise WHERE id = $1 AND is_custom AND created_by = $2`,
		id, userID,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrExerciseInUse
		}
		return fmt.Errorf("delete [exec]: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// UpsertGlobal inserts or updates the given global exercises in a single transaction.
func (r *Repo) UpsertGlobal(ctx context.Context, exercises []Exercise) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.upsert_global")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("upsert [begin]: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = multierr.Append(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	for _, e := range exercises {
		_, err = tx.Exec(
			ctx,
			`
				INSERT INTO exercise (`+exerciseColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NULL)
				ON CONFLICT (id) DO UPDATE
				SET name = EXCLUDED.name, category = EXCLUDED.category, equipment = EXCLUDED.equipment,
				    primary_muscles = EXCLUDED.primary_muscles, secondary_muscles = EXCLUDED.secondary_muscles,
				    instructions = EXCLUDED.instructions
				WHERE exercise.is_custom = FALSE
			`,
			e.ID,
			e.Name,
			e.Category,
			e.Equipment,
			nonNilStrings(e.PrimaryMuscles),
			nonNilStrings(e.SecondaryMuscles),
			e.Instructions,
		)
		if err != nil {
			return 0, fmt.Errorf("upsert [%s]: %w", e.ID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("upsert [commit]: %w", err)
	}
	return len(exercises), nil
}

func scanExercises(rows pgx.Rows) ([]Exercise, error) {
	var exercises []Exercise
	for rows.Next() {
		var (
			e         Exercise
			createdBy *string
		)
		err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.Category,
			&e.Equipment,
			&e.PrimaryMuscles,
			&e.SecondaryMuscles,
			&e.Instructions,
			&e.IsCustom,
			&createdBy,
		)
		if err != nil {
			return nil, fmt.Errorf("exercises [rows scan]: %w", err)
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		if len(e.SecondaryMuscles) == 0 {
			e.SecondaryMuscles = nil
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercises [rows error]: %w", err)
	}
	return exercises, nil
}

func ownerArg(e Exercise) *string {
	if !e.IsCustom || e.CreatedBy == "" {
		return nil
	}
	owner := e.CreatedBy
	return &owner
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
