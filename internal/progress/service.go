package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress_test

type sessionsRepo interface {
	SessionsSince(ctx context.Context, userID string, since *time.Time) ([]Session, error)
	SessionsWithExercises(ctx context.Context, userID string, exerciseIDs []string) ([]Session, error)
}

const (
	aggConsistency = "consistency"
	aggVolume      = "volume"
	aggMuscles     = "muscles"
	aggPBs         = "pbs"
)

type Service struct {
	repo           sessionsRepo
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo sessionsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// NewServiceWithClock is NewService with a fixed clock for range bounds.
func NewServiceWithClock(repo sessionsRepo, metricsManager *metrics.Manager, now func() time.Time) *Service {
	s := NewService(repo, metricsManager)
	s.now = now
	return s
}

func (s *Service) Consistency(ctx context.Context, userID string, tr TimeRange) (_ []DayCount, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.consistency")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := s.sessionsInRange(ctx, userID, tr)
	if err != nil {
		return nil, err
	}
	s.countAggregation(aggConsistency)
	return CountSessionsPerDay(sessions), nil
}

func (s *Service) Volume(ctx context.Context, userID string, tr TimeRange) (_ []DayVolume, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.volume")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := s.sessionsInRange(ctx, userID, tr)
	if err != nil {
		return nil, err
	}
	s.countAggregation(aggVolume)
	return SumVolumePerDay(sessions), nil
}

func (s *Service) MuscleDistribution(ctx context.Context, userID string, tr TimeRange) (_ []MuscleCount, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.muscles")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := s.sessionsInRange(ctx, userID, tr)
	if err != nil {
		return nil, err
	}
	s.countAggregation(aggMuscles)
	return CountSetsPerMuscle(sessions), nil
}

// PersonalBests is all-time, the time range does not apply.
func (s *Service) PersonalBests(ctx context.Context, userID string, exerciseIDs []string) (_ []PersonalBest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.pbs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ids := normalizeExerciseIDs(exerciseIDs)
	if len(ids) == 0 {
		return nil, ErrNoExerciseIDs
	}
	span.SetAttributes(attribute.Int("progress.exercise_ids", len(ids)))

	sessions, err := s.repo.SessionsWithExercises(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("sessions with exercises: %w", err)
	}
	s.countAggregation(aggPBs)
	return FindPersonalBests(sessions, ids), nil
}

func (s *Service) sessionsInRange(ctx context.Context, userID string, tr TimeRange) ([]Session, error) {
	since := tr.Since(s.now())
	sessions, err := s.repo.SessionsSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("sessions since [%s]: %w", tr, err)
	}
	return sessions, nil
}

func (s *Service) countAggregation(kind string) {
	if s.metricsManager != nil {
		s.metricsManager.CounterAggregations.WithLabelValues(kind).Inc()
	}
}
