package weightlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/progress"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=weightlog_test

type weightRepo interface {
	Add(ctx context.Context, wl WeightLog) (bool, error)
	List(ctx context.Context, userID string, since *time.Time) ([]WeightLog, error)
	Latest(ctx context.Context, userID string) (*WeightLog, error)
}

type latestCache interface {
	Get(ctx context.Context, userID string) (*WeightLog, bool, error)
	Set(ctx context.Context, wl WeightLog) error
}

type Service struct {
	repo           weightRepo
	cache          latestCache
	metricsManager *metrics.Manager
	now            func() time.Time
	newID          func() string
}

func NewService(repo weightRepo, cache latestCache, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		cache:          cache,
		metricsManager: metricsManager,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

func (s *Service) Add(ctx context.Context, userID string, wl WeightLog) (_ *WeightLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.weightlog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if wl.Weight <= 0 {
		return nil, ErrInvalidWeight
	}
	if wl.RecordedAt.IsZero() {
		wl.RecordedAt = s.now()
	}
	wl.ID = s.newID()
	wl.UserID = userID

	isLatest, err := s.repo.Add(ctx, wl)
	if err != nil {
		return nil, fmt.Errorf("add weight log: %w", err)
	}
	span.SetAttributes(attribute.Bool("weightlog.latest", isLatest))

	if s.metricsManager != nil {
		s.metricsManager.CounterWeightLogs.Inc()
	}

	if isLatest {
		if err := s.cache.Set(ctx, wl); err != nil {
			log.Warnf("weight log [%s]: refresh latest weight cache: %s", wl.ID, err)
		}
	}

	return &wl, nil
}

func (s *Service) List(ctx context.Context, userID string, tr progress.TimeRange) (_ []WeightLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.weightlog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	logs, err := s.repo.List(ctx, userID, tr.Since(s.now()))
	if err != nil {
		return nil, fmt.Errorf("list weight logs [%s]: %w", tr, err)
	}
	if logs == nil {
		logs = []WeightLog{}
	}
	return logs, nil
}

// Latest serves the user's latest weight from cache, falling back to the store and
// populating the cache on a miss. Returns ErrNoWeightLogs if nothing was ever logged.
func (s *Service) Latest(ctx context.Context, userID string) (_ *WeightLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.weightlog.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cached, found, err := s.cache.Get(ctx, userID)
	if err != nil {
		log.Warnf("latest weight of [%s] from cache: %s", userID, err)
	}
	if found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	latest, err := s.repo.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoWeightLogs) {
			return nil, err
		}
		return nil, fmt.Errorf("latest weight log: %w", err)
	}

	if err := s.cache.Set(ctx, *latest); err != nil {
		log.Warnf("latest weight of [%s] to cache: %s", userID, err)
	}
	return latest, nil
}
