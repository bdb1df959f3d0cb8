package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	ListVisible(ctx context.Context, userID string) ([]Exercise, error)
	ListAll(ctx context.Context) ([]Exercise, error)
	Get(ctx context.Context, id string) (*Exercise, error)
	Add(ctx context.Context, exercise Exercise) error
	Update(ctx context.Context, exercise Exercise) error
	Delete(ctx context.Context, userID, id string) error
}

type Service struct {
	repo           exercisesRepo
	facetCache     *FacetCache
	metricsManager *metrics.Manager
	newID          func() string
}

// NewService creates the exercise search service. facetCache may be nil, in which
// case facets are loaded from the repo on every call.
func NewService(repo exercisesRepo, facetCache *FacetCache, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		facetCache:     facetCache,
		metricsManager: metricsManager,
		newID:          uuid.NewString,
	}
}

func (s *Service) Search(ctx context.Context, params SearchParams) (_ SearchResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("search.query", params.Query),
		attribute.Int("search.limit", params.Limit),
		attribute.Int("search.offset", params.Offset),
	)

	candidates, err := s.repo.ListVisible(ctx, params.UserID)
	if err != nil {
		return SearchResult{}, fmt.Errorf("list visible exercises: %w", err)
	}

	result := Rank(candidates, params)
	span.SetAttributes(
		attribute.Int("search.candidates", len(candidates)),
		attribute.Int("search.total", result.Total),
	)
	if s.metricsManager != nil {
		s.metricsManager.CounterSearches.Inc()
		s.metricsManager.HistogramSearchResults.Observe(float64(result.Total))
	}

	return result, nil
}

func (s *Service) Muscles(ctx context.Context) ([]string, error) {
	return s.facet(ctx, FacetMuscles, DistinctMuscles)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.facet(ctx, FacetCategories, DistinctCategories)
}

func (s *Service) Equipment(ctx context.Context) ([]string, error) {
	return s.facet(ctx, FacetEquipment, DistinctEquipment)
}

// facet enumerates over the whole catalog, custom exercises of all users included.
func (s *Service) facet(ctx context.Context, facet string, extract func([]Exercise) []string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.facet."+facet)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	load := func(ctx context.Context) ([]string, error) {
		all, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list all exercises: %w", err)
		}
		return extract(all), nil
	}

	if s.facetCache == nil {
		return load(ctx)
	}
	return s.facetCache.GetOrLoad(ctx, facet, load)
}

// Get returns the exercise if the user can see it.
func (s *Service) Get(ctx context.Context, userID, id string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercise, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exercise.VisibleTo(userID) {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

// Create stores a new custom exercise owned by the user.
func (s *Service) Create(ctx context.Context, userID string, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, ErrNotOwner
	}

	exercise = exercise.Normalized()
	if err := exercise.Validate(); err != nil {
		return nil, err
	}
	exercise.ID = s.newID()
	exercise.IsCustom = true
	exercise.CreatedBy = userID

	if err := s.repo.Add(ctx, exercise); err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	s.invalidateFacets()

	log.Debugf("custom exercise [%s] created by [%s]", exercise.ID, userID)
	return &exercise, nil
}

// Update replaces the editable fields of a custom exercise owned by the user.
func (s *Service) Update(ctx context.Context, userID string, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercise = exercise.Normalized()
	if _, err := s.ownedExercise(ctx, userID, exercise.ID); err != nil {
		return nil, err
	}
	if err := exercise.Validate(); err != nil {
		return nil, err
	}
	exercise.IsCustom = true
	exercise.CreatedBy = userID

	if err := s.repo.Update(ctx, exercise); err != nil {
		return nil, fmt.Errorf("update exercise: %w", err)
	}
	s.invalidateFacets()

	return &exercise, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.ownedExercise(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrExerciseInUse) || errors.Is(err, ErrExerciseNotFound) {
			return err
		}
		return fmt.Errorf("delete exercise: %w", err)
	}
	s.invalidateFacets()

	log.Debugf("custom exercise [%s] deleted by [%s]", id, userID)
	return nil
}

// ownedExercise loads the exercise for a mutation. Another user's custom exercise
// is reported as not found, a global one as not owned.
func (s *Service) ownedExercise(ctx context.Context, userID, id string) (*Exercise, error) {
	if id == "" {
		return nil, ErrExerciseNotFound
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	if !existing.VisibleTo(userID) {
		return nil, ErrExerciseNotFound
	}
	if !existing.OwnedBy(userID) {
		return nil, ErrNotOwner
	}
	return existing, nil
}

func (s *Service) invalidateFacets() {
	if s.facetCache != nil {
		s.facetCache.Invalidate()
	}
}
