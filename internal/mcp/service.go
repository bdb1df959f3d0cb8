package mcp

import (
	"context"
	"fmt"

	"github.com/2beens/liftlog/internal/exercises"
	"github.com/2beens/liftlog/internal/progress"
)

// exerciseSearcher is the part of exercises.Service the tools use.
type exerciseSearcher interface {
	Search(ctx context.Context, params exercises.SearchParams) (exercises.SearchResult, error)
	Muscles(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
	Equipment(ctx context.Context) ([]string, error)
}

// progressAggregator is the part of progress.Service the tools use.
type progressAggregator interface {
	Consistency(ctx context.Context, userID string, tr progress.TimeRange) ([]progress.DayCount, error)
	Volume(ctx context.Context, userID string, tr progress.TimeRange) ([]progress.DayVolume, error)
	MuscleDistribution(ctx context.Context, userID string, tr progress.TimeRange) ([]progress.MuscleCount, error)
	PersonalBests(ctx context.Context, userID string, exerciseIDs []string) ([]progress.PersonalBest, error)
}

// ToolsService holds the engines behind the MCP tools.
type ToolsService struct {
	exercises exerciseSearcher
	progress  progressAggregator
	schema    SchemaRepo
}

func NewToolsService(exercisesSvc exerciseSearcher, progressSvc progressAggregator, schemaRepo SchemaRepo) *ToolsService {
	return &ToolsService{
		exercises: exercisesSvc,
		progress:  progressSvc,
		schema:    schemaRepo,
	}
}

// Facet lists the distinct values of one exercise attribute.
func (s *ToolsService) Facet(ctx context.Context, facet string) ([]string, error) {
	switch facet {
	case exercises.FacetMuscles:
		return s.exercises.Muscles(ctx)
	case exercises.FacetCategories:
		return s.exercises.Categories(ctx)
	case exercises.FacetEquipment:
		return s.exercises.Equipment(ctx)
	default:
		return nil, fmt.Errorf("unknown facet %q, use one of: muscles, categories, equipment", facet)
	}
}

func (s *ToolsService) GetSchema(ctx context.Context) (string, error) {
	if s.schema == nil {
		return "", fmt.Errorf("schema not available")
	}
	cols, err := s.schema.GetColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}
