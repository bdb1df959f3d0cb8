package mcp

import (
	"context"
	"encoding/json"

	"github.com/2beens/liftlog/internal/exercises"
	"github.com/2beens/liftlog/internal/progress"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler turns tool calls into engine calls on behalf of one user.
type Handler struct {
	service *ToolsService
	userID  string
}

func NewHandler(service *ToolsService, userID string) *Handler {
	return &Handler{
		service: service,
		userID:  userID,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

type SearchExercisesInput struct {
	Query     string   `json:"query,omitempty" jsonschema:"Free text matched against name, muscles, category and equipment"`
	Muscles   []string `json:"muscles,omitempty" jsonschema:"Only exercises working any of these muscles"`
	Category  string   `json:"category,omitempty" jsonschema:"Only exercises of this category"`
	Equipment string   `json:"equipment,omitempty" jsonschema:"Only exercises using this equipment"`
	Limit     int      `json:"limit,omitempty" jsonschema:"Page size (default 20, max 100)"`
	Offset    int      `json:"offset,omitempty" jsonschema:"Page offset"`
}

func (h *Handler) SearchExercisesTool() func(context.Context, *mcp.CallToolRequest, SearchExercisesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SearchExercisesInput) (*mcp.CallToolResult, any, error) {
		res, err := h.service.exercises.Search(ctx, exercises.SearchParams{
			Query: in.Query,
			Filters: exercises.Filters{
				Muscles:   in.Muscles,
				Category:  in.Category,
				Equipment: in.Equipment,
			},
			UserID: h.userID,
			Limit:  in.Limit,
			Offset: in.Offset,
		})
		if err != nil {
			return errorResult("Error searching exercises: " + err.Error()), nil, nil
		}
		return jsonResult(res), nil, nil
	}
}

type ListFacetsInput struct {
	Facet string `json:"facet" jsonschema:"One of: muscles, categories, equipment"`
}

func (h *Handler) ListFacetsTool() func(context.Context, *mcp.CallToolRequest, ListFacetsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ListFacetsInput) (*mcp.CallToolResult, any, error) {
		values, err := h.service.Facet(ctx, in.Facet)
		if err != nil {
			return errorResult("Error listing facet: " + err.Error()), nil, nil
		}
		return jsonResult(values), nil, nil
	}
}

type TimeRangeInput struct {
	Range string `json:"range,omitempty" jsonschema:"One of 1W, 1M, 3M, 6M, 1Y, ALL (default ALL)"`
}

func (h *Handler) ConsistencyTool() func(context.Context, *mcp.CallToolRequest, TimeRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TimeRangeInput) (*mcp.CallToolResult, any, error) {
		days, err := h.service.progress.Consistency(ctx, h.userID, progress.ParseTimeRange(in.Range))
		if err != nil {
			return errorResult("Error getting consistency: " + err.Error()), nil, nil
		}
		return jsonResult(days), nil, nil
	}
}

func (h *Handler) VolumeTrendTool() func(context.Context, *mcp.CallToolRequest, TimeRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TimeRangeInput) (*mcp.CallToolResult, any, error) {
		days, err := h.service.progress.Volume(ctx, h.userID, progress.ParseTimeRange(in.Range))
		if err != nil {
			return errorResult("Error getting volume: " + err.Error()), nil, nil
		}
		return jsonResult(days), nil, nil
	}
}

func (h *Handler) MuscleDistributionTool() func(context.Context, *mcp.CallToolRequest, TimeRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TimeRangeInput) (*mcp.CallToolResult, any, error) {
		muscles, err := h.service.progress.MuscleDistribution(ctx, h.userID, progress.ParseTimeRange(in.Range))
		if err != nil {
			return errorResult("Error getting muscle distribution: " + err.Error()), nil, nil
		}
		return jsonResult(muscles), nil, nil
	}
}

type PersonalBestsInput struct {
	ExerciseIDs []string `json:"exercise_ids" jsonschema:"Exercise ids to get the heaviest set for"`
}

func (h *Handler) PersonalBestsTool() func(context.Context, *mcp.CallToolRequest, PersonalBestsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in PersonalBestsInput) (*mcp.CallToolResult, any, error) {
		pbs, err := h.service.progress.PersonalBests(ctx, h.userID, in.ExerciseIDs)
		if err != nil {
			return errorResult("Error getting personal bests: " + err.Error()), nil, nil
		}
		return jsonResult(pbs), nil, nil
	}
}

func (h *Handler) SchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}
