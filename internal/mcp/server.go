package mcp

import (
	"net/http"

	"github.com/2beens/liftlog/internal/auth"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewServer builds an MCP server whose tools act on behalf of the given user:
// exercise search, facets, consistency, volume, muscle distribution, personal bests
// and the DB schema.
func NewServer(service *ToolsService, userID string) *mcp.Server {
	h := NewHandler(service, userID)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "liftlog",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "search_exercises",
		Description: "Searches the exercise library (global exercises plus the user's custom ones). Optional: query, muscles, category, equipment, limit, offset. Results are ranked by relevance when a query is given.",
	}, h.SearchExercisesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_facets",
		Description: "Lists the distinct muscles, categories or equipment of the exercise library. Arg: facet (muscles | categories | equipment).",
	}, h.ListFacetsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_consistency",
		Description: "Returns the number of workout sessions per day. Optional arg: range (1W, 1M, 3M, 6M, 1Y, ALL). Days without sessions are omitted.",
	}, h.ConsistencyTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_volume_trend",
		Description: "Returns the lifted volume (sum of weight x reps over all sets) per day. Optional arg: range (1W, 1M, 3M, 6M, 1Y, ALL).",
	}, h.VolumeTrendTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_muscle_distribution",
		Description: "Returns the number of sets per primary muscle, most trained first. Optional arg: range (1W, 1M, 3M, 6M, 1Y, ALL).",
	}, h.MuscleDistributionTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_personal_bests",
		Description: "Returns the heaviest single set ever lifted for each given exercise, with the session date. Arg: exercise_ids. Exercises never logged are left out.",
	}, h.PersonalBestsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_liftlog_schema",
		Description: "Returns the DB schema of the liftlog tables: columns, types, nullable, default.",
	}, h.SchemaTool())

	return s
}

// NewHTTPHandler serves MCP over streamable HTTP. Each request gets a server bound to
// the user the auth middleware put in the request context.
func NewHTTPHandler(service *ToolsService) http.Handler {
	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		userID := auth.UserID(r.Context())
		if userID == "" {
			log.Warnln("mcp: request without user")
			return nil
		}
		return NewServer(service, userID)
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	})
	return otelhttp.NewHandler(handler, "mcp")
}
