package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/2beens/liftlog/internal/exercises"
	"github.com/2beens/liftlog/internal/progress"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectTestClient(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientSession.Close() })
	return clientSession
}

func TestNewServer_ListsTools(t *testing.T) {
	service := NewToolsService(&fakeExercises{}, &fakeProgress{}, &fakeSchemaRepo{})
	session := connectTestClient(t, NewServer(service, "alice"))

	res, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{
		"get_consistency",
		"get_liftlog_schema",
		"get_muscle_distribution",
		"get_personal_bests",
		"get_volume_trend",
		"list_facets",
		"search_exercises",
	}, names)
}

func TestNewServer_CallTool(t *testing.T) {
	prog := &fakeProgress{
		days: []progress.DayCount{{Day: "2024-01-01", Value: 2}, {Day: "2024-01-03", Value: 1}},
	}
	ex := &fakeExercises{result: exercises.SearchResult{Exercises: []exercises.Exercise{}, Limit: 20}}
	service := NewToolsService(ex, prog, nil)
	session := connectTestClient(t, NewServer(service, "alice"))
	ctx := context.Background()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_consistency",
		Arguments: map[string]any{"range": "ALL"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	var days []progress.DayCount
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(*mcp.TextContent).Text), &days))
	assert.Equal(t, prog.days, days)
	assert.Equal(t, "alice", prog.lastUserID)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search_exercises",
		Arguments: map[string]any{"query": "squat", "muscles": []string{"legs"}},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "alice", ex.lastParams.UserID)
	assert.Equal(t, []string{"legs"}, ex.lastParams.Filters.Muscles)
}

func TestNewHTTPHandler_RequiresUser(t *testing.T) {
	handler := NewHTTPHandler(NewToolsService(&fakeExercises{}, &fakeProgress{}, nil))

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"t","version":"1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusOK, rec.Code)
}
