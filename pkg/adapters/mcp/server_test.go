package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sz10101/vym/pkg/adapters/memory"
	"github.com/sz10101/vym/pkg/script"
)

func newTestServer(models ...*memory.Model) *Server {
	return NewServer(script.NewApp(memory.NewHost(models...)), "test")
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) (string, bool) {
	t.Helper()
	tool, ok := s.MCPServer().ListTools()[name]
	require.True(t, ok, "tool %s not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestRegisterTools(t *testing.T) {
	s := newTestServer()
	tools := s.MCPServer().ListTools()

	assert.Len(t, tools, len(script.AppOperations())+len(script.MapOperations()))

	insert := tools[ToolName("map", "addMapInsert")].Tool
	assert.Equal(t, []string{"filename"}, insert.InputSchema.Required)
	assert.Contains(t, insert.InputSchema.Properties, "contentFilter")
	assert.Contains(t, insert.Description, "map.addMapInsert(filename [, pos [, contentFilter]])")

	branch := tools[ToolName("map", "addBranch")].Tool
	assert.Contains(t, branch.Description, "Requires a selected branch.")
}

func TestToolCalls(t *testing.T) {
	t.Run("Build Map", func(t *testing.T) {
		s := newTestServer(memory.NewModel())

		text, isErr := callTool(t, s, "map_select", map[string]any{"selector": "mc:0"})
		require.False(t, isErr, text)
		assert.Equal(t, "true", text)

		text, isErr = callTool(t, s, "map_addBranch", nil)
		require.False(t, isErr, text)
		assert.Equal(t, "ok", text)

		text, _ = callTool(t, s, "map_branchCount", nil)
		assert.Equal(t, "1", text)
	})

	t.Run("Reported Error", func(t *testing.T) {
		s := newTestServer(memory.NewModel())

		text, isErr := callTool(t, s, "map_addBranch", nil)

		assert.True(t, isErr)
		assert.Equal(t, "ReferenceError: No branch selected", text)
	})

	t.Run("Number Arguments", func(t *testing.T) {
		s := newTestServer(memory.NewModel(), memory.NewModel())

		text, isErr := callTool(t, s, "vym_selectMap", map[string]any{"n": float64(1)})
		require.False(t, isErr, text)

		text, isErr = callTool(t, s, "vym_selectMap", map[string]any{"n": float64(5)})
		assert.True(t, isErr)
		assert.Equal(t, "RangeError: Map '5' not available.", text)
	})

	t.Run("No Map Opened", func(t *testing.T) {
		s := newTestServer()

		text, isErr := callTool(t, s, "map_addBranch", nil)

		assert.True(t, isErr)
		assert.Equal(t, "ReferenceError: No map opened", text)
	})
}
