package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/wintitle/internal/model"
	"github.com/mj1618/wintitle/internal/output"
	"github.com/mj1618/wintitle/internal/windowinfo"
	"gopkg.in/yaml.v3"
)

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yaml encode: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleListWindows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	opts := windowinfo.ListOptions{
		All:   boolParam(params, "all", false),
		PID:   intParam(params, "pid", 0),
		Class: stringParam(params, "class", ""),
		Title: stringParam(params, "title", ""),
	}

	if boolParam(params, "refresh", false) {
		s.cache.InvalidateAll()
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	windows, err := s.cache.List(ctx, s.provider, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if windows == nil {
		windows = []model.Window{}
	}
	return toText(windows)
}

func (s *Server) handleWindowTitle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	raw := stringParam(params, "handle", "")
	switch params["handle"].(type) {
	case float64, int:
		raw = fmt.Sprint(intParam(params, "handle", 0))
	}
	h, err := model.ParseHandle(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	var w model.Window
	if boolParam(params, "accessibility_only", false) {
		w = s.provider.AccessibilityTitle(ctx, h)
	} else {
		w = s.provider.Title(ctx, h)
	}
	return toText(output.TitleResult{Found: w.Source != "", Window: w})
}

// stringParam extracts a string parameter from the MCP arguments map.
func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

// intParam extracts an integer parameter; JSON numbers arrive as float64.
func intParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// boolParam extracts a boolean parameter from the MCP arguments map.
func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
