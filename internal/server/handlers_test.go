package server

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/wintitle/internal/model"
	"github.com/mj1618/wintitle/internal/platform"
	"github.com/mj1618/wintitle/internal/title"
	"github.com/mj1618/wintitle/internal/windowinfo"
	"gopkg.in/yaml.v3"
)

type mapReader map[model.Handle]string

func (m mapReader) WindowText(h model.Handle) (string, error) { return m[h], nil }

type mapNode string

func (n mapNode) Name() (string, error) { return string(n), nil }
func (n mapNode) Release()              {}

type mapLookup map[model.Handle]string

func (m mapLookup) Lookup(h model.Handle) (platform.Node, error) {
	name, ok := m[h]
	if !ok {
		return nil, platform.ErrElementUnavailable
	}
	return mapNode(name), nil
}

type sliceLister []model.Window

func (l sliceLister) ListWindows() ([]model.Window, error) {
	return append([]model.Window(nil), l...), nil
}

func newTestServer() *Server {
	direct := mapReader{0x10: "Untitled - Notepad", 0x20: ""}
	lookup := mapLookup{0x20: "Inbox - Mail"}
	lister := sliceLister{
		{Handle: 0x10, Title: "Untitled - Notepad", Class: "Notepad", Visible: true},
		{Handle: 0x20, Title: "", Class: "Chrome_WidgetWin_1", Visible: true},
	}
	provider := windowinfo.New(direct, lister, title.NewResolver(lookup, nil),
		windowinfo.Options{Fallback: true, Timeout: time.Second, Workers: 1}, nil)
	return New(provider, Config{Transport: "stdio"}, nil)
}

func callTool(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("unexpected content type %T", res.Content[0])
		return ""
	}
}

func TestHandleWindowTitle_Direct(t *testing.T) {
	s := newTestServer()
	res, err := s.handleWindowTitle(context.Background(), callTool(map[string]interface{}{"handle": "0x10"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	var got map[string]interface{}
	if err := yaml.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if got["found"] != true || got["title"] != "Untitled - Notepad" || got["source"] != "direct" {
		t.Errorf("unexpected result: %v", got)
	}
}

func TestHandleWindowTitle_Fallback(t *testing.T) {
	s := newTestServer()
	res, _ := s.handleWindowTitle(context.Background(), callTool(map[string]interface{}{"handle": "32"}))

	text := resultText(t, res)
	if !strings.Contains(text, "Inbox - Mail") || !strings.Contains(text, "source: accessibility") {
		t.Errorf("expected accessibility title, got:\n%s", text)
	}
}

func TestHandleWindowTitle_NumericHandle(t *testing.T) {
	s := newTestServer()
	res, _ := s.handleWindowTitle(context.Background(), callTool(map[string]interface{}{"handle": float64(16)}))

	if text := resultText(t, res); !strings.Contains(text, "Untitled - Notepad") {
		t.Errorf("expected direct title, got:\n%s", text)
	}
}

func TestHandleWindowTitle_NullHandle(t *testing.T) {
	s := newTestServer()
	for _, handle := range []interface{}{float64(0), "0"} {
		res, err := s.handleWindowTitle(context.Background(), callTool(map[string]interface{}{"handle": handle}))
		if err != nil {
			t.Fatal(err)
		}
		if res.IsError {
			t.Errorf("handle %#v: unexpected tool error: %s", handle, resultText(t, res))
			continue
		}
		if text := resultText(t, res); !strings.Contains(text, "found: false") {
			t.Errorf("handle %#v: expected not found, got:\n%s", handle, text)
		}
	}
}

func TestHandleWindowTitle_MissingHandle(t *testing.T) {
	s := newTestServer()
	res, _ := s.handleWindowTitle(context.Background(), callTool(map[string]interface{}{}))
	if !res.IsError {
		t.Errorf("expected tool error, got:\n%s", resultText(t, res))
	}
}

func TestHandleWindowTitle_AccessibilityOnly(t *testing.T) {
	s := newTestServer()
	res, _ := s.handleWindowTitle(context.Background(), callTool(map[string]interface{}{
		"handle":             "0x10",
		"accessibility_only": true,
	}))

	// 0x10 has no accessibility name in the fake tree.
	if text := resultText(t, res); !strings.Contains(text, "found: false") {
		t.Errorf("expected not found, got:\n%s", text)
	}
}

func TestHandleWindowTitle_BadHandle(t *testing.T) {
	s := newTestServer()
	res, err := s.handleWindowTitle(context.Background(), callTool(map[string]interface{}{"handle": "hwnd"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Errorf("expected tool error, got:\n%s", resultText(t, res))
	}
}

func TestHandleListWindows(t *testing.T) {
	s := newTestServer()
	res, err := s.handleListWindows(context.Background(), callTool(map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}

	var got []map[string]interface{}
	if err := yaml.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d windows, want 2", len(got))
	}
	if got[1]["title"] != "Inbox - Mail" || got[1]["source"] != "accessibility" {
		t.Errorf("second window not back-filled: %v", got[1])
	}
}

func TestHandleListWindows_Filter(t *testing.T) {
	s := newTestServer()
	res, _ := s.handleListWindows(context.Background(), callTool(map[string]interface{}{"class": "notepad"}))

	var got []map[string]interface{}
	if err := yaml.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0]["class"] != "Notepad" {
		t.Errorf("unexpected filter result: %v", got)
	}
}

func TestParams(t *testing.T) {
	params := map[string]interface{}{"s": "x", "f": float64(3), "i": 4, "b": true}
	if stringParam(params, "s", "") != "x" || stringParam(params, "missing", "d") != "d" {
		t.Error("stringParam")
	}
	if intParam(params, "f", 0) != 3 || intParam(params, "i", 0) != 4 || intParam(params, "s", 9) != 9 {
		t.Error("intParam")
	}
	if !boolParam(params, "b", false) || boolParam(params, "s", false) {
		t.Error("boolParam")
	}
}

func TestHandleListWindows_Refresh(t *testing.T) {
	lister := &countingLister{windows: []model.Window{{Handle: 0x1, Title: "a", Visible: true}}}
	provider := windowinfo.New(nil, lister, nil, windowinfo.Options{}, nil)
	s := New(provider, Config{CacheTTL: time.Minute}, nil)

	s.handleListWindows(context.Background(), callTool(map[string]interface{}{}))
	s.handleListWindows(context.Background(), callTool(map[string]interface{}{}))
	if lister.calls != 1 {
		t.Fatalf("cached listing: got %d lister calls, want 1", lister.calls)
	}

	s.handleListWindows(context.Background(), callTool(map[string]interface{}{"refresh": true}))
	if lister.calls != 2 {
		t.Errorf("refresh: got %d lister calls, want 2", lister.calls)
	}
}
