package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/mj1618/wintitle/internal/model"
	"gopkg.in/yaml.v3"
)

// captureStdout runs fn and returns what it wrote to os.Stdout.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func sampleList() ListResult {
	return ListResult{
		TS: 1707500000,
		Windows: []model.Window{
			{Handle: 0x20304, Title: "Inbox - Mail", Source: model.SourceAccessibility, Class: "Chrome_WidgetWin_1", PID: 4242, Visible: true},
		},
	}
}

func TestPrintYAML(t *testing.T) {
	output := captureStdout(t, func() error { return PrintYAML(sampleList()) })

	// YAML output should be multi-line
	if strings.Count(output, "\n") <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", output)
	}
	if !strings.Contains(output, "0x20304") {
		t.Errorf("handle should render in hex, got:\n%s", output)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	windows, ok := decoded["windows"].([]interface{})
	if !ok || len(windows) != 1 {
		t.Fatalf("windows: got %v, want 1 entry", decoded["windows"])
	}
	w := windows[0].(map[string]interface{})
	if w["title"] != "Inbox - Mail" {
		t.Errorf("title: got %v, want %q", w["title"], "Inbox - Mail")
	}
	if w["source"] != "accessibility" {
		t.Errorf("source: got %v, want %q", w["source"], "accessibility")
	}
}

func TestPrintJSON_SingleLine(t *testing.T) {
	output := captureStdout(t, func() error { return PrintJSON(sampleList()) })

	if strings.Count(output, "\n") != 1 {
		t.Errorf("compact JSON should be one line, got:\n%s", output)
	}
	if !strings.Contains(output, `"handle":"0x20304"`) {
		t.Errorf("handle should render as hex string, got:\n%s", output)
	}
}

func TestPrint_UsesOutputFormat(t *testing.T) {
	origFormat, origPretty := OutputFormat, PrettyOutput
	defer func() { OutputFormat, PrettyOutput = origFormat, origPretty }()

	OutputFormat = FormatJSON
	PrettyOutput = true
	output := captureStdout(t, func() error { return Print(sampleList()) })
	if !strings.Contains(output, "\n  \"windows\"") {
		t.Errorf("pretty JSON should be indented, got:\n%s", output)
	}

	OutputFormat = Format("xml")
	if err := Print(sampleList()); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTitleResult_Inline(t *testing.T) {
	result := TitleResult{
		Found:  true,
		Window: model.Window{Handle: 0x10, Title: "Untitled - Notepad", Source: model.SourceDirect},
	}

	data, err := yaml.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m["found"] != true || m["title"] != "Untitled - Notepad" || m["source"] != "direct" {
		t.Errorf("unexpected YAML: %s", data)
	}

	js, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(js), `"found":true`) || !strings.Contains(string(js), `"title":"Untitled - Notepad"`) {
		t.Errorf("unexpected JSON: %s", js)
	}
}

func TestWindow_OmitEmpty(t *testing.T) {
	data, err := yaml.Marshal(model.Window{Handle: 0x1})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"source", "class", "pid", "visible"} {
		if _, ok := m[key]; ok {
			t.Errorf("empty %s should be omitted", key)
		}
	}
	// Title is always present, even when empty
	if _, ok := m["title"]; !ok {
		t.Error("title should always be present")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"", "yaml", "json"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("agent"); err == nil {
		t.Error("ParseFormat(\"agent\") should fail")
	}
}
