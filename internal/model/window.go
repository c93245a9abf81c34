package model

// Source records which strategy produced a window title.
type Source string

const (
	SourceDirect        Source = "direct"
	SourceAccessibility Source = "accessibility"
)

// Window represents a top-level window and its resolved title.
type Window struct {
	Handle  Handle `yaml:"handle"            json:"handle"`
	Title   string `yaml:"title"             json:"title"`
	Source  Source `yaml:"source,omitempty"  json:"source,omitempty"`
	Class   string `yaml:"class,omitempty"   json:"class,omitempty"`
	PID     int    `yaml:"pid,omitempty"     json:"pid,omitempty"`
	Visible bool   `yaml:"visible,omitempty" json:"visible,omitempty"`
}
