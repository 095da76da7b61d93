// Package transcript decodes Claude Code session files: line-delimited JSON
// records holding one conversation turn each. Records come in heterogeneous
// shapes (flat string content vs. arrays of typed blocks); everything is
// normalized at this boundary into a closed set of message kinds so callers
// never branch on raw field lookups.
package transcript

import "time"

type Kind string

const (
	KindUser       Kind = "user"
	KindAssistant  Kind = "assistant"
	KindToolUse    Kind = "tool_use"
	KindToolResult Kind = "tool_result"
)

// Speaker values used by the search layer.
const (
	SpeakerHuman     = "human"
	SpeakerAssistant = "assistant"
)

type ToolCall struct {
	ID    string
	Name  string
	Input string
}

// Message is one normalized conversation turn. Not all fields are populated
// for all kinds; Text is always the flattened searchable content.
type Message struct {
	Kind      Kind
	Speaker   string
	Text      string
	Thinking  string
	ToolCalls []ToolCall
	ToolName  string
	Output    string
	Error     string
	Timestamp time.Time
	HasTime   bool
	Line      int
}

// File is a discovered transcript file. ModTime backs the engine's
// file-level date pre-filter.
type File struct {
	Path    string
	ModTime time.Time
}
