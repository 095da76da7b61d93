package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const maxLineBytes = 10 * 1024 * 1024

// ParseLine decodes one JSONL record. Malformed JSON, unknown record types
// and records with no usable content all report ok == false; parsing is
// forward compatible and never fails a caller.
func ParseLine(line []byte) (Message, bool) {
	var obj map[string]any
	if err := json.Unmarshal(line, &obj); err != nil {
		return Message{}, false
	}

	var msg Message
	var ok bool
	switch asString(obj["type"]) {
	case "user":
		msg, ok = parseUser(obj)
	case "assistant":
		msg, ok = parseAssistant(obj)
	case "tool_use":
		msg, ok = parseToolUse(obj)
	case "tool_result":
		msg, ok = parseToolResult(obj)
	default:
		return Message{}, false
	}
	if !ok {
		return Message{}, false
	}

	msg.Timestamp, msg.HasTime = ParseTimestamp(asString(obj["timestamp"]))
	return msg, true
}

func parseUser(obj map[string]any) (Message, bool) {
	text := ""
	// Test fixtures and older logs carry content at the top level; real
	// session files nest it under message.content.
	if c, exists := obj["content"]; exists {
		if s, isStr := c.(string); isStr {
			text = s
		}
	}
	if text == "" {
		if m, isMap := obj["message"].(map[string]any); isMap {
			text = ExtractText(m["content"])
		}
	}
	if strings.TrimSpace(text) == "" {
		return Message{}, false
	}
	return Message{Kind: KindUser, Speaker: SpeakerHuman, Text: text}, true
}

func parseAssistant(obj map[string]any) (Message, bool) {
	m, isMap := obj["message"].(map[string]any)
	if !isMap {
		if s, isStr := obj["content"].(string); isStr && strings.TrimSpace(s) != "" {
			return Message{Kind: KindAssistant, Speaker: SpeakerAssistant, Text: s}, true
		}
		return Message{}, false
	}

	var textParts []string
	var thinking string
	var calls []ToolCall

	switch content := m["content"].(type) {
	case string:
		textParts = append(textParts, content)
	case []any:
		for _, item := range content {
			block, isBlock := item.(map[string]any)
			if !isBlock {
				continue
			}
			switch asString(block["type"]) {
			case "text":
				textParts = append(textParts, asString(block["text"]))
			case "thinking":
				thinking = asString(block["thinking"])
			case "tool_use":
				calls = append(calls, ToolCall{
					ID:    asString(block["id"]),
					Name:  asString(block["name"]),
					Input: compactJSON(block["input"]),
				})
			}
		}
	}

	text := strings.TrimSpace(strings.Join(textParts, "\n"))
	if text == "" && thinking == "" && len(calls) == 0 {
		return Message{}, false
	}
	return Message{
		Kind:      KindAssistant,
		Speaker:   SpeakerAssistant,
		Text:      text,
		Thinking:  thinking,
		ToolCalls: calls,
	}, true
}

func parseToolUse(obj map[string]any) (Message, bool) {
	tool, _ := obj["tool"].(map[string]any)
	name := asString(tool["name"])
	if name == "" {
		name = "unknown"
	}
	return Message{
		Kind:     KindToolUse,
		ToolName: name,
		Text:     compactJSON(tool["input"]),
	}, true
}

func parseToolResult(obj map[string]any) (Message, bool) {
	result, _ := obj["result"].(map[string]any)
	return Message{
		Kind:   KindToolResult,
		Output: asString(result["output"]),
		Error:  asString(result["error"]),
	}, true
}

// ReadFile parses an entire transcript file, recording 1-based line offsets.
// Unparsable lines are skipped; only a failure to read the file itself is an
// error.
func ReadFile(path string) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	var messages []Message
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		msg, ok := ParseLine([]byte(line))
		if !ok {
			continue
		}
		msg.Line = lineNum
		messages = append(messages, msg)
	}
	if err := scanner.Err(); err != nil {
		return messages, fmt.Errorf("read transcript: %w", err)
	}
	return messages, nil
}

func compactJSON(v any) string {
	m, isMap := v.(map[string]any)
	if !isMap || len(m) == 0 {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	s := string(b)
	if len(s) > 500 {
		s = s[:497] + "..."
	}
	return s
}
