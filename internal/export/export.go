// Package export turns one transcript into readable markdown. It is the
// default consumer of an interactive selection: the controller hands back a
// file path and this decides what to do with it.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sytelus/claude-sessions/internal/transcript"
)

type Options struct {
	IncludeTools    bool
	IncludeThinking bool
}

// BuildMarkdown renders messages as a markdown transcript with a small
// metadata header.
func BuildMarkdown(conversationID string, messages []transcript.Message, opts Options, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Claude session " + conversationID + "\n\n")
	b.WriteString("Extracted: " + now.UTC().Format(time.RFC3339) + "\n\n")

	for _, m := range messages {
		switch m.Kind {
		case transcript.KindUser:
			writeSection(&b, "## You", m, m.Text)
		case transcript.KindAssistant:
			if opts.IncludeThinking && strings.TrimSpace(m.Thinking) != "" {
				b.WriteString("## Claude (thinking)\n\n")
				b.WriteString("```text\n" + strings.TrimSpace(m.Thinking) + "\n```\n\n")
			}
			if strings.TrimSpace(m.Text) != "" {
				writeSection(&b, "## Claude", m, m.Text)
			}
			if opts.IncludeTools {
				for _, call := range m.ToolCalls {
					writeToolBlock(&b, "## Tool ("+call.Name+")", call.Input)
				}
			}
		case transcript.KindToolUse:
			if opts.IncludeTools {
				writeToolBlock(&b, "## Tool ("+m.ToolName+")", m.Text)
			}
		case transcript.KindToolResult:
			if !opts.IncludeTools {
				continue
			}
			body := m.Output
			title := "## Tool result"
			if m.Error != "" {
				body = m.Error
				title = "## Tool result (error)"
			}
			writeToolBlock(&b, title, body)
		}
	}
	return strings.TrimSpace(b.String()) + "\n"
}

func writeSection(b *strings.Builder, header string, m transcript.Message, body string) {
	if m.HasTime {
		header += " (" + m.Timestamp.Format("2006-01-02 15:04") + ")"
	}
	b.WriteString(header + "\n\n")
	b.WriteString(strings.TrimSpace(body) + "\n\n")
}

func writeToolBlock(b *strings.Builder, title, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	b.WriteString(title + "\n\n")
	b.WriteString("```text\n" + body + "\n```\n\n")
}

// Extract reads a transcript file and writes <conversation-id>.md under
// outDir, returning the written path.
func Extract(jsonlPath, outDir string, opts Options) (string, error) {
	messages, err := transcript.ReadFile(jsonlPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	id := transcript.ConversationID(jsonlPath)
	path := filepath.Join(outDir, id+".md")
	md := BuildMarkdown(id, messages, opts, time.Now())
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
