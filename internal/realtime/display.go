package realtime

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sytelus/claude-sessions/internal/search"
)

const (
	headerLines    = 4
	previewLength  = 60
	projectLength  = 20
	separatorWidth = 60
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true)
	matchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("220"))
	searchingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)

	highlightMarker = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Display is the thin painting layer for the interactive session. It is not
// part of the core contract; anything that can draw a View can replace it.
type Display struct {
	out         io.Writer
	lastRows    int
	lastVersion uint64
	painted     bool
}

func NewDisplay(out io.Writer) *Display {
	return &Display{out: out}
}

// Reset clears the screen and paints the static header.
func (d *Display) Reset() {
	fmt.Fprint(d.out, "\x1b[2J\x1b[H")
	d.moveTo(1, 1)
	fmt.Fprint(d.out, titleStyle.Render("CLAUDE SESSIONS - LIVE SEARCH"))
	d.moveTo(2, 1)
	fmt.Fprint(d.out, strings.Repeat("=", separatorWidth))
	d.moveTo(3, 1)
	fmt.Fprint(d.out, hintStyle.Render("Type to search · Up/Down select · Enter open · Esc exit"))
	d.moveTo(4, 1)
	fmt.Fprint(d.out, strings.Repeat("-", separatorWidth))
	d.lastRows = 0
	d.painted = false
}

// DrawIfChanged repaints only when the state version moved, so idle ticks do
// not flicker the screen.
func (d *Display) DrawIfChanged(v View) {
	if d.painted && v.Version == d.lastVersion {
		return
	}
	d.Draw(v)
}

func (d *Display) Draw(v View) {
	d.lastVersion = v.Version
	d.painted = true

	shown := v.Results
	if len(shown) > maxDisplayed {
		shown = shown[:maxDisplayed]
	}

	// Clear everything below the header through the previous search box, so a
	// shrinking result list leaves no stale rows behind.
	for i := 0; i <= d.lastRows+4; i++ {
		d.moveTo(headerLines+1+i, 1)
		fmt.Fprint(d.out, "\x1b[2K")
	}

	if len(shown) == 0 {
		d.moveTo(headerLines+1, 1)
		switch {
		case v.Searching && v.Query != "":
			fmt.Fprint(d.out, searchingStyle.Render("Searching…"))
		case v.Query != "":
			fmt.Fprintf(d.out, "No results found for %q", v.Query)
		default:
			fmt.Fprint(d.out, hintStyle.Render("Start typing to search…"))
		}
	}

	for i, r := range shown {
		d.moveTo(headerLines+1+i, 1)
		marker := "  "
		if i == v.Selected {
			marker = selectedStyle.Render("> ")
		}
		fmt.Fprint(d.out, marker+resultLine(r))
	}

	d.lastRows = len(shown)
	d.drawSearchBox(v)
}

func (d *Display) drawSearchBox(v View) {
	row := headerLines + d.lastRows + 3
	d.moveTo(row, 1)
	fmt.Fprint(d.out, "\x1b[2K")
	fmt.Fprint(d.out, strings.Repeat("-", separatorWidth))
	d.moveTo(row+1, 1)
	fmt.Fprint(d.out, "\x1b[2K")
	fmt.Fprintf(d.out, "Search: %s", v.Query)
	// Park the terminal cursor at the logical cursor position.
	d.moveTo(row+1, len("Search: ")+1+v.Cursor)
}

func (d *Display) moveTo(row, col int) {
	fmt.Fprintf(d.out, "\x1b[%d;%dH", row, col)
}

// resultLine renders date | project | preview with the match highlighted.
func resultLine(r search.Result) string {
	date := "          "
	if r.HasTime {
		date = r.Timestamp.Format("2006-01-02")
	}

	project := filepath.Base(filepath.Dir(r.Path))
	project = ansi.Truncate(project, projectLength, "")

	preview := strings.ReplaceAll(r.Context, "\n", " ")
	preview = highlightMarker.ReplaceAllStringFunc(preview, func(marked string) string {
		return matchStyle.Render(strings.Trim(marked, "*"))
	})
	preview = ansi.Truncate(preview, previewLength, "…")

	return fmt.Sprintf("%s | %s | %s", date, project, preview)
}
