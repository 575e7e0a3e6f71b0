package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"lyricstag/internal/audiotag"
)

var (
	colorCyan  = lipgloss.Color("#00FFFF")
	colorFg    = lipgloss.Color("#E0E0E0")
	colorMuted = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle = lipgloss.NewStyle().Foreground(colorFg)
)

type tagLine struct {
	key    string
	values []string
}

// formatProperties returns "" for streams TagLib could not measure.
func formatProperties(p audiotag.Properties) string {
	if p.SampleRate == 0 {
		return ""
	}
	length := p.Length.Round(time.Second)
	parts := []string{
		fmt.Sprintf("%d:%02d", int(length.Minutes()), int(length.Seconds())%60),
		fmt.Sprintf("%d Hz", p.SampleRate),
		fmt.Sprintf("%d ch", p.Channels),
	}
	if p.Bitrate > 0 {
		parts = append(parts, fmt.Sprintf("%d kbps", p.Bitrate))
	}
	return strings.Join(parts, " · ")
}

// renderTags lays out one line per value, keys padded to a common column.
// Values are flattened to a single line and cut to width columns. An
// empty info line is skipped.
func renderTags(title, info string, lines []tagLine, width int) string {
	keyW := 0
	for _, l := range lines {
		keyW = max(keyW, lipgloss.Width(l.key))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')
	if info != "" {
		b.WriteString(keyStyle.Render(info))
		b.WriteByte('\n')
	}
	for _, l := range lines {
		for i, v := range l.values {
			key := ""
			if i == 0 {
				key = l.key
			}
			v = strings.Join(strings.Fields(v), " ")
			if width > 0 {
				v = ansi.Truncate(v, max(width-keyW-2, 1), "...")
			}
			b.WriteString(keyStyle.Width(keyW).Render(key))
			b.WriteString("  ")
			b.WriteString(valueStyle.Render(v))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
