package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var banner = []string{
	" ██████╗ ██████╗ ███████╗ ██████╗ ██████╗ ███████╗",
	"██╔═══██╗██╔══██╗██╔════╝██╔═══██╗██╔══██╗██╔════╝",
	"██║   ██║██████╔╝███████╗██║   ██║██████╔╝███████╗",
	"██║   ██║██╔═══╝ ╚════██║██║   ██║██╔═══╝ ╚════██║",
	"╚██████╔╝██║     ███████║╚██████╔╝██║     ███████║",
	" ╚═════╝ ╚═╝     ╚══════╝ ╚═════╝ ╚═╝     ╚══════╝",
}

// 1Password blue into age green
var (
	bannerFrom, _ = colorful.Hex("#0094f5")
	bannerTo, _   = colorful.Hex("#7cd67c")
)

// logo renders the banner with a diagonal gradient. It runs at print time
// so --no-color and the detected color profile take effect.
func logo() string {
	width := 0
	for _, line := range banner {
		width = max(width, lipgloss.Width(line))
	}
	span := float64(width + 2*len(banner))

	var b strings.Builder
	b.WriteString("\n")
	for row, line := range banner {
		col := 0
		for _, r := range line {
			if r == ' ' {
				b.WriteRune(r)
			} else {
				c := bannerFrom.BlendHcl(bannerTo, float64(col+2*row)/span).Clamped()
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
			}
			col++
		}
		b.WriteString("\n")
	}
	return b.String()
}
