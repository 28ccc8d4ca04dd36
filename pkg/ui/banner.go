package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerTitle = "SYSTEM MONITOR TOOL"

var (
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("121"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

// Banner renders the title block shown at the top of every frame.
func Banner() string {
	var b strings.Builder
	rule := strings.Repeat("=", 30)
	pad := strings.Repeat(" ", (len(rule)-len(bannerTitle))/2)

	b.WriteString(ruleStyle.Render(rule) + "\n")
	b.WriteString(pad + titleStyle.Render(bannerTitle) + "\n")
	b.WriteString(ruleStyle.Render(rule) + "\n")
	return b.String()
}
