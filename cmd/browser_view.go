package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"casccopy/internal/notify"
)

// Color palette for consistent theming
var (
	// Primary colors
	primaryBlue   = lipgloss.Color("39")  // Headers
	primaryGreen  = lipgloss.Color("82")  // Success notifications
	primaryYellow = lipgloss.Color("220") // Loading, key hints
	primaryRed    = lipgloss.Color("196") // Errors

	// Secondary colors
	secondaryGray = lipgloss.Color("244") // Metadata text
	lightGray     = lipgloss.Color("248") // Help descriptions
	darkGray      = lipgloss.Color("240") // Borders
	footerGray    = lipgloss.Color("241") // Footer text

	// Accent colors
	accentCyan = lipgloss.Color("86") // Source and container names

	// Background colors
	selectedBg = lipgloss.Color("62")  // Selected item background
	selectedFg = lipgloss.Color("230") // Selected item foreground
)

func (m *browserModel) renderLoading() string {
	loadingStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(primaryBlue).
		Bold(true)

	return loadingStyle.Render(fmt.Sprintf("🔄 Loading %s...", m.source))
}

func (m *browserModel) renderTriggerList() string {
	var content strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryBlue).
		Padding(0, 1).
		MarginBottom(1)

	sourceStyle := lipgloss.NewStyle().Foreground(accentCyan)
	countStyle := lipgloss.NewStyle().Foreground(secondaryGray)

	headerText := fmt.Sprintf("📋 %s #%s %s",
		sourceStyle.Render(m.source),
		m.container.ID(),
		countStyle.Render(fmt.Sprintf("(%d files)", len(m.triggers))))
	content.WriteString(headerStyle.Render(headerText))
	content.WriteString("\n\n")

	if len(m.triggers) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(secondaryGray).
			Italic(true).
			Padding(2, 4)
		content.WriteString(emptyStyle.Render("No copy triggers found in this table"))
	} else {
		content.WriteString(m.tableModel.View())
	}

	if status := m.renderStatus(); status != "" {
		content.WriteString("\n")
		content.WriteString(status)
	}

	content.WriteString("\n")
	footerStyle := lipgloss.NewStyle().
		Foreground(footerGray).
		Padding(1, 1).
		MarginTop(1).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(darkGray)

	navKeys := lipgloss.NewStyle().Foreground(primaryBlue).Render("[jk/↑↓]")
	copyKeys := lipgloss.NewStyle().Foreground(primaryGreen).Render("[Enter/yy]")
	reloadKeys := lipgloss.NewStyle().Foreground(accentCyan).Render("[r]")
	helpKeys := lipgloss.NewStyle().Foreground(primaryYellow).Render("[?]")
	quitKeys := lipgloss.NewStyle().Foreground(primaryRed).Render("[q]")

	footer := fmt.Sprintf("⌨️  %s Navigate • %s Copy • %s Reload • %s Help • %s Quit",
		navKeys, copyKeys, reloadKeys, helpKeys, quitKeys)
	content.WriteString(footerStyle.Render(footer))

	return content.String()
}

// renderStatus renders the current notification, colored by severity
func (m *browserModel) renderStatus() string {
	if m.statusMessage == "" {
		return ""
	}

	color, icon := primaryGreen, "✓"
	if m.statusSeverity == notify.SeverityError {
		color, icon = primaryRed, "✗"
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Padding(0, 1).
		MarginTop(1).
		Background(lipgloss.Color("237")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color)
	return statusStyle.Render(fmt.Sprintf("%s %s", icon, m.statusMessage))
}

func (m *browserModel) renderError() string {
	errorStyle := lipgloss.NewStyle().
		Foreground(primaryRed).
		Bold(true).
		Padding(2, 4).
		Margin(2, 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryRed).
		Background(lipgloss.Color("237"))

	reloadKey := lipgloss.NewStyle().Foreground(primaryYellow).Bold(true).Render("[r]")
	quitKey := lipgloss.NewStyle().Foreground(primaryYellow).Bold(true).Render("[q]")
	errorText := fmt.Sprintf("❌ Error: %s\n\nPress %s to retry or %s to quit", m.err.Error(), reloadKey, quitKey)

	return errorStyle.Render(errorText)
}

func (m *browserModel) renderHelp() string {
	var helpContent strings.Builder

	helpStyle := lipgloss.NewStyle().
		Padding(2, 4).
		Margin(2, 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryBlue).
		Background(lipgloss.Color("235")).
		Width(m.width - 16)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryBlue).
		Align(lipgloss.Center).
		Width(m.width - 24)

	helpContent.WriteString(titleStyle.Render("🆘 casccopy Help"))
	helpContent.WriteString("\n\n")

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryGreen).
		MarginBottom(1)
	helpContent.WriteString(sectionStyle.Render("Files:"))
	helpContent.WriteString("\n")
	helpContent.WriteString(renderShortcuts(primaryYellow, [][]string{
		{"jk, ↑↓", "Navigate files"},
		{"gg", "Jump to top"},
		{"G", "Jump to bottom"},
		{"Enter, yy", "Copy file content to the clipboard"},
		{"r", "Reload the page"},
	}))

	helpContent.WriteString("\n")
	universalStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentCyan).
		MarginTop(1)
	helpContent.WriteString(universalStyle.Render("Universal Commands:"))
	helpContent.WriteString("\n")
	helpContent.WriteString(renderShortcuts(primaryRed, [][]string{
		{"?", "Toggle this help"},
		{"q, Ctrl+C", "Quit application"},
		{"Esc", "Close help"},
	}))

	helpContent.WriteString("\n\n")
	footerStyle := lipgloss.NewStyle().
		Foreground(secondaryGray).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width - 24)
	helpContent.WriteString(footerStyle.Render("Press ? or Esc to close help"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		helpStyle.Render(helpContent.String()))
}

func renderShortcuts(keyColor lipgloss.Color, shortcuts [][]string) string {
	var content strings.Builder

	keyStyle := lipgloss.NewStyle().Foreground(keyColor).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lightGray)
	for _, shortcut := range shortcuts {
		content.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", shortcut[0])),
			descStyle.Render(shortcut[1])))
	}

	return content.String()
}
