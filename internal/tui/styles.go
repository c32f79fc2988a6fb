package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorMantle  lipgloss.Color = "#181825"
	colorSurface lipgloss.Color = "#313244"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorPeach   lipgloss.Color = "#fab387"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	backdropStyle = lipgloss.NewStyle().Foreground(colorBorder)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Foreground(colorMuted)

	titleStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	badgeStyle   = lipgloss.NewStyle().Background(colorSurface).Foreground(colorText).Padding(0, 1)
	verbStyle    = lipgloss.NewStyle().Foreground(colorPeach)
	voiceOnStyle = lipgloss.NewStyle().Background(colorAccent).Foreground(colorMantle).Padding(0, 1)
	voiceOff     = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	hintStyle    = lipgloss.NewStyle().Background(colorSurface).Padding(0, 1)

	progressDone = lipgloss.NewStyle().Foreground(colorText)
	progressLeft = lipgloss.NewStyle().Foreground(colorBorder)

	statusBarStyle    = lipgloss.NewStyle().Foreground(colorSuccess).Background(colorSurface)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(colorError).Background(colorSurface)
	footerStyle       = lipgloss.NewStyle().Background(colorMantle)
	keyStyle          = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	helpDescStyle     = lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle)
)
