package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/scenecompanion/internal/catalog"
	"github.com/jask/scenecompanion/internal/navigator"
)

const popupWidth = 58

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	width := max(1, a.width)
	bodyHeight := max(1, a.height-2)

	body := strings.Join(canvasRows(a.renderPlayer(width), width, bodyHeight), "\n")
	if popup := a.renderCompanion(); popup != "" {
		body = composeOverlay(body, popupStyle.Render(popup), width, bodyHeight)
	}
	return appStyle.Render(strings.Join([]string{
		body,
		a.renderStatusBar(width),
		a.renderFooter(width),
	}, "\n"))
}

func (a *App) renderPlayer(width int) string {
	state := "▶ Playing"
	if a.player.Paused() {
		state = "⏸ Paused"
	}
	inner := max(10, width-4)
	frame := frameStyle.Width(inner).Height(max(3, a.height/2)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(a.player.Title())

	return strings.Join([]string{
		titleStyle.Render(a.player.Title()) + "  " + mutedStyle.Render(state),
		frame,
		a.renderProgress(inner),
	}, "\n")
}

func (a *App) renderProgress(width int) string {
	times := fmt.Sprintf(" %s / %s", formatClock(a.player.Position()), formatClock(a.player.Duration()))
	barWidth := max(1, width-ansi.StringWidth(times))
	done := int(a.player.Progress() * float64(barWidth))
	done = min(max(done, 0), barWidth)
	return progressDone.Render(strings.Repeat("━", done)) +
		progressLeft.Render(strings.Repeat("─", barWidth-done)) +
		mutedStyle.Render(times)
}

func formatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func (a *App) renderCompanion() string {
	v := a.nav.CurrentView()
	var s string
	switch v.Kind {
	case navigator.KindRoot:
		s = a.renderRoot(v.Root)
	case navigator.KindEntity:
		s = a.renderEntity(v.Entity)
	case navigator.KindAction:
		s = a.renderAction(v.Action)
	default:
		return ""
	}
	return lipgloss.NewStyle().Width(popupWidth).Render(s)
}

func (a *App) renderRoot(v *navigator.RootView) string {
	badge := voiceOff.Render("🎤 off")
	if v.VoiceMode {
		badge = voiceOnStyle.Render("🎤 on")
	}
	lines := []string{
		titleStyle.Render("Scene Companion") + "  " + badge,
		"",
		headingStyle.Render("More about:"),
		mutedStyle.Render("Explore what's on screen"),
	}
	if v.VoiceHint != "" {
		lines = append(lines, "", hintStyle.Render(v.VoiceHint))
	}
	if a.listening {
		lines = append(lines, "", a.input.View())
	}
	lines = append(lines, "")
	for i, t := range v.Topics {
		lines = append(lines, a.option(i, t.Icon+" "+t.Title, t.Summary))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderEntity(v *navigator.EntityView) string {
	lines := []string{
		mutedStyle.Render("← Back to Scene Companion"),
		"",
		titleStyle.Render(v.Icon + " " + v.Title),
		"",
		headingStyle.Render("Information"),
		v.Info,
		"",
		headingStyle.Render("Next Best Actions"),
	}
	for i, act := range v.Actions {
		glyph := catalog.Present(act.Type).Glyph
		lines = append(lines, a.option(i, glyph+" "+act.Label, act.Description))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderAction(v *navigator.ActionView) string {
	lines := []string{
		mutedStyle.Render("← Back to " + v.TopicTitle),
		"",
		titleStyle.Render(v.Label) + "  " + badgeStyle.Render(v.TopicTitle),
		v.Description,
		"",
		headingStyle.Render("Available Options"),
	}
	if len(v.Items) == 0 {
		lines = append(lines, mutedStyle.Render("No options available"))
	}
	verb := catalog.Present(v.Type).Verb
	for i, item := range v.Items {
		title := item.Title + "  " + verbStyle.Render("["+verb+"]")
		lines = append(lines, a.option(i, title, item.Description))
	}
	return strings.Join(lines, "\n")
}

func (a *App) option(i int, title, desc string) string {
	prefix := "  "
	if i == a.cursor {
		prefix = cursorStyle.Render("› ")
		title = cursorStyle.Render(title)
	}
	line := prefix + title
	if desc != "" {
		line += "\n    " + mutedStyle.Render(desc)
	}
	return line
}

func (a *App) renderStatusBar(width int) string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	if a.session != "" {
		msg = "[" + shortSession(a.session) + "] " + msg
	}
	if a.statusErr {
		return renderBar(statusErrBarStyle, width, msg, colorSurface)
	}
	return renderBar(statusBarStyle, width, msg, colorSurface)
}

// shortSession keeps the tail of id, where uuids and sequential ids differ.
func shortSession(id string) string {
	if r := []rune(id); len(r) > 8 {
		return string(r[len(r)-8:])
	}
	return id
}

func (a *App) renderFooter(width int) string {
	bindings := a.keys.BindingsForScope(a.scope())
	space := footerStyle.Render(" ")
	sep := footerStyle.Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
		h := kb.Help()
		parts = append(parts, keyStyle.Render(h.Key)+space+helpDescStyle.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = helpDescStyle.Render("No shortcuts")
	}
	return renderBar(footerStyle, width, line, colorMantle)
}

func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.Background(bg).Width(width).MaxWidth(width).Render(line)
}
