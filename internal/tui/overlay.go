package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// composeOverlay centers card over the player pane and fades every base row,
// so the paused frame stays visible but recedes behind the companion.
func composeOverlay(base, card string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := canvasRows(base, width, height)
	for i, row := range rows {
		rows[i] = backdropStyle.Render(ansi.Strip(row))
	}

	cardRows := strings.Split(card, "\n")
	cardWidth := widest(cardRows)
	left := max(0, (width-cardWidth)/2)
	top := max(0, (height-len(cardRows))/2)
	for i, line := range cardRows {
		r := top + i
		if r >= height {
			break
		}
		rows[r] = splice(rows[r], line, left, cardWidth, width)
	}
	return strings.Join(rows, "\n")
}

// splice writes line into columns [x, x+w) of row.
func splice(row, line string, x, w, width int) string {
	head := padRight(ansi.Truncate(row, x, ""), x)
	tail := ansi.TruncateLeft(row, x+w, "")
	return ansi.Truncate(head+padRight(line, w)+tail, width, "")
}

// canvasRows cuts or extends s to exactly height rows of width columns.
func canvasRows(s string, width, height int) []string {
	rows := strings.Split(s, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i := range rows {
		rows[i] = padRight(rows[i], width)
	}
	return rows
}

func widest(rows []string) int {
	w := 0
	for _, r := range rows {
		w = max(w, ansi.StringWidth(r))
	}
	return w
}

func padRight(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
