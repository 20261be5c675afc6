package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stoneinhat/dotfield/internal/config"
	"github.com/stoneinhat/dotfield/internal/portfolio"
	"github.com/stoneinhat/dotfield/internal/terminal"
)

// on returns a style in colour fg over the theme background, so text
// drawn inside the window never punches holes through it.
func on(th Theme, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg).Background(th.Background)
}

// pad fits styled s to exactly w cells, filling with background.
func pad(th Theme, s string, w int) string {
	n := ansi.StringWidth(s)
	if n > w {
		return ansi.Truncate(s, w, "")
	}
	return s + on(th, th.Text).Render(strings.Repeat(" ", w-n))
}

func portfolioStyle(th Theme, st portfolio.Style) lipgloss.Style {
	switch st {
	case portfolio.Heading:
		return on(th, th.Primary).Bold(true)
	case portfolio.Title:
		return on(th, th.Secondary).Bold(true)
	case portfolio.Accent:
		return on(th, th.Accent)
	case portfolio.Muted:
		return on(th, th.Muted)
	}
	return on(th, th.Text)
}

func terminalStyle(th Theme, k terminal.Kind) lipgloss.Style {
	switch k {
	case terminal.Echo:
		return on(th, th.Secondary)
	case terminal.Heading:
		return on(th, th.Primary).Bold(true)
	case terminal.Title:
		return on(th, th.Secondary).Bold(true)
	case terminal.Accent:
		return on(th, th.Accent)
	case terminal.Muted:
		return on(th, th.Muted)
	case terminal.Success:
		return on(th, th.Success)
	case terminal.Failure:
		return on(th, th.Error)
	}
	return on(th, th.Text)
}

func (a *App) portfolioLines(width int) []string {
	th := CurrentTheme
	page := a.data.Page(width)
	out := make([]string, len(page))
	for i, l := range page {
		out[i] = portfolioStyle(th, l.Style).Render(l.Text)
	}
	return out
}

func (a *App) terminalLines() []string {
	th := CurrentTheme
	lines := a.session.Lines()
	out := make([]string, 0, len(lines)+1)
	for _, l := range lines {
		st := terminalStyle(th, l.Kind)
		for _, part := range strings.Split(ansi.Wrap(l.Text, a.textWidth, ""), "\n") {
			out = append(out, st.Render(part))
		}
	}
	return append(out, a.promptLine())
}

func (a *App) promptLine() string {
	th := CurrentTheme
	cursor := on(th, th.Accent).Render("█")
	switch a.session.Flow() {
	case terminal.Submitting:
		return on(th, th.Muted).Render(AnimatedSpinner(a.ticks/4) + " Sending...")
	case terminal.Composing:
		return on(th, th.Accent).Render("message> ") + on(th, th.Text).Render(a.session.Input()) + cursor
	}
	return on(th, th.Success).Render(a.session.Prompt()) + " " + on(th, th.Text).Render(a.session.Input()) + cursor
}

func (a *App) windowLayer() layer {
	g := a.window.Geometry()
	if g.W < 2 || g.H < 2 {
		return layer{}
	}
	th := CurrentTheme
	border := on(th, th.Muted)
	inner := g.W - 2

	lines := make([]string, 0, g.H)
	lines = append(lines, border.Render("╭"+strings.Repeat("─", inner)+"╮"))
	row := func(s string) string {
		return border.Render("│") + pad(th, s, inner) + border.Render("│")
	}
	if g.H >= 3 {
		lines = append(lines, row(a.titleBar()))
	}
	body := a.activePane().Visible()
	for i := 0; i < g.H-3; i++ {
		s := ""
		if i < len(body) {
			s = " " + body[i]
		}
		lines = append(lines, row(s))
	}
	lines = append(lines, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return layer{x: g.X, y: g.Y, w: g.W, lines: lines}
}

// titleBar puts the three buttons at inner columns 1, 3 and 5; Window.Hit
// relies on that placement.
func (a *App) titleBar() string {
	th := CurrentTheme
	bg := on(th, th.Text)
	buttons := bg.Render(" ") + on(th, th.Error).Render("●") + bg.Render(" ") +
		on(th, th.Warning).Render("●") + bg.Render(" ") +
		on(th, th.Success).Render("●") + bg.Render("  ")

	if a.window.Minimized() {
		in := a.scene.Inputs()
		label := on(th, th.Muted)
		return buttons +
			label.Render("radius ") + Slider(in.InteractionRadius, config.MinRadius, config.MaxRadius, 10, th) +
			label.Render(fmt.Sprintf(" %3.0f  balls ", in.InteractionRadius)) +
			Slider(float64(in.BallCount), config.MinBalls, config.MaxBalls, 10, th) +
			label.Render(fmt.Sprintf(" %4d", in.BallCount))
	}
	title := "portfolio"
	if a.view == TerminalView {
		title = "terminal: " + a.session.Prompt()
	}
	return buttons + GradientText(title, th.Primary, th.Secondary)
}

func (a *App) statusLine() string {
	th := CurrentTheme
	in := a.scene.Inputs()
	sep := KeyHint.Render(" · ")

	parts := []string{
		GradientText("dotfield", th.Primary, th.Secondary),
		MetricLabel.Render(a.view.String()),
		MetricLabel.Render("r=") + MetricValue.Render(fmt.Sprintf("%.0f", in.InteractionRadius)),
		MetricLabel.Render("n=") + MetricValue.Render(fmt.Sprintf("%d", in.BallCount)),
	}
	if in.Interactive {
		parts = append(parts, MetricLabel.Render("pointer on"))
	} else {
		parts = append(parts, MetricLabel.Render("pointer off"))
	}
	parts = append(parts, MetricLabel.Render(th.Name))
	if a.recording {
		parts = append(parts, StatusRecording.Render(fmt.Sprintf("● REC %d", a.rec.Len())))
	}
	if a.status != "" {
		parts = append(parts, MetricValue.Render(a.status))
	}

	left := strings.Join(parts, sep)
	right := KeyHint.Render("?: help")
	gap := a.cols - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return ansi.Truncate(left, a.cols, "")
	}
	return left + strings.Repeat(" ", gap) + right
}
