package gui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stoneinhat/dotfield/internal/portfolio"
	"github.com/stoneinhat/dotfield/internal/terminal"
)

type line struct {
	text  string
	color rl.Color
}

func (a *App) Draw() {
	rl.BeginDrawing()
	a.scene.Frame()
	a.drawWindow()
	a.DrawHUD()
	rl.EndDrawing()
}

// columns is how many monospace characters fit across the content area.
func (a *App) columns() int {
	w := rl.MeasureTextEx(a.font, "M", fontSize, 1).X
	if w <= 0 {
		return 72
	}
	return max(int(a.window.content().Width/w), 10)
}

func (a *App) rows() int {
	return max(int(a.window.content().Height)/lineHeight, 1)
}

func (a *App) maxOffset() int {
	return max(len(a.lines())-a.rows(), 0)
}

func (a *App) lines() []line {
	if a.terminal {
		return a.terminalLines()
	}
	var out []line
	for _, l := range a.data.Page(a.columns()) {
		out = append(out, line{l.Text, portfolioColor(l.Style)})
	}
	return out
}

func (a *App) terminalLines() []line {
	cols := a.columns()
	var out []line
	for _, l := range a.session.Lines() {
		for _, part := range strings.Split(ansi.Wrap(l.Text, cols, ""), "\n") {
			out = append(out, line{part, terminalColor(l.Kind)})
		}
	}
	prompt := a.session.Prompt() + " " + a.session.Input() + "_"
	switch a.session.Flow() {
	case terminal.Composing:
		prompt = "message> " + a.session.Input() + "_"
	case terminal.Submitting:
		prompt = "Sending..."
	}
	return append(out, line{prompt, ColAccent})
}

func portfolioColor(s portfolio.Style) rl.Color {
	switch s {
	case portfolio.Heading, portfolio.Accent:
		return ColAccent
	case portfolio.Title:
		return ColTextDim
	case portfolio.Muted:
		return ColBorder
	}
	return ColText
}

func terminalColor(k terminal.Kind) rl.Color {
	switch k {
	case terminal.Echo, terminal.Title:
		return ColTextDim
	case terminal.Heading, terminal.Accent:
		return ColAccent
	case terminal.Muted:
		return ColBorder
	case terminal.Success:
		return ColGreen
	case terminal.Failure:
		return ColRed
	}
	return ColText
}

func (a *App) drawWindow() {
	r := a.window.rect()
	if r.Width < 2 || r.Height < 2 {
		return
	}
	rl.DrawRectangleRounded(r, 0.03, 8, ColWindow)
	rl.DrawRectangleRoundedLinesEx(r, 0.03, 8, 1, ColBorder)

	for i, col := range []rl.Color{ColRed, ColYellow, ColGreen} {
		rl.DrawCircleV(a.window.button(i), buttonRadius, col)
	}

	if a.window.minimized {
		in := a.scene.Inputs()
		a.drawText(fmt.Sprintf("radius %3.0f   balls %4d", in.InteractionRadius, in.BallCount), int(r.X)+84, int(r.Y)+12, 16, ColText)
		return
	}

	title := "portfolio"
	if a.terminal {
		title = "terminal: " + a.session.Prompt()
	}
	a.drawText(title, int(r.X)+84, int(r.Y)+8, 16, ColTextDim)

	c := a.window.content()
	rl.BeginScissorMode(int32(r.X), int32(r.Y)+titleHeight, int32(r.Width), int32(r.Height)-titleHeight)
	lines := a.lines()
	start := min(a.offsets[a.pane()], len(lines))
	y := int(c.Y)
	for _, l := range lines[start:] {
		if y > int(c.Y+c.Height) {
			break
		}
		a.drawText(l.text, int(c.X), y, fontSize, l.color)
		y += lineHeight
	}
	rl.EndScissorMode()
}

func (a *App) DrawHUD() {
	sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, sh-30, 14, ColTextDim)
	hint := "[TAB] VIEW  [SHIFT+TAB] MINIMIZE  [E] STATS  [S] SNAPSHOT  [Q] QUIT"
	if a.status != "" {
		hint = a.status + "   " + hint
	}
	a.drawText(hint, sw-600, sh-30, 14, ColTextDim)
	if a.showHUD {
		a.DrawTelemetry()
	}
}

func (a *App) DrawTelemetry() {
	if len(a.telemetry) < 2 {
		return
	}

	rectX, rectY := 30, rl.GetScreenHeight()-120
	width, height := 400, 60

	minVal, maxVal := a.telemetry[0], a.telemetry[0]
	for _, v := range a.telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, val := range a.telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.2e  n=%d", a.telemetry[len(a.telemetry)-1], a.scene.Field().Len()), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
