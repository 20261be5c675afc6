package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/stoneinhat/dotfield/internal/field"
)

const historyCapacity = 600

// energyLog is the scene observer behind the stats chart.
type energyLog struct {
	values []float64
}

func (e *energyLog) OnFrame(f *field.Field) {
	e.values = append(e.values, f.Energy())
	if len(e.values) > historyCapacity {
		e.values = e.values[1:]
	}
}

func (e *energyLog) last() float64 {
	if len(e.values) == 0 {
		return 0
	}
	return e.values[len(e.values)-1]
}

func (a *App) hudLayer() layer {
	th := CurrentTheme
	in := a.scene.Inputs()
	f := a.scene.Field()

	var s strings.Builder
	if len(a.energy.values) > 1 {
		chart := asciigraph.Plot(a.energy.values, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(lipgloss.NewStyle().Foreground(th.Secondary).Render(chart) + "\n\n")
	}
	metric := func(label, value string) {
		s.WriteString(MetricLabel.Width(12).Render(label) + MetricValue.Render(value) + "\n")
	}
	metric("Frames", fmt.Sprintf("%d", a.scene.Frames()))
	metric("Particles", fmt.Sprintf("%d", f.Len()))
	metric("Energy", fmt.Sprintf("%.3f", a.energy.last()))
	metric("Mode", f.Mode().String())
	metric("Radius", fmt.Sprintf("%.0f", in.InteractionRadius))
	if r, ok := f.Tracked(); ok {
		metric("Host", fmt.Sprintf("%.0fx%.0f @ %.0f,%.0f", r.Width, r.Height, r.Left, r.Top))
	}
	source := a.scene.Container()
	if source == "" {
		source = "window"
	}
	metric("Scroll", fmt.Sprintf("%s %+.2f", source, in.ScrollImpulse))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Muted).
		Padding(0, 1).
		Render(strings.TrimRight(s.String(), "\n"))
	return boxLayer(box, 1, 0)
}

var helpText = `KEYBOARD SHORTCUTS

Tab        switch portfolio / terminal
Shift+Tab  minimize / restore window
Wheel      scroll the window contents
i          toggle pointer interaction
+ / -      interaction radius
] / [      ball count
t          cycle themes
g          start / stop GIF recording
s          save an SVG snapshot
e          stats overlay
?          this help
q          quit

In the terminal, Ctrl+T themes, Ctrl+E
stats and Esc cancels a message.`

func (a *App) helpLayer() layer {
	th := CurrentTheme
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(th.Accent).
		Foreground(th.Text).
		Padding(0, 2).
		Render(helpText)
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	return boxLayer(box, (a.cols-w)/2, (a.rows-h)/2)
}

func boxLayer(box string, x, y int) layer {
	lines := strings.Split(box, "\n")
	return layer{x: max(x, 0), y: max(y, 0), w: lipgloss.Width(box), lines: lines}
}
