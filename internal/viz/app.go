package viz

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stoneinhat/dotfield/internal/config"
	"github.com/stoneinhat/dotfield/internal/contact"
	"github.com/stoneinhat/dotfield/internal/export"
	"github.com/stoneinhat/dotfield/internal/field"
	"github.com/stoneinhat/dotfield/internal/portfolio"
	"github.com/stoneinhat/dotfield/internal/scene"
	"github.com/stoneinhat/dotfield/internal/terminal"
)

const (
	radiusStep  = 10.0
	ballStep    = config.BallStep
	wheelLines  = 3
	sendTimeout = 20 * time.Second
)

// View is the window's content.
type View uint8

const (
	PortfolioView View = iota
	TerminalView
)

func (v View) String() string {
	if v == TerminalView {
		return "terminal"
	}
	return "portfolio"
}

type TickMsg time.Time

type deliveredMsg struct{ err error }

type Options struct {
	Scene     scene.Options
	FPS       int
	Theme     string
	Portfolio *portfolio.Data
	// Client relays terminal messages. Nil makes every send fail as
	// unconfigured.
	Client  *contact.Client
	GIFPath string
	SVGPath string
}

// App is the terminal surface: a braille canvas of particles behind a
// window holding the portfolio or the terminal.
type App struct {
	opts     Options
	interval time.Duration

	scene   *scene.Scene
	canvas  *Canvas
	surface *Surface
	window  *Window

	data    *portfolio.Data
	session *terminal.Session
	content pane
	term    pane
	view    View

	// windowScroll is the scroll offset reported while no pane is shown.
	windowScroll float64

	energy    energyLog
	rec       *recorder
	recording bool
	hud       bool
	help      bool
	status    string

	cols, rows int
	textWidth  int
	ticks      int
}

func NewApp(opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = config.DefaultFPS
	}
	if opts.Portfolio == nil {
		opts.Portfolio = portfolio.Default()
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "dotfield.gif"
	}
	if opts.SVGPath == "" {
		opts.SVGPath = "dotfield.svg"
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}

	a := &App{
		opts:      opts,
		interval:  time.Second / time.Duration(opts.FPS),
		canvas:    NewCanvas(0, 0),
		window:    NewWindow(opts.FPS),
		data:      opts.Portfolio,
		session:   terminal.New(opts.Portfolio),
		content:   pane{id: ContentContainer},
		term:      pane{id: TerminalContainer, follow: true},
		rec:       newRecorder(opts.FPS),
		textWidth: 72,
	}
	a.surface = NewSurface(a.canvas)
	a.scene = scene.Mount(a.surface, a.window, opts.Scene)
	a.scene.AddObserver(&a.energy)
	a.scene.OnDispose(a.stopRecording)

	if opts.Scene.Mode == field.Bordered {
		a.view = TerminalView
	}
	a.window.SetMinimized(opts.Scene.Minimized)
	if a.window.Minimized() {
		a.scene.ContainerChanged(scene.WindowSource, 0)
	} else {
		a.scene.ContainerChanged(a.activePane().id, 0)
	}
	return a
}

func (a *App) Scene() *scene.Scene { return a.scene }

func (a *App) Init() tea.Cmd { return a.tick() }

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return a, a.key(msg)
	case tea.MouseMsg:
		a.mouse(msg)
	case tea.BlurMsg:
		a.scene.PointerLeave()
	case deliveredMsg:
		if msg.err != nil {
			log.Printf("contact: %v", msg.err)
		}
		a.session.Delivered(msg.err)
		a.refreshTerminal()
	case TickMsg:
		if a.scene.Closed() {
			return a, nil
		}
		a.window.Step()
		if a.scene.Frame() && a.recording {
			a.rec.Capture(a.canvas, CurrentTheme)
		}
		a.ticks++
		if a.session.Flow() == terminal.Submitting {
			a.refreshTerminal()
		}
		return a, a.tick()
	}
	return a, nil
}

// resize keeps the bottom row for the status line.
func (a *App) resize(cols, rows int) {
	a.cols, a.rows = max(cols, 0), max(rows-1, 0)
	a.canvas.Resize(a.cols, a.rows)
	a.window.Resize(a.cols, a.rows)
	a.scene.Resize(Viewport(a.cols, a.rows))
	a.layout()
}

// layout rewraps both panes to the restored window size.
func (a *App) layout() {
	full := a.window.Full()
	w, h := max(full.W-4, 1), max(full.H-3, 0)
	a.textWidth = w

	a.session.Resize(w)
	a.content.SetHeight(h)
	a.content.SetLines(a.portfolioLines(w))
	a.term.SetHeight(h)
	a.refreshTerminal()
}

// refreshTerminal re-renders the scrollback. An auto-scroll to the bottom
// counts as a scroll of the terminal container.
func (a *App) refreshTerminal() {
	before := a.term.Pixels()
	a.term.SetLines(a.terminalLines())
	if a.term.Pixels() != before && a.view == TerminalView && !a.window.Minimized() {
		a.scene.Scroll(a.term.id, a.term.Pixels())
	}
}

func (a *App) activePane() *pane {
	if a.view == TerminalView {
		return &a.term
	}
	return &a.content
}

func (a *App) typing() bool {
	return a.view == TerminalView && !a.window.Minimized() && !a.help
}

func (a *App) key(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return a.quit()
	case "tab":
		a.toggleView()
		return nil
	case "shift+tab":
		a.toggleMinimize()
		return nil
	case "pgup":
		a.scroll(-a.activePane().height)
		return nil
	case "pgdown":
		a.scroll(a.activePane().height)
		return nil
	}
	if a.typing() {
		return a.typeKey(msg)
	}

	switch msg.String() {
	case "q":
		return a.quit()
	case "esc":
		a.help = false
	case "m":
		a.toggleMinimize()
	case "i":
		a.scene.SetInteractive(!a.scene.Inputs().Interactive)
	case "+", "=":
		a.adjustRadius(radiusStep)
	case "-", "_":
		a.adjustRadius(-radiusStep)
	case "]":
		a.adjustBalls(ballStep)
	case "[":
		a.adjustBalls(-ballStep)
	case "up", "k":
		a.scroll(-1)
	case "down", "j":
		a.scroll(1)
	case "t":
		a.cycleTheme()
	case "g":
		a.toggleRecording()
	case "s":
		a.snapshot()
	case "e":
		a.hud = !a.hud
	case "?":
		a.help = !a.help
	}
	return nil
}

func (a *App) typeKey(msg tea.KeyMsg) tea.Cmd {
	defer a.refreshTerminal()

	switch msg.Type {
	case tea.KeyRunes:
		a.session.Type(string(msg.Runes))
		return nil
	case tea.KeySpace:
		a.session.Type(" ")
		return nil
	}

	switch msg.String() {
	case "enter":
		res := a.session.Enter()
		switch res.Action {
		case terminal.Back:
			a.setView(PortfolioView)
		case terminal.Submit:
			return a.send(res.Message)
		}
	case "backspace":
		a.session.Backspace()
	case "esc":
		a.session.Escape()
	case "up":
		a.session.HistoryUp()
	case "down":
		a.session.HistoryDown()
	case "ctrl+t":
		a.cycleTheme()
	case "ctrl+e":
		a.hud = !a.hud
	}
	return nil
}

func (a *App) send(msg string) tea.Cmd {
	client := a.opts.Client
	return func() tea.Msg {
		if client == nil {
			return deliveredMsg{err: contact.ErrNotConfigured}
		}
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		return deliveredMsg{err: client.Send(ctx, msg)}
	}
}

func (a *App) mouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.scroll(-wheelLines)
		return
	case tea.MouseButtonWheelDown:
		a.scroll(wheelLines)
		return
	}

	a.scene.PointerMove(float64(msg.X*2+1), float64(msg.Y*4+2))
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	switch a.window.Hit(msg.X, msg.Y) {
	case CloseButton:
		a.toggleView()
	case MinimizeButton:
		a.toggleMinimize()
	}
}

// scroll moves the visible pane, or the window itself while minimized, and
// reports the new offset to the scene.
func (a *App) scroll(lines int) {
	if a.window.Minimized() {
		a.windowScroll = max(a.windowScroll+float64(lines*lineHeight), 0)
		a.scene.Scroll(scene.WindowSource, a.windowScroll)
		return
	}
	p := a.activePane()
	if p.ScrollBy(lines) {
		a.scene.Scroll(p.id, p.Pixels())
	}
}

func (a *App) toggleView() {
	if a.view == PortfolioView {
		a.setView(TerminalView)
	} else {
		a.setView(PortfolioView)
	}
}

// setView swaps the window content. The terminal lines particles up around
// the window; the portfolio lets them drift home.
func (a *App) setView(v View) {
	a.view = v
	if v == TerminalView {
		a.scene.SetMode(field.Bordered)
	} else {
		a.scene.SetMode(field.Ambient)
	}
	if !a.window.Minimized() {
		p := a.activePane()
		a.scene.ContainerChanged(p.id, p.Pixels())
	}
}

func (a *App) toggleMinimize() {
	on := !a.window.Minimized()
	a.window.SetMinimized(on)
	a.scene.SetMinimized(on)
	if on {
		a.scene.ContainerChanged(scene.WindowSource, a.windowScroll)
		return
	}
	p := a.activePane()
	a.scene.ContainerChanged(p.id, p.Pixels())
}

func (a *App) adjustRadius(delta float64) {
	a.scene.SetInteractionRadius(config.ClampRadius(a.scene.Inputs().InteractionRadius + delta))
}

func (a *App) adjustBalls(delta int) {
	a.scene.SetBallCount(config.ClampBalls(a.scene.Inputs().BallCount + delta))
}

func (a *App) cycleTheme() {
	a.status = "theme " + NextTheme()
	a.layout()
}

func (a *App) toggleRecording() {
	if a.recording {
		a.stopRecording()
		return
	}
	a.recording = true
	a.status = "recording"
}

// stopRecording saves whatever was captured. It also runs when the scene
// is disposed.
func (a *App) stopRecording() {
	if !a.recording {
		return
	}
	a.recording = false
	if err := a.rec.Save(a.opts.GIFPath); err != nil {
		log.Printf("gif: %v", err)
		a.status = "gif failed"
		return
	}
	a.status = "saved " + a.opts.GIFPath
}

func (a *App) snapshot() {
	th := CurrentTheme
	st := export.Style{Background: string(th.Background), Outline: string(th.Muted)}
	for i, d := range th.Dots {
		st.Dots[i] = string(d)
	}
	if err := os.WriteFile(a.opts.SVGPath, []byte(export.FieldToSVG(a.scene.Field(), st)), 0644); err != nil {
		log.Printf("svg: %v", err)
		a.status = "svg failed"
		return
	}
	a.status = fmt.Sprintf("saved %s", a.opts.SVGPath)
}

func (a *App) quit() tea.Cmd {
	a.scene.Close()
	return tea.Quit
}

func (a *App) View() string {
	if a.cols == 0 || a.rows == 0 {
		return ""
	}
	layers := []layer{a.windowLayer()}
	if a.hud {
		layers = append(layers, a.hudLayer())
	}
	if a.help {
		layers = append(layers, a.helpLayer())
	}
	return compose(a.canvas, CurrentTheme, a.rows, layers) + "\n" + a.statusLine()
}

// Run starts the terminal surface and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
