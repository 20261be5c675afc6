// Package gui is the desktop surface: the particle field drawn with raylib
// behind a window holding the portfolio or the terminal.
package gui

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stoneinhat/dotfield/internal/config"
	"github.com/stoneinhat/dotfield/internal/contact"
	"github.com/stoneinhat/dotfield/internal/export"
	"github.com/stoneinhat/dotfield/internal/field"
	"github.com/stoneinhat/dotfield/internal/portfolio"
	"github.com/stoneinhat/dotfield/internal/scene"
	"github.com/stoneinhat/dotfield/internal/terminal"
)

const (
	fontSize     = 18
	lineHeight   = 22
	wheelLines   = 3
	maxTelemetry = 240
)

var (
	ColWindow  = rl.NewColor(10, 22, 24, 235)
	ColBorder  = rl.NewColor(65, 69, 53, 255)
	ColText    = rl.NewColor(232, 227, 227, 255)
	ColTextDim = rl.NewColor(97, 137, 133, 255)
	ColAccent  = rl.NewColor(223, 189, 136, 255)
	ColRed     = rl.NewColor(255, 95, 87, 255)
	ColYellow  = rl.NewColor(254, 188, 46, 255)
	ColGreen   = rl.NewColor(40, 200, 64, 255)
)

type Options struct {
	Scene     scene.Options
	FPS       int
	Portfolio *portfolio.Data
	Client    *contact.Client
	SVGPath   string
}

type App struct {
	opts    Options
	scene   *scene.Scene
	surface *surface
	window  *window
	font    rl.Font

	data     *portfolio.Data
	session  *terminal.Session
	terminal bool

	// offsets are scroll positions in lines: portfolio, terminal.
	offsets      [2]int
	windowScroll float64
	delivered    chan error

	telemetry []float64
	showHUD   bool
	status    string
	quit      bool
}

func initWindow(fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "dotfield")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = config.DefaultFPS
	}
	if opts.Portfolio == nil {
		opts.Portfolio = portfolio.Default()
	}
	if opts.SVGPath == "" {
		opts.SVGPath = "dotfield.svg"
	}

	a := &App{
		opts:      opts,
		surface:   newSurface(),
		window:    newWindow(opts.FPS),
		font:      loadFont(),
		data:      opts.Portfolio,
		session:   terminal.New(opts.Portfolio),
		terminal:  opts.Scene.Mode == field.Bordered,
		delivered: make(chan error, 1),
		telemetry: make([]float64, 0, maxTelemetry),
	}
	a.window.minimized = opts.Scene.Minimized

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	opts.Scene.Width, opts.Scene.Height = float64(w), float64(h)
	a.window.resize(w, h)

	a.scene = scene.Mount(a.surface, a.window, opts.Scene)
	a.scene.AddObserver(scene.ObserverFunc(a.record))
	a.scene.OnDispose(func() { rl.UnloadFont(a.font) })
	a.bindScroll()
	return a
}

// Run opens the desktop window and blocks until it is closed.
func Run(opts Options) {
	initWindow(opts.FPS)
	defer rl.CloseWindow()
	app := NewApp(opts)
	defer app.scene.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) record(f *field.Field) {
	a.telemetry = append(a.telemetry, f.Energy())
	if len(a.telemetry) > maxTelemetry {
		a.telemetry = a.telemetry[1:]
	}
}

func (a *App) Update() {
	if w, h := rl.GetScreenWidth(), rl.GetScreenHeight(); float64(w) != a.scene.Inputs().Width || float64(h) != a.scene.Inputs().Height {
		a.scene.Resize(float64(w), float64(h))
		a.window.resize(w, h)
	}

	select {
	case err := <-a.delivered:
		if err != nil {
			log.Printf("contact: %v", err)
		}
		a.session.Delivered(err)
		a.followTerminal()
	default:
	}

	a.pointer()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.scroll(-int(wheel * wheelLines))
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.click(rl.GetMousePosition())
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			a.toggleMinimize()
		} else {
			a.setTerminal(!a.terminal)
		}
	}
	if a.terminal && !a.window.minimized {
		a.typeKeys()
	} else {
		a.hotkeys()
	}

	a.window.step()
}

func (a *App) pointer() {
	if !rl.IsWindowFocused() || !rl.IsCursorOnScreen() {
		a.scene.PointerLeave()
		return
	}
	p := rl.GetMousePosition()
	a.scene.PointerMove(float64(p.X), float64(p.Y))
}

func (a *App) click(p rl.Vector2) {
	switch {
	case rl.CheckCollisionPointCircle(p, a.window.button(0), buttonRadius):
		a.setTerminal(!a.terminal)
	case rl.CheckCollisionPointCircle(p, a.window.button(1), buttonRadius):
		a.toggleMinimize()
	}
}

func (a *App) hotkeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	case rl.IsKeyPressed(rl.KeyM):
		a.toggleMinimize()
	case rl.IsKeyPressed(rl.KeyI):
		a.scene.SetInteractive(!a.scene.Inputs().Interactive)
	case rl.IsKeyPressed(rl.KeyEqual):
		a.scene.SetInteractionRadius(config.ClampRadius(a.scene.Inputs().InteractionRadius + 10))
	case rl.IsKeyPressed(rl.KeyMinus):
		a.scene.SetInteractionRadius(config.ClampRadius(a.scene.Inputs().InteractionRadius - 10))
	case rl.IsKeyPressed(rl.KeyRightBracket):
		a.scene.SetBallCount(config.ClampBalls(a.scene.Inputs().BallCount + config.BallStep))
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		a.scene.SetBallCount(config.ClampBalls(a.scene.Inputs().BallCount - config.BallStep))
	case rl.IsKeyPressed(rl.KeyE):
		a.showHUD = !a.showHUD
	case rl.IsKeyPressed(rl.KeyS):
		a.snapshot()
	case rl.IsKeyPressed(rl.KeyUp):
		a.scroll(-1)
	case rl.IsKeyPressed(rl.KeyDown):
		a.scroll(1)
	}
}

func (a *App) typeKeys() {
	changed := false
	for c := rl.GetCharPressed(); c > 0; c = rl.GetCharPressed() {
		a.session.Type(string(rune(c)))
		changed = true
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace):
		a.session.Backspace()
	case rl.IsKeyPressed(rl.KeyEscape):
		a.session.Escape()
	case rl.IsKeyPressed(rl.KeyUp):
		a.session.HistoryUp()
	case rl.IsKeyPressed(rl.KeyDown):
		a.session.HistoryDown()
	case rl.IsKeyPressed(rl.KeyEnter):
		res := a.session.Enter()
		switch res.Action {
		case terminal.Back:
			a.setTerminal(false)
		case terminal.Submit:
			a.send(res.Message)
		}
	default:
		if !changed {
			return
		}
	}
	a.followTerminal()
}

func (a *App) send(msg string) {
	client := a.opts.Client
	go func() {
		if client == nil {
			a.delivered <- contact.ErrNotConfigured
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		a.delivered <- client.Send(ctx, msg)
	}()
}

func (a *App) pane() int {
	if a.terminal {
		return 1
	}
	return 0
}

func (a *App) container() string {
	if a.terminal {
		return "terminal"
	}
	return "content"
}

func (a *App) bindScroll() {
	if a.window.minimized {
		a.scene.ContainerChanged(scene.WindowSource, a.windowScroll)
		return
	}
	a.scene.ContainerChanged(a.container(), float64(a.offsets[a.pane()]*lineHeight))
}

func (a *App) scroll(lines int) {
	if a.window.minimized {
		a.windowScroll = max(a.windowScroll+float64(lines*lineHeight), 0)
		a.scene.Scroll(scene.WindowSource, a.windowScroll)
		return
	}
	i := a.pane()
	next := max(0, min(a.offsets[i]+lines, a.maxOffset()))
	if next == a.offsets[i] {
		return
	}
	a.offsets[i] = next
	a.scene.Scroll(a.container(), float64(next*lineHeight))
}

// followTerminal keeps the scrollback pinned to the newest line.
func (a *App) followTerminal() {
	if !a.terminal {
		return
	}
	a.session.Resize(a.columns())
	if a.window.minimized {
		a.offsets[1] = a.maxOffset()
		return
	}
	a.scroll(a.maxOffset() - a.offsets[1])
}

func (a *App) setTerminal(on bool) {
	a.terminal = on
	if on {
		a.scene.SetMode(field.Bordered)
	} else {
		a.scene.SetMode(field.Ambient)
	}
	a.bindScroll()
}

func (a *App) toggleMinimize() {
	a.window.minimized = !a.window.minimized
	a.scene.SetMinimized(a.window.minimized)
	a.bindScroll()
}

func (a *App) snapshot() {
	svg := export.FieldToSVG(a.scene.Field(), export.DefaultStyle())
	if err := os.WriteFile(a.opts.SVGPath, []byte(svg), 0644); err != nil {
		log.Printf("svg: %v", err)
		a.status = "svg failed"
		return
	}
	a.status = fmt.Sprintf("saved %s", a.opts.SVGPath)
}
