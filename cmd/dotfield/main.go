package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/stoneinhat/dotfield/internal/config"
	"github.com/stoneinhat/dotfield/internal/contact"
	"github.com/stoneinhat/dotfield/internal/field"
	"github.com/stoneinhat/dotfield/internal/gui"
	"github.com/stoneinhat/dotfield/internal/portfolio"
	"github.com/stoneinhat/dotfield/internal/scene"
	"github.com/stoneinhat/dotfield/internal/storage"
	"github.com/stoneinhat/dotfield/internal/viz"
)

var (
	configFile    string
	preset        string
	envFile       string
	ballCount     int
	radius        float64
	interactive   bool
	mode          string
	fps           int
	theme         string
	seed          int64
	minimized     bool
	contactURL    string
	portfolioFile string
	logFile       string

	addr   string
	dbPath string

	limit  int
	asJSON bool
	asCSV  bool

	samples int
	frames  int
	width   float64
	height  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "dotfield",
		Short:        "interactive particle background for a terminal portfolio",
		SilenceUsage: true,
		RunE:         runTerminal,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&envFile, "env", ".env", "dotenv file")
	pf.IntVar(&ballCount, "balls", config.DefaultBallCount, "particle count (100-5000)")
	pf.Float64Var(&radius, "radius", config.DefaultInteractionRadius, "pointer interaction radius (20-250)")
	pf.BoolVar(&interactive, "interactive", true, "particles flee the pointer")
	pf.StringVar(&mode, "mode", "ambient", "starting layout: ambient or bordered")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	pf.BoolVar(&minimized, "minimized", false, "start with the window minimized")
	pf.StringVar(&contactURL, "contact-url", "", "chat relay base URL")
	pf.StringVar(&portfolioFile, "portfolio", "", "portfolio yaml (defaults to the built-in one)")
	rootCmd.Flags().StringVar(&logFile, "log", "dotfield.log", "log file while the terminal UI owns the screen")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the particle field in a desktop window",
		RunE:  runGUI,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the chat relay that forwards terminal messages to Slack",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (PORT from the environment wins)")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "message log database")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBALLS\tRADIUS\tMODE\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				cfg, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%.0f\t%s\t%s\n", name, cfg.BallCount, cfg.InteractionRadius, cfg.Mode, config.Presets[name].Description)
			}
			return w.Flush()
		},
	}

	messagesCmd := &cobra.Command{
		Use:   "messages",
		Short: "show messages received by the relay",
		RunE:  listMessages,
	}
	messagesCmd.Flags().StringVar(&dbPath, "db", "", "message log database")
	messagesCmd.Flags().IntVar(&limit, "limit", 20, "number of messages")
	messagesCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	messagesCmd.Flags().BoolVar(&asCSV, "csv", false, "print CSV")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "plot the ambient cloud's spread and a headless settle run",
		RunE:  plotSample,
	}
	sampleCmd.Flags().IntVar(&samples, "samples", 10000, "number of points")
	sampleCmd.Flags().IntVar(&frames, "frames", 300, "frames to run the headless field for")
	sampleCmd.Flags().Float64Var(&width, "width", 1280, "viewport width")
	sampleCmd.Flags().Float64Var(&height, "height", 720, "viewport height")

	rootCmd.AddCommand(guiCmd, serveCmd, presetsCmd, messagesCmd, sampleCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.LoadOnto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("balls") {
		cfg.BallCount = ballCount
	}
	if flags.Changed("radius") {
		cfg.InteractionRadius = radius
	}
	if flags.Changed("interactive") {
		cfg.Interactive = interactive
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("portfolio") {
		cfg.Portfolio = portfolioFile
	}
	if flags.Changed("contact-url") {
		cfg.Contact.Endpoint = contactURL
	}
	if flags.Changed("addr") {
		cfg.Relay.Addr = addr
	}
	if flags.Changed("db") {
		cfg.Relay.Database = dbPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sceneOptions(cfg *config.Config) scene.Options {
	return scene.Options{
		Interactive:       cfg.Interactive,
		Mode:              field.ParseMode(cfg.Mode),
		Minimized:         minimized,
		InteractionRadius: cfg.InteractionRadius,
		BallCount:         cfg.BallCount,
		Seed:              cfg.Seed,
	}
}

// setup resolves everything the two surfaces share.
func setup(cmd *cobra.Command) (*config.Config, *portfolio.Data, *contact.Client, error) {
	env, err := config.LoadEnv(envFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load env: %w", err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.Contact.Endpoint == "" {
		cfg.Contact.Endpoint = env.ContactURL
	}

	data, err := portfolio.Load(cfg.Portfolio)
	if err != nil {
		return nil, nil, nil, err
	}

	var client *contact.Client
	if cfg.Contact.Endpoint != "" {
		client = contact.NewClient(contact.Endpoint(cfg.Contact.Endpoint))
	}
	return cfg, data, client, nil
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, data, client, err := setup(cmd)
	if err != nil {
		return err
	}

	f, err := tea.LogToFile(logFile, "dotfield")
	if err != nil {
		return err
	}
	defer f.Close()

	return viz.Run(viz.Options{
		Scene:     sceneOptions(cfg),
		FPS:       cfg.FPS,
		Theme:     cfg.Theme,
		Portfolio: data,
		Client:    client,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, data, client, err := setup(cmd)
	if err != nil {
		return err
	}
	gui.Run(gui.Options{
		Scene:     sceneOptions(cfg),
		FPS:       cfg.FPS,
		Portfolio: data,
		Client:    client,
	})
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := config.LoadEnv(envFile)
	if err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	msgs, err := storage.Open(cfg.Relay.Database)
	if err != nil {
		return err
	}
	defer msgs.Close()

	var notifier contact.Notifier
	if env.SlackWebhookURL != "" {
		notifier = contact.NewSlack(env.SlackWebhookURL)
	} else {
		log.Printf("SLACK_WEBHOOK_URL is not set; every message will fail with a configuration error")
	}

	srv := &http.Server{
		Addr:              env.RelayAddr(cfg),
		Handler:           contact.NewRouter(notifier, msgs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("relay listening on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}

func listMessages(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	msgs, err := storage.Open(cfg.Relay.Database)
	if err != nil {
		return err
	}
	defer msgs.Close()

	ctx := cmd.Context()
	recent, err := msgs.Recent(ctx, limit)
	if err != nil {
		return err
	}

	switch {
	case asJSON:
		return storage.ExportJSON(os.Stdout, recent)
	case asCSV:
		return storage.ExportCSV(os.Stdout, recent)
	}

	if len(recent) == 0 {
		fmt.Println("no messages found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRECEIVED\tSTATUS\tMESSAGE\tDETAIL")
	for _, m := range recent {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			m.ID,
			m.ReceivedAt.Local().Format("2006-01-02 15:04:05"),
			m.Status,
			preview(m.Body, 48),
			m.Detail,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	counts, err := msgs.Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nsent %d  failed %d  rejected %d\n",
		counts[storage.StatusSent], counts[storage.StatusFailed], counts[storage.StatusRejected])
	return nil
}

func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// plotSample draws the ambient sampler's density per unit area in
// concentric rings, then the mean energy of a field settling with no
// surface attached. A flat density line means the cloud is uniform.
func plotSample(cmd *cobra.Command, args []string) error {
	if samples <= 0 || frames <= 0 {
		return fmt.Errorf("samples and frames must be positive")
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	const rings = 25

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if cmd.Flags().Changed("seed") {
		rng = rand.New(rand.NewSource(seed))
	}

	cx, cy := width/2, height/2
	r := field.CloudRadius(width, height)
	if r <= 0 {
		return fmt.Errorf("viewport %gx%g has no room for a cloud", width, height)
	}

	counts := make([]float64, rings)
	for i := 0; i < samples; i++ {
		x, y := field.SampleDisc(rng, cx, cy, r)
		d := math.Hypot(x-cx, y-cy) / r
		counts[min(int(d*rings), rings-1)]++
	}

	density := make([]float64, rings)
	for i, c := range counts {
		// ring i covers ((i+1)² - i²) / rings² of the disc
		share := float64(2*i+1) / float64(rings*rings)
		density[i] = c / (share * float64(samples))
	}

	fmt.Printf("cloud radius %.1f for a %gx%g viewport, %d samples\n\n", r, width, height, samples)
	fmt.Println(asciigraph.Plot(density,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("relative density, centre to edge (1.0 = uniform)")))

	energy, err := settle(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	fmt.Printf("\n%d balls, %s, %d frames, final energy %.4f\n\n", cfg.BallCount, cfg.Mode, len(energy), energy[len(energy)-1])
	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("mean kinetic energy per frame")))
	return nil
}

// headless accepts every frame and draws nothing.
type headless struct{}

func (headless) Begin(w, h float64) bool { return w > 0 && h > 0 }

func (headless) Disc(x, y, radius float64, c field.Color) {}

func (headless) End() {}

// settle runs a field unpaced for the requested number of frames around a
// window-sized host and records its mean energy after each one.
func settle(ctx context.Context, cfg *config.Config) ([]float64, error) {
	host := field.HostFunc(func() (field.Rect, bool) {
		return field.NewRect(width*0.05, height*0.05, width*0.9, height*0.9), true
	})
	opts := sceneOptions(cfg)
	opts.Width, opts.Height = width, height

	s := scene.Mount(headless{}, host, opts)
	var energy []float64
	s.AddObserver(scene.ObserverFunc(func(f *field.Field) {
		energy = append(energy, f.Energy())
		if len(energy) >= frames {
			s.Close()
		}
	}))

	if err := s.Run(ctx, time.Millisecond); err != nil {
		return nil, err
	}
	if len(energy) == 0 {
		return nil, fmt.Errorf("viewport %gx%g produced no frames", width, height)
	}
	return energy, nil
}
