package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/stoneinhat/dotfield/internal/field"
)

// Theme colours the window chrome and maps the four particle colours.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Dots       [4]lipgloss.Color
}

// Dot returns the theme's colour for particle colour c.
func (t Theme) Dot(c field.Color) lipgloss.Color {
	return t.Dots[int(c)%len(t.Dots)]
}

func palette() [4]lipgloss.Color {
	var out [4]lipgloss.Color
	for i, hex := range field.Palette {
		out[i] = lipgloss.Color(hex)
	}
	return out
}

var (
	ThemePortfolio = Theme{
		Name:       "portfolio",
		Primary:    lipgloss.Color("#DFBD88"),
		Secondary:  lipgloss.Color("#618985"),
		Accent:     lipgloss.Color("#DFBD88"),
		Background: lipgloss.Color(field.Background),
		Text:       lipgloss.Color("#E8E3E3"),
		Muted:      lipgloss.Color("#414535"),
		Success:    lipgloss.Color("#5fd068"),
		Warning:    lipgloss.Color("#febc2e"),
		Error:      lipgloss.Color("#ff5f57"),
		Dots:       palette(),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"),
		Secondary:  lipgloss.Color("#00ffff"),
		Accent:     lipgloss.Color("#ffff00"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ff8800"),
		Error:      lipgloss.Color("#ff0000"),
		Dots:       [4]lipgloss.Color{"#ff00ff", "#00ffff", "#ffff00", "#ffffff"},
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"),
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Success:    lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
		Dots:       [4]lipgloss.Color{"#00ff00", "#00aa00", "#88ff88", "#ccffcc"},
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"),
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
		Dots:       [4]lipgloss.Color{"#0077be", "#00a8cc", "#ffd700", "#e0f0ff"},
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"),
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Success:    lipgloss.Color("#5fd068"),
		Warning:    lipgloss.Color("#ffc048"),
		Error:      lipgloss.Color("#ff4757"),
		Dots:       [4]lipgloss.Color{"#ff6b6b", "#feca57", "#ff9ff3", "#fff5f5"},
	}

	CurrentTheme = ThemePortfolio

	Themes = []Theme{
		ThemePortfolio,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the portfolio palette.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePortfolio
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme cycles CurrentTheme and returns the new name.
func NextTheme() string {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return CurrentTheme.Name
		}
	}
	SetTheme(names[0])
	return CurrentTheme.Name
}
