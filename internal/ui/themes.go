package ui

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a palette for terminal output: ANSI escape codes for plain
// lines and lipgloss colors for tables.
type Theme struct {
	Name string

	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string

	Table TableTheme
}

// TableTheme colors the benchmark and info tables.
type TableTheme struct {
	Header  lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

// DefaultThemeName is selected when no theme is requested.
const DefaultThemeName = "dark"

func fg(code int) string { return fmt.Sprintf("\033[38;5;%dm", code) }

// ansiTheme fills the escape codes shared by every colored theme.
func ansiTheme(name string, primary, secondary, success, warning, errColor, info int, table TableTheme) Theme {
	return Theme{
		Name:      name,
		Primary:   fg(primary),
		Secondary: fg(secondary),
		Success:   fg(success),
		Warning:   fg(warning),
		Error:     fg(errColor),
		Info:      fg(info),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Table:     table,
	}
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = ansiTheme("dark", 39, 245, 82, 220, 196, 141, TableTheme{
		Header:  lipgloss.Color("#FF8C00"),
		Border:  lipgloss.Color("#666666"),
		Accent:  lipgloss.Color("#4488FF"),
		Success: lipgloss.Color("#9ECE6A"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#888888"),
	})

	// LightTheme uses darker tones for light backgrounds.
	LightTheme = ansiTheme("light", 27, 240, 28, 130, 124, 54, TableTheme{
		Header:  lipgloss.Color("#AF5F00"),
		Border:  lipgloss.Color("#9E9E9E"),
		Accent:  lipgloss.Color("#005FD7"),
		Success: lipgloss.Color("#008700"),
		Error:   lipgloss.Color("#AF0000"),
		Dim:     lipgloss.Color("#585858"),
	})

	// OrangeTheme is a dark theme with orange accents.
	OrangeTheme = ansiTheme("orange", 208, 245, 82, 214, 196, 69, TableTheme{
		Header:  lipgloss.Color("#FF8700"),
		Border:  lipgloss.Color("#875F00"),
		Accent:  lipgloss.Color("#FFAF00"),
		Success: lipgloss.Color("#87D700"),
		Error:   lipgloss.Color("#FF0000"),
		Dim:     lipgloss.Color("#8A8A8A"),
	})

	// NoColorTheme emits no escape codes at all.
	NoColorTheme = Theme{
		Name: "none",
		Table: TableTheme{
			Header:  lipgloss.NoColor{},
			Border:  lipgloss.NoColor{},
			Accent:  lipgloss.NoColor{},
			Success: lipgloss.NoColor{},
			Error:   lipgloss.NoColor{},
			Dim:     lipgloss.NoColor{},
		},
	}
)

var themes = map[string]Theme{
	DarkTheme.Name:    DarkTheme,
	LightTheme.Name:   LightTheme,
	OrangeTheme.Name:  OrangeTheme,
	NoColorTheme.Name: NoColorTheme,
}

var (
	themeMutex   sync.RWMutex
	currentTheme = DarkTheme
)

// ThemeNames lists the registered themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTheme returns the theme registered under name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// GetCurrentTableTheme returns the table palette of the active theme.
func GetCurrentTableTheme() TableTheme {
	return GetCurrentTheme().Table
}

// SetCurrentTheme installs t, typically to restore state in tests.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a registered theme. Unknown names select the default
// theme and return an error.
func SetTheme(name string) error {
	t, ok := LookupTheme(name)
	if !ok {
		SetCurrentTheme(DarkTheme)
		return fmt.Errorf("unknown theme %q", name)
	}
	SetCurrentTheme(t)
	return nil
}

// InitTheme activates the named theme (the default when name is empty)
// unless colors are disabled by noColor or by NO_COLOR being present in the
// environment (https://no-color.org/).
func InitTheme(name string, noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if name == "" {
		name = DefaultThemeName
	}
	_ = SetTheme(name)
}
