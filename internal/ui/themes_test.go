package ui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"dark", "dark", false},
		{"light", "light", false},
		{"orange", "orange", false},
		{"none", "none", false},
		{"bogus", "dark", true},
	}
	for _, tt := range tests {
		err := SetTheme(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetTheme(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) -> %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestThemeNames(t *testing.T) {
	t.Parallel()
	want := []string{"dark", "light", "none", "orange"}
	if got := ThemeNames(); !slices.Equal(got, want) {
		t.Errorf("ThemeNames() = %v, want %v", got, want)
	}
	for _, name := range want {
		if th, ok := LookupTheme(name); !ok || th.Name != name {
			t.Errorf("LookupTheme(%q) = %q, %v", name, th.Name, ok)
		}
	}
}

func TestInitTheme_NoColor(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme("light", true)
	if ColorRed() != "" || ColorReset() != "" || ColorUnderline() != "" {
		t.Error("no-color theme should produce empty escape codes")
	}
	if _, ok := GetCurrentTableTheme().Header.(lipgloss.NoColor); !ok {
		t.Error("no-color theme should select the NoColor table palette")
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	t.Setenv("NO_COLOR", "1")

	InitTheme("orange", false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should disable colors, got theme %q", GetCurrentTheme().Name)
	}
}

func TestInitTheme_Named(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme("light", false)
	if got := GetCurrentTheme().Name; got != "light" && got != "none" {
		t.Errorf("InitTheme(light) -> %q", got)
	}
	InitTheme("", false)
	if got := GetCurrentTheme().Name; got != DefaultThemeName && got != "none" {
		t.Errorf("InitTheme(\"\") -> %q, want %q", got, DefaultThemeName)
	}
}

func TestColorAccessorsFollowTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(DarkTheme)
	if ColorGreen() != DarkTheme.Success || ColorYellow() != DarkTheme.Warning || ColorCyan() != DarkTheme.Primary {
		t.Error("color accessors should return the dark theme codes")
	}
	if ColorBold() != "\033[1m" {
		t.Errorf("ColorBold() = %q", ColorBold())
	}
	if DarkTheme.Success != "\033[38;5;82m" {
		t.Errorf("DarkTheme.Success = %q", DarkTheme.Success)
	}
	if GetCurrentTableTheme() != DarkTheme.Table {
		t.Error("table palette should follow the active theme")
	}
}
