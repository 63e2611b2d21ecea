package ui

import "testing"

func TestSetTheme(t *testing.T) {
	defer SetTheme("dark")

	cases := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"bogus", "dark"},
	}
	for _, tc := range cases {
		SetTheme(tc.name)
		if got := GetCurrentTheme().Name; got != tc.want {
			t.Errorf("SetTheme(%q): active theme = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestInitThemeRespectsNoColorEnv(t *testing.T) {
	defer SetTheme("dark")
	t.Setenv("NO_COLOR", "1")

	InitTheme(false)
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("theme with NO_COLOR set = %q, want none", got)
	}
	if ColorReset() != "" {
		t.Error("no-color theme must emit empty escape codes")
	}
}

func TestInitThemeFlagWins(t *testing.T) {
	defer SetTheme("dark")

	InitTheme(true)
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("theme with noColor flag = %q, want none", got)
	}
}
