package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	t.Setenv("MANDI_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when MANDI_DARK_MODE=1")
	}

	t.Setenv("MANDI_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when MANDI_DARK_MODE is unset")
	}

	t.Setenv("MANDI_DARK_MODE", "not-a-bool")
	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme from COLORFGBG background 0")
	}
}

func TestThemeFor(t *testing.T) {
	if !ThemeFor("dark").IsDark {
		t.Error("dark theme expected")
	}
	if ThemeFor("LIGHT").IsDark {
		t.Error("light theme expected")
	}

	t.Setenv("MANDI_DARK_MODE", "true")
	if !ThemeFor("auto").IsDark {
		t.Error("auto should follow MANDI_DARK_MODE")
	}
}
