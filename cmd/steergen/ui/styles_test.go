package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	t.Setenv("STEERGEN_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when STEERGEN_DARK_MODE=1")
	}

	t.Setenv("STEERGEN_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when STEERGEN_DARK_MODE is unset")
	}
}

func TestDetectTheme_ColorFgBg(t *testing.T) {
	t.Setenv("STEERGEN_DARK_MODE", "")

	t.Setenv("COLORFGBG", "15;0")
	if theme := DetectTheme(); !theme.IsDark {
		t.Fatalf("expected dark theme for black background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if theme := DetectTheme(); theme.IsDark {
		t.Fatalf("expected light theme for white background")
	}
}
