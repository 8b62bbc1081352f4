package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestMarkdownStyle_RespectsTheme(t *testing.T) {
	t.Setenv("DOCK_MD_STYLE", "")
	t.Setenv("COLORFGBG", "")
	t.Setenv("DOCK_DARKBG", "")

	t.Setenv("DOCK_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("DOCK_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_MDStyleOverridesTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("DOCK_DARKBG", "")
	t.Setenv("DOCK_THEME", "light")

	t.Setenv("DOCK_MD_STYLE", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyleConfig_KeepsLinkStyles(t *testing.T) {
	t.Run("dark", func(t *testing.T) {
		got := markdownStyleConfig("dark")
		want := styles.DarkStyleConfig
		assertStylePrimitiveEqual(t, got.Link, want.Link)
		assertStylePrimitiveEqual(t, got.LinkText, want.LinkText)
	})

	t.Run("light", func(t *testing.T) {
		got := markdownStyleConfig("light")
		want := styles.LightStyleConfig
		assertStylePrimitiveEqual(t, got.Link, want.Link)
		assertStylePrimitiveEqual(t, got.LinkText, want.LinkText)
	})
}

func TestMarkdownStyleConfig_UsesPalette(t *testing.T) {
	got := markdownStyleConfig("light")
	if strPtrValue(got.Code.Color) != colorAccent.Light {
		t.Fatalf("code color: got %q want %q", strPtrValue(got.Code.Color), colorAccent.Light)
	}
	if got.H1.BackgroundColor != nil {
		t.Fatalf("expected H1 background to be cleared")
	}
}

func TestRenderMarkdown_Help(t *testing.T) {
	t.Setenv("DOCK_MD_STYLE", "dark")

	out := renderMarkdown(helpMarkdown, 60)
	if out == "" {
		t.Fatalf("expected rendered help")
	}
	plain := xansi.Strip(out)
	if !strings.Contains(plain, "push aside") {
		t.Fatalf("expected help body, got:\n%s", plain)
	}
	if !strings.Contains(plain, "copy the current order") {
		t.Fatalf("expected key table, got:\n%s", plain)
	}

	if renderMarkdown("   ", 40) != "" {
		t.Fatalf("expected empty output for blank input")
	}
}

func assertStylePrimitiveEqual(t *testing.T, got ansi.StylePrimitive, want ansi.StylePrimitive) {
	t.Helper()

	if strPtrValue(got.Color) != strPtrValue(want.Color) {
		t.Fatalf("Color: got %q want %q", strPtrValue(got.Color), strPtrValue(want.Color))
	}
	if strPtrValue(got.BackgroundColor) != strPtrValue(want.BackgroundColor) {
		t.Fatalf("BackgroundColor: got %q want %q", strPtrValue(got.BackgroundColor), strPtrValue(want.BackgroundColor))
	}
	if boolPtrValue(got.Bold) != boolPtrValue(want.Bold) {
		t.Fatalf("Bold: got %v want %v", boolPtrValue(got.Bold), boolPtrValue(want.Bold))
	}
	if boolPtrValue(got.Underline) != boolPtrValue(want.Underline) {
		t.Fatalf("Underline: got %v want %v", boolPtrValue(got.Underline), boolPtrValue(want.Underline))
	}
	if got.Prefix != want.Prefix || got.Suffix != want.Suffix {
		t.Fatalf("Prefix/Suffix: got %q/%q want %q/%q", got.Prefix, got.Suffix, want.Prefix, want.Suffix)
	}
}

func strPtrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func boolPtrValue(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}
