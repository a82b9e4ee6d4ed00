package render

import (
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
)

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"vanilla.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"forms.button": "themes/acme/dark/button.tmpl",
				},
			},
		},
	}
}

func TestResolveTheme_MergesVariant(t *testing.T) {
	cfg, err := ResolveTheme(NewManifestSelector(acmeManifest()), "", "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("variant tokens not applied: %v", cfg.Tokens)
	}
	if cfg.Partial("forms.input") != "themes/acme/input.tmpl" {
		t.Fatalf("base template override missing")
	}
	if cfg.Partial("forms.button") != "themes/acme/dark/button.tmpl" {
		t.Fatalf("variant template override missing")
	}
	if cfg.Partial("forms.dropdown") != DefaultPartials()["forms.dropdown"] {
		t.Fatalf("fallback partial missing")
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if !strings.Contains(cfg.CSSVarsStyle(), "--brand: #654321;") {
		t.Fatalf("unexpected css vars %q", cfg.CSSVarsStyle())
	}
}

func TestResolveTheme_UnknownVariant(t *testing.T) {
	_, err := ResolveTheme(NewManifestSelector(acmeManifest()), "acme", "neon")
	if !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	cfg, err := ResolveTheme(nil, "acme", "")
	if err != nil || cfg != nil {
		t.Fatalf("nil selector should yield no theme, got %v %v", cfg, err)
	}
}
