package render

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeSelector is the subset of the go-theme selector contract the render
// pipeline needs.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// ThemeConfig is the resolved theme handed to renderers.
type ThemeConfig struct {
	Theme    string
	Variant  string
	Tokens   map[string]string
	CSSVars  map[string]string
	Partials map[string]string
	AssetURL func(key string) string
}

// DefaultPartials returns the partial template per block kind. Theme manifests
// can override any of them through their Templates map.
func DefaultPartials() map[string]string {
	return map[string]string{
		"forms.formname": "templates/blocks/formname.tmpl",
		"forms.button":   "templates/blocks/button.tmpl",
		"forms.choice":   "templates/blocks/choice.tmpl",
		"forms.dropdown": "templates/blocks/dropdown.tmpl",
		"forms.input":    "templates/blocks/input.tmpl",
		"forms.textarea": "templates/blocks/textarea.tmpl",
	}
}

// ErrThemeNotFound is returned by ManifestSelector for unknown themes.
var ErrThemeNotFound = errors.New("render: theme not found")

// ManifestSelector serves selections from in-memory manifests. The first
// manifest registered is the default theme.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
	order     []string
}

// NewManifestSelector indexes manifests by name.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest)}
	for _, manifest := range manifests {
		if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
			continue
		}
		if _, exists := s.manifests[manifest.Name]; !exists {
			s.order = append(s.order, manifest.Name)
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// Select resolves name (or the default theme when empty) and variant.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil || len(s.order) == 0 {
		return nil, ErrThemeNotFound
	}
	if name == "" {
		name = s.order[0]
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: variant %q of %q", ErrThemeNotFound, variant, name)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// ResolveTheme asks selector for name/variant and flattens the selection
// into a ThemeConfig: variant tokens, templates and asset files override the
// base manifest, tokens double as CSS custom properties, and partials fall
// back to DefaultPartials.
func ResolveTheme(selector ThemeSelector, name, variant string) (*ThemeConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	return ThemeFromSelection(selection), nil
}

// ThemeFromSelection flattens a go-theme selection.
func ThemeFromSelection(selection *theme.Selection) *ThemeConfig {
	cfg := &ThemeConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: DefaultPartials(),
	}

	manifest := selection.Manifest
	if manifest == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}

	prefix := manifest.Assets.Prefix
	files := map[string]string{}
	mergeInto(cfg.Tokens, manifest.Tokens)
	mergeInto(cfg.Partials, manifest.Templates)
	mergeInto(files, manifest.Assets.Files)

	if v, ok := manifest.Variants[selection.Variant]; ok {
		mergeInto(cfg.Tokens, v.Tokens)
		mergeInto(cfg.Partials, v.Templates)
		mergeInto(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

// CSSVarsStyle renders the CSS custom properties as a :root block.
func (c *ThemeConfig) CSSVarsStyle() string {
	if c == nil || len(c.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c.CSSVars))
	for key := range c.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(c.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// Partial returns the template for key, falling back to the default.
func (c *ThemeConfig) Partial(key string) string {
	if c != nil {
		if name, ok := c.Partials[key]; ok && name != "" {
			return name
		}
	}
	return DefaultPartials()[key]
}

func mergeInto(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}
