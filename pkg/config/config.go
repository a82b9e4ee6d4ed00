package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Editing modes understood by the CLI.
const (
	ModeTUI   = "tui"
	ModeBoard = "board"
)

// Output formats for the finished form set.
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatPretty = "pretty"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config drives the formbuilder CLI. Zero values are filled from Default.
type Config struct {
	Title           string          `json:"title" yaml:"title"`
	Mode            string          `json:"mode" yaml:"mode"`
	Renderer        string          `json:"renderer" yaml:"renderer"`
	Format          string          `json:"format" yaml:"format"`
	Output          string          `json:"output" yaml:"output"`
	Theme           string          `json:"theme" yaml:"theme"`
	Variant         string          `json:"variant" yaml:"variant"`
	Themes          []ThemeManifest `json:"themes" yaml:"themes"`
	ActivationFlags bool            `json:"activationFlags" yaml:"activationFlags"`
	Publish         bool            `json:"publish" yaml:"publish"`
	LogLevel        string          `json:"logLevel" yaml:"logLevel"`
	Seed            *model.FormSet  `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// ThemeManifest is the file representation of a go-theme manifest.
type ThemeManifest struct {
	Name      string                  `json:"name" yaml:"name"`
	Version   string                  `json:"version" yaml:"version"`
	Tokens    map[string]string       `json:"tokens" yaml:"tokens"`
	Templates map[string]string       `json:"templates" yaml:"templates"`
	Assets    ThemeAssets             `json:"assets" yaml:"assets"`
	Variants  map[string]ThemeVariant `json:"variants" yaml:"variants"`
}

// ThemeAssets lists asset files relative to Prefix.
type ThemeAssets struct {
	Prefix string            `json:"prefix" yaml:"prefix"`
	Files  map[string]string `json:"files" yaml:"files"`
}

// ThemeVariant overrides manifest values for one variant.
type ThemeVariant struct {
	Tokens    map[string]string `json:"tokens" yaml:"tokens"`
	Templates map[string]string `json:"templates" yaml:"templates"`
	Assets    ThemeAssets       `json:"assets" yaml:"assets"`
}

// Manifest converts the file form into a go-theme manifest.
func (m ThemeManifest) Manifest() *theme.Manifest {
	out := &theme.Manifest{
		Name:      m.Name,
		Version:   m.Version,
		Tokens:    m.Tokens,
		Templates: m.Templates,
		Assets:    theme.Assets{Prefix: m.Assets.Prefix, Files: m.Assets.Files},
	}
	if len(m.Variants) > 0 {
		out.Variants = make(map[string]theme.Variant, len(m.Variants))
		for name, v := range m.Variants {
			out.Variants[name] = theme.Variant{
				Tokens:    v.Tokens,
				Templates: v.Templates,
				Assets:    theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return out
}

// Manifests converts every configured theme.
func (c Config) Manifests() []*theme.Manifest {
	out := make([]*theme.Manifest, 0, len(c.Themes))
	for _, m := range c.Themes {
		out = append(out, m.Manifest())
	}
	return out
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Title:    "Custom Survey",
		Mode:     ModeTUI,
		Renderer: "vanilla",
		Format:   FormatJSON,
		LogLevel: "info",
	}
}

// Load reads a JSON or YAML file from disk.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads a JSON or YAML file from fsys.
func LoadFS(fsys fs.FS, path string) (Config, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes data as JSON, falling back to YAML, over Default and
// validates the result. source is only used in error messages.
func Parse(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Default()
		if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
			return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks enumerated values and the seed form set.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeTUI, ModeBoard:
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalid, c.Mode)
	}
	switch c.Format {
	case FormatJSON, FormatYAML, FormatPretty:
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}
	if strings.TrimSpace(c.Renderer) == "" {
		return fmt.Errorf("%w: renderer is required", ErrInvalid)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	for i, m := range c.Themes {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: theme %d has no name", ErrInvalid, i)
		}
	}
	if c.Seed != nil {
		if err := validateSeed(*c.Seed); err != nil {
			return err
		}
	}
	return nil
}

// SlogLevel returns the parsed log level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// SeedSet returns the configured starting form set, or an empty one.
func (c Config) SeedSet() model.FormSet {
	if c.Seed == nil {
		return model.FormSet{Active: model.NoActiveForm}
	}
	seed := c.Seed.Clone()
	for i := range seed.Forms {
		if seed.Forms[i].Blocks == nil && seed.Forms[i].Hoisted == nil {
			seed.Forms[i].Blocks = []model.Block{}
		}
	}
	return seed
}

func validateSeed(seed model.FormSet) error {
	if len(seed.Forms) == 0 {
		if seed.Active != model.NoActiveForm && seed.Active != 0 {
			return fmt.Errorf("%w: seed active %d without forms", ErrInvalid, seed.Active)
		}
		return nil
	}
	if seed.Active < 0 || seed.Active >= len(seed.Forms) {
		return fmt.Errorf("%w: seed active %d of %d forms", ErrInvalid, seed.Active, len(seed.Forms))
	}
	for f, form := range seed.Forms {
		for b, block := range form.Blocks {
			if !block.Type.Valid() {
				return fmt.Errorf("%w: seed form %d block %d has type %q", ErrInvalid, f, b, block.Type)
			}
		}
	}
	return nil
}
