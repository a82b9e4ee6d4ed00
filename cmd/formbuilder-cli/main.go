package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/config"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/board"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

func main() {
	configPath := flag.String("config", "", "JSON or YAML configuration file")
	mode := flag.String("mode", "", "editor to run: tui or board")
	renderer := flag.String("renderer", "", "renderer used for the publish preview")
	output := flag.String("output", "", "output file for the form set (stdout if empty)")
	preview := flag.String("preview", "", "file for the rendered preview when publishing")
	themeName := flag.String("theme", "", "theme name")
	variant := flag.String("variant", "", "theme variant")
	format := flag.String("format", "", "output format: json, yaml or pretty")
	title := flag.String("title", "", "survey title")
	publish := flag.Bool("publish", false, "publish finished forms")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "renderer":
			cfg.Renderer = *renderer
		case "output":
			cfg.Output = *output
		case "theme":
			cfg.Theme = *themeName
		case "variant":
			cfg.Variant = *variant
		case "format":
			cfg.Format = *format
		case "title":
			cfg.Title = *title
		case "publish":
			cfg.Publish = *publish
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sessionOptions := []builder.Option{
		builder.WithLogger(logger),
		builder.WithFormSetOptions(builder.WithActivationFlags(cfg.ActivationFlags)),
	}

	set, err := edit(ctx, cfg, sessionOptions)
	if err != nil {
		log.Fatalf("Failed to edit forms: %v", err)
	}

	encoded, err := tui.Encode(set, tui.OutputFormat(cfg.Format))
	if err != nil {
		log.Fatalf("Failed to encode forms: %v", err)
	}
	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, encoded, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Forms written to %s\n", cfg.Output)
	} else {
		fmt.Print(string(encoded))
	}

	if !cfg.Publish {
		return
	}
	result, err := publishForms(ctx, cfg, set, logger)
	if err != nil {
		log.Fatalf("Failed to publish forms: %v", err)
	}
	for _, p := range result.Published {
		fmt.Fprintf(os.Stderr, "Form %d published as %s\n", p.FormIndex+1, p.ID)
	}
	if *preview != "" {
		if err := os.WriteFile(*preview, result.Preview, 0o644); err != nil {
			log.Fatalf("Failed to write preview: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Preview written to %s\n", *preview)
	}
}

func edit(ctx context.Context, cfg config.Config, sessionOptions []builder.Option) (model.FormSet, error) {
	seed := cfg.SeedSet()
	if cfg.Mode == config.ModeBoard {
		return board.Run(ctx, seed, []board.Option{
			board.WithTitle(cfg.Title),
			board.WithSessionOptions(sessionOptions...),
		})
	}

	editor, err := tui.New(
		tui.WithInfoWriter(os.Stderr),
		tui.WithSessionOptions(sessionOptions...),
		tui.WithTheme(tui.Theme{InfoPrefix: "✓ ", ErrorPrefix: "! "}),
	)
	if err != nil {
		return model.FormSet{}, err
	}
	return editor.Edit(ctx, editor.NewSession(seed), cfg.Title)
}

func publishForms(ctx context.Context, cfg config.Config, set model.FormSet, logger *slog.Logger) (orchestrator.Result, error) {
	registry, err := formbuilder.NewRegistry(formbuilder.RegistryOptions{})
	if err != nil {
		return orchestrator.Result{}, err
	}
	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithTransformer(orchestrator.TrimNames()),
		orchestrator.WithLogger(logger),
	}
	if len(cfg.Themes) > 0 {
		options = append(options,
			orchestrator.WithThemeSelector(render.NewManifestSelector(cfg.Manifests()...)),
			orchestrator.WithDefaultTheme(cfg.Theme, cfg.Variant),
		)
	}
	return formbuilder.NewOrchestrator(options...).Publish(ctx, orchestrator.Request{
		Set:           set,
		Renderer:      cfg.Renderer,
		OnlyActive:    cfg.ActivationFlags && anyActive(set),
		RenderOptions: render.RenderOptions{Title: cfg.Title},
	})
}

func anyActive(set model.FormSet) bool {
	for _, form := range set.Forms {
		if form.IsActive {
			return true
		}
	}
	return false
}
