package formbuilder

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestNewRegistry_RegistersBuiltIns(t *testing.T) {
	registry, err := NewRegistry(RegistryOptions{})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if diff := cmp.Diff([]string{"board", "tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
	for alias, want := range map[string]string{"html": "vanilla", "text": "board"} {
		r, err := registry.Get(alias)
		if err != nil {
			t.Fatalf("get %s: %v", alias, err)
		}
		if r.Name() != want {
			t.Fatalf("alias %s resolved to %s", alias, r.Name())
		}
	}
}

func TestPreviewHTML(t *testing.T) {
	out, err := PreviewHTML(context.Background(), testsupport.SurveyFormSet(), RenderOptions{Title: "Feedback"})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	html := string(out)
	for _, want := range []string{"<h1", "Feedback", "Customer Feedback", "button_3_0", "Sales"} {
		if !strings.Contains(html, want) {
			t.Fatalf("preview missing %q:\n%s", want, html)
		}
	}
}

func TestNewSession_AddsBlocks(t *testing.T) {
	session := NewSession()
	ctx := context.Background()
	for _, cmd := range []builder.Command{
		builder.AddForm(),
		builder.SetField(builder.FieldName, "Email"),
		builder.SetField(builder.FieldType, "email"),
		builder.AddBlock(),
	} {
		if err := session.Dispatch(ctx, cmd); err != nil {
			t.Fatalf("dispatch %s: %v", cmd, err)
		}
	}
	set := session.Snapshot()
	if len(set.Forms) != 1 || len(set.Forms[0].Blocks) != 1 || set.Forms[0].Blocks[0].Name != "Email" {
		t.Fatalf("unexpected set %+v", set)
	}
}

func TestAssetsFS(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "formbuilder.css")
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".draggable-block") {
		t.Fatalf("stylesheet missing block styles")
	}
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("read page template: %v", err)
	}
}
