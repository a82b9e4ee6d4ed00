package widgets

import (
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		typ    model.BlockType
		expect string
	}{
		{model.BlockTypeFormname, WidgetFormname},
		{model.BlockTypeButton, WidgetButton},
		{model.BlockTypeRadio, WidgetChoice},
		{model.BlockTypeCheckbox, WidgetChoice},
		{model.BlockTypeDropdown, WidgetDropdown},
		{model.BlockTypeTextarea, WidgetTextarea},
		{model.BlockTypeText, WidgetInput},
		{model.BlockTypeDate, WidgetInput},
		{model.BlockTypeNumber, WidgetInput},
		{model.BlockTypeEmail, WidgetInput},
		{model.BlockType("mystery"), WidgetInput},
	}
	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			got, ok := reg.Resolve(model.Block{Type: tc.typ})
			if !ok || got != tc.expect {
				t.Fatalf("expected %q, got %q (ok=%v)", tc.expect, got, ok)
			}
		})
	}
}

func TestRegister_PriorityOverridesBuiltin(t *testing.T) {
	reg := NewRegistry()
	reg.Register("forms.stars", 100, func(block model.Block) bool {
		return block.Type == model.BlockTypeRadio && len(block.ButtonNames) == 5
	})

	five := model.Block{Type: model.BlockTypeRadio, NumButtons: 5, ButtonNames: []string{"1", "2", "3", "4", "5"}}
	if got, _ := reg.Resolve(five); got != "forms.stars" {
		t.Fatalf("expected custom widget, got %q", got)
	}
	if got, _ := reg.Resolve(model.Block{Type: model.BlockTypeRadio}); got != WidgetChoice {
		t.Fatalf("expected builtin fallback, got %q", got)
	}
}

func TestResolve_EmptyRegistry(t *testing.T) {
	var reg Registry
	if _, ok := reg.Resolve(model.Block{Type: model.BlockTypeText}); ok {
		t.Fatalf("empty registry should not resolve")
	}
}
