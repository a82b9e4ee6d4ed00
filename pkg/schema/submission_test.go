package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func sampleForm() model.Form {
	return model.Form{Blocks: []model.Block{
		{Name: "Customer Survey", Type: model.BlockTypeFormname},
		{Name: "Full name", Type: model.BlockTypeText, IsRequired: true},
		{Name: "Email", Type: model.BlockTypeEmail},
		{Name: "Age", Type: model.BlockTypeNumber},
		{Name: "Country", Type: model.BlockTypeDropdown, Options: []string{"NO", "SE"}},
		{Name: "Contact", Type: model.BlockTypeCheckbox, NumButtons: 2, ButtonNames: []string{"Email", "Phone"}},
		{Name: "Full name", Type: model.BlockTypeTextarea},
		{Name: "Send", Type: model.BlockTypeButton},
	}}
}

func TestBuild_FieldsAndRequired(t *testing.T) {
	sub, err := Build(sampleForm())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sub.Title != "Customer Survey" {
		t.Fatalf("unexpected title %q", sub.Title)
	}

	var keys []string
	for _, field := range sub.Fields {
		keys = append(keys, field.Key)
	}
	want := []string{"full_name", "email", "age", "country", "contact", "full_name_2"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"full_name"}, sub.Schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	field, ok := sub.FieldByKey("contact")
	if !ok || field.BlockIndex != 5 {
		t.Fatalf("unexpected contact field %+v", field)
	}
	if sub.Schema.Properties["country"].Value.Enum[1] != "SE" {
		t.Fatalf("dropdown enum not propagated")
	}
}

func TestBuild_MarshalsAsOpenAPISchema(t *testing.T) {
	sub, err := Build(sampleForm())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	raw, err := json.Marshal(sub)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["type"] != "object" {
		t.Fatalf("expected object schema, got %v", doc["type"])
	}
	props, _ := doc["properties"].(map[string]any)
	contact, _ := props["contact"].(map[string]any)
	if contact["type"] != "array" {
		t.Fatalf("checkbox should map to array, got %v", contact["type"])
	}
}

func TestBuild_RejectsPseudoForm(t *testing.T) {
	hoisted := model.Block{Name: "Heading", Type: model.BlockTypeFormname}
	if _, err := Build(model.Form{Hoisted: &hoisted}); !errors.Is(err, ErrNoBlockList) {
		t.Fatalf("expected ErrNoBlockList, got %v", err)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Full name":      "full_name",
		"  What's up? ":  "what_s_up",
		"Æble / Pære":    "æble_pære",
		"???":            "field_3",
	}
	for in, want := range cases {
		if got := slug(in, 3); got != want {
			t.Fatalf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}
