package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBlockTypes_OrderAndLabels(t *testing.T) {
	var labels []string
	for _, typ := range BlockTypes() {
		if !typ.Valid() {
			t.Fatalf("%q should be valid", typ)
		}
		labels = append(labels, typ.Label())
	}
	want := []string{"Formname", "Text", "Date", "Number", "Drop Down", "Radio Button", "Check Box", "Text Area", "Button", "Email"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlockType(t *testing.T) {
	if typ, ok := ParseBlockType("  Dropdown "); !ok || typ != BlockTypeDropdown {
		t.Fatalf("expected dropdown, got %q %v", typ, ok)
	}
	if _, ok := ParseBlockType("slider"); ok {
		t.Fatalf("slider must be rejected")
	}
}

func TestBlockType_Capabilities(t *testing.T) {
	cases := []struct {
		typ      BlockType
		required bool
		buttons  bool
		options  bool
	}{
		{BlockTypeFormname, false, false, false},
		{BlockTypeText, true, false, false},
		{BlockTypeEmail, true, false, false},
		{BlockTypeRadio, false, true, false},
		{BlockTypeCheckbox, false, true, false},
		{BlockTypeDropdown, false, false, true},
		{BlockTypeButton, false, false, false},
	}
	for _, tc := range cases {
		if got := tc.typ.HasRequiredFlag(); got != tc.required {
			t.Fatalf("%s HasRequiredFlag = %v", tc.typ, got)
		}
		if got := tc.typ.UsesButtons(); got != tc.buttons {
			t.Fatalf("%s UsesButtons = %v", tc.typ, got)
		}
		if got := tc.typ.UsesOptions(); got != tc.options {
			t.Fatalf("%s UsesOptions = %v", tc.typ, got)
		}
	}
}

func TestFormSet_CloneIsDeep(t *testing.T) {
	hoisted := Block{Name: "Heading", Type: BlockTypeFormname}
	set := FormSet{
		Active: 1,
		Forms: []Form{
			{Hoisted: &hoisted},
			{Blocks: []Block{{Name: "Pick", Type: BlockTypeRadio, NumButtons: 1, ButtonNames: []string{"Yes"}}}},
		},
	}
	clone := set.Clone()
	clone.Forms[1].Blocks[0].ButtonNames[0] = "No"
	clone.Forms[0].Hoisted.Name = "Changed"

	if set.Forms[1].Blocks[0].ButtonNames[0] != "Yes" || hoisted.Name != "Heading" {
		t.Fatalf("clone shares storage with original")
	}
	if clone.Forms[0].HasBlockList() {
		t.Fatalf("pseudo-form must not gain a block list")
	}
	if got := clone.Forms[0].Title(); got != "Changed" {
		t.Fatalf("unexpected title %q", got)
	}
	active, ok := set.ActiveForm()
	if !ok || len(active.Blocks) != 1 {
		t.Fatalf("unexpected active form %+v", active)
	}
}
