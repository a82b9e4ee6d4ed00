package validation

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func surveyForm() model.Form {
	return model.Form{Blocks: []model.Block{
		{Name: "Survey", Type: model.BlockTypeFormname},
		{Name: "Full name", Type: model.BlockTypeText, IsRequired: true},
		{Name: "Country", Type: model.BlockTypeDropdown, Options: []string{"NO", "SE"}},
		{Name: "Contact", Type: model.BlockTypeCheckbox, NumButtons: 2, ButtonNames: []string{"Email", "Phone"}},
		{Name: "Age", Type: model.BlockTypeNumber},
	}}
}

func TestValidateSubmission_Valid(t *testing.T) {
	result, err := ValidateSubmission(context.Background(), surveyForm(), map[string]any{
		"full_name": "Ada",
		"country":   "NO",
		"contact":   []string{"Email"},
		"age":       36,
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid submission: %#v", result.Issues)
	}
}

func TestValidateSubmission_ReportsEveryField(t *testing.T) {
	result, err := ValidateSubmission(context.Background(), surveyForm(), map[string]any{
		"country": "DK",
		"contact": []string{"Fax"},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected invalid submission")
	}

	var fields []string
	for _, issue := range result.Issues {
		fields = append(fields, issue.Field)
	}
	want := []string{"full_name", "country", "contact"}
	sorter := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(want, fields, sorter); diff != "" {
		t.Fatalf("issue fields mismatch (-want +got):\n%s", diff)
	}

	for _, issue := range result.Issues {
		if issue.Field == "country" && (issue.Label != "Country" || issue.BlockIndex != 2) {
			t.Fatalf("issue not linked to block: %+v", issue)
		}
	}
}

func TestValidateSubmission_PseudoForm(t *testing.T) {
	hoisted := model.Block{Name: "Heading", Type: model.BlockTypeFormname}
	if _, err := ValidateSubmission(context.Background(), model.Form{Hoisted: &hoisted}, nil); err == nil {
		t.Fatalf("expected error for pseudo-form")
	}
}
