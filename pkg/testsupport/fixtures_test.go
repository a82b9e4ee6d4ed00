package testsupport

import (
	"path/filepath"
	"testing"

	pkgmodel "github.com/goliatone/go-formbuilder/pkg/model"
)

func TestSurveyFormSet_MatchesGolden(t *testing.T) {
	path := filepath.Join("testdata", "survey_formset.json")
	set := SurveyFormSet()
	WriteGolden(t, path, set)

	want := MustLoadFormSet(t, path)
	if diff := CompareGolden(want, set); diff != "" {
		t.Fatalf("fixture drifted from golden (-want +got):\n%s", diff)
	}
}

func TestHoistedFormSet(t *testing.T) {
	set := HoistedFormSet()
	if len(set.Forms) != 3 {
		t.Fatalf("expected 3 forms, got %d", len(set.Forms))
	}
	pseudo := set.Forms[1]
	if pseudo.HasBlockList() || pseudo.Hoisted == nil || pseudo.Hoisted.Type != pkgmodel.BlockTypeFormname {
		t.Fatalf("expected pseudo-form, got %+v", pseudo)
	}
	if set.Forms[0].Title() != "" {
		t.Fatalf("heading should have left the first form")
	}
	if SurveyFormSet().Forms[0].Title() != "Customer Feedback" {
		t.Fatalf("HoistedFormSet mutated the shared fixture")
	}
}

func TestLoadFormSet_Errors(t *testing.T) {
	if _, err := LoadFormSet(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadFormSet(filepath.Join("testdata", "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
