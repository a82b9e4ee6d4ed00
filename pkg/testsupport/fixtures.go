package testsupport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-formbuilder/pkg/model"
)

// SurveyFormSet returns a two-form set covering every rendering path: a
// formname heading, required inputs, radio buttons, a dropdown and a submit
// button. The first form is selected.
func SurveyFormSet() pkgmodel.FormSet {
	return pkgmodel.FormSet{
		Active: 0,
		Forms: []pkgmodel.Form{
			{
				Blocks: []pkgmodel.Block{
					{Name: "Customer Feedback", Type: pkgmodel.BlockTypeFormname},
					{Name: "Email", Type: pkgmodel.BlockTypeEmail, IsRequired: true},
					{Name: "Visit Date", Type: pkgmodel.BlockTypeDate},
					{
						Name:        "Rating",
						Type:        pkgmodel.BlockTypeRadio,
						NumButtons:  3,
						ButtonNames: []string{"Good", "Okay", "Poor"},
					},
					{
						Name:    "Department",
						Type:    pkgmodel.BlockTypeDropdown,
						Options: []string{"Sales", "Support"},
					},
					{Name: "Comments", Type: pkgmodel.BlockTypeTextarea},
					{Name: "Submit", Type: pkgmodel.BlockTypeButton},
				},
			},
			{
				Blocks: []pkgmodel.Block{
					{Name: "Age", Type: pkgmodel.BlockTypeNumber, IsRequired: true},
				},
			},
		},
	}
}

// HoistedFormSet returns a set whose second form is a pseudo-form left by
// dragging a formname block.
func HoistedFormSet() pkgmodel.FormSet {
	set := SurveyFormSet()
	heading := set.Forms[0].Blocks[0].Clone()
	set.Forms[0].Blocks = set.Forms[0].Blocks[1:]
	set.Forms = append(set.Forms[:1], append([]pkgmodel.Form{{Hoisted: &heading}}, set.Forms[1:]...)...)
	return set
}

// MustLoadFormSet loads a JSON fixture into a FormSet.
func MustLoadFormSet(t *testing.T, path string) pkgmodel.FormSet {
	t.Helper()

	set, err := LoadFormSet(path)
	if err != nil {
		t.Fatalf("load form set: %v", err)
	}
	return set
}

// LoadFormSet reads a JSON fixture into a FormSet, returning an error for
// callers managing setup outside of *testing.T.
func LoadFormSet(path string) (pkgmodel.FormSet, error) {
	if path == "" {
		return pkgmodel.FormSet{}, errors.New("testsupport: form set path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgmodel.FormSet{}, fmt.Errorf("testsupport: read form set: %w", err)
	}
	var out pkgmodel.FormSet
	if err := json.Unmarshal(data, &out); err != nil {
		return pkgmodel.FormSet{}, fmt.Errorf("testsupport: unmarshal form set: %w", err)
	}
	return out, nil
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
