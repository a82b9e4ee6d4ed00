package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path       string `json:"path,omitempty"`
	Field      string `json:"field,omitempty"`
	Label      string `json:"label,omitempty"`
	BlockIndex int    `json:"blockIndex"`
	Message    string `json:"message"`
}

// SchemaValidationResult captures the outcome of checking one submission.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// ValidateSubmission checks a respondent payload against the schema derived
// from form. Every violation is reported, not only the first one.
func ValidateSubmission(ctx context.Context, form model.Form, payload map[string]any) (SchemaValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return SchemaValidationResult{}, err
	}
	sub, err := schema.Build(form)
	if err != nil {
		return SchemaValidationResult{}, fmt.Errorf("validation: build schema: %w", err)
	}
	return Validate(sub, payload)
}

// Validate checks payload against a prebuilt submission schema.
func Validate(sub schema.Submission, payload map[string]any) (SchemaValidationResult, error) {
	result := SchemaValidationResult{Valid: true}
	if sub.Schema == nil {
		return result, errors.New("validation: submission schema is nil")
	}

	value, err := normalizePayload(payload)
	if err != nil {
		return result, err
	}

	verr := sub.Schema.VisitJSON(value, openapi3.MultiErrors())
	if verr == nil {
		return result, nil
	}

	result.Valid = false
	for _, item := range flatten(verr) {
		result.Issues = append(result.Issues, issueFromError(sub, item))
	}
	return result, nil
}

// normalizePayload round-trips the payload through JSON so typed slices and
// integers reach the validator as []any and float64.
func normalizePayload(payload map[string]any) (any, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("validation: encode payload: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("validation: decode payload: %w", err)
	}
	return out, nil
}

func flatten(err error) []error {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []error
		for _, item := range multi {
			out = append(out, flatten(item)...)
		}
		return out
	}
	return []error{err}
}

func issueFromError(sub schema.Submission, err error) SchemaIssue {
	issue := SchemaIssue{BlockIndex: -1, Message: strings.TrimSpace(err.Error())}

	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return issue
	}
	if reason := strings.TrimSpace(schemaErr.Reason); reason != "" {
		issue.Message = reason
	}

	pointer := schemaErr.JSONPointer()
	if len(pointer) == 0 {
		return issue
	}
	issue.Path = "/" + strings.Join(pointer, "/")
	issue.Field = pointer[0]
	if field, ok := sub.FieldByKey(pointer[0]); ok {
		issue.Label = field.Label
		issue.BlockIndex = field.BlockIndex
	}
	return issue
}
