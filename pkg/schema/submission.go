package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ExtensionBlockIndex records the originating block position on each
// property schema.
const ExtensionBlockIndex = "x-formbuilder-block"

const emailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`

// ErrNoBlockList is returned for pseudo-forms that cannot describe input.
var ErrNoBlockList = errors.New("schema: form has no block list")

// Field links a schema property to the block that produced it.
type Field struct {
	Key        string          `json:"key"`
	BlockIndex int             `json:"blockIndex"`
	Label      string          `json:"label"`
	Type       model.BlockType `json:"type"`
	Required   bool            `json:"required"`
}

// Submission is the object schema a respondent's answers must satisfy.
type Submission struct {
	Title  string
	Schema *openapi3.Schema
	Fields []Field
}

// MarshalJSON emits the OpenAPI schema document.
func (s Submission) MarshalJSON() ([]byte, error) {
	if s.Schema == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.Schema)
}

// FieldByKey returns the field registered under key.
func (s Submission) FieldByKey(key string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// Build derives the submission schema for form. Formname and button blocks
// carry no answer and are skipped. Property keys are slugs of the block
// names, de-duplicated with a numeric suffix.
func Build(form model.Form) (Submission, error) {
	if !form.HasBlockList() {
		return Submission{}, ErrNoBlockList
	}

	root := openapi3.NewObjectSchema()
	root.Title = form.Title()
	out := Submission{Title: root.Title, Schema: root}

	used := make(map[string]int)
	for idx, block := range form.Blocks {
		if !block.Type.Valid() {
			return Submission{}, fmt.Errorf("schema: block %d has unknown type %q", idx, block.Type)
		}
		prop := propertySchema(block)
		if prop == nil {
			continue
		}
		key := uniqueKey(slug(block.Name, idx), used)
		prop.Title = block.Name
		prop.Extensions = map[string]any{ExtensionBlockIndex: idx}
		root.WithProperty(key, prop)

		required := block.IsRequired && block.Type.HasRequiredFlag()
		if required {
			root.Required = append(root.Required, key)
		}
		out.Fields = append(out.Fields, Field{
			Key:        key,
			BlockIndex: idx,
			Label:      block.Name,
			Type:       block.Type,
			Required:   required,
		})
	}
	return out, nil
}

func propertySchema(block model.Block) *openapi3.Schema {
	switch block.Type {
	case model.BlockTypeText, model.BlockTypeTextarea:
		return requiredString(openapi3.NewStringSchema(), block)
	case model.BlockTypeEmail:
		return requiredString(openapi3.NewStringSchema().WithFormat("email").WithPattern(emailPattern), block)
	case model.BlockTypeDate:
		return requiredString(openapi3.NewStringSchema().WithFormat("date"), block)
	case model.BlockTypeNumber:
		return openapi3.NewFloat64Schema()
	case model.BlockTypeDropdown:
		return openapi3.NewStringSchema().WithEnum(toAny(block.Options)...)
	case model.BlockTypeRadio:
		return openapi3.NewStringSchema().WithEnum(toAny(buttonNames(block))...)
	case model.BlockTypeCheckbox:
		items := openapi3.NewStringSchema().WithEnum(toAny(buttonNames(block))...)
		return openapi3.NewArraySchema().WithItems(items).WithUniqueItems(true)
	default:
		return nil
	}
}

func requiredString(s *openapi3.Schema, block model.Block) *openapi3.Schema {
	if block.IsRequired {
		return s.WithMinLength(1)
	}
	return s
}

func buttonNames(block model.Block) []string {
	return block.ButtonNames[:min(block.NumButtons, len(block.ButtonNames))]
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func slug(name string, idx int) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	out := strings.TrimSuffix(b.String(), "_")
	if out == "" {
		return "field_" + strconv.Itoa(idx)
	}
	return out
}

func uniqueKey(base string, used map[string]int) string {
	count := used[base]
	used[base] = count + 1
	if count == 0 {
		return base
	}
	key := base + "_" + strconv.Itoa(count+1)
	for used[key] > 0 {
		count++
		key = base + "_" + strconv.Itoa(count+1)
	}
	used[key] = 1
	return key
}
