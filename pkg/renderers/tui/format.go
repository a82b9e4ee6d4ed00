package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Encode serializes set in the requested format.
func Encode(set model.FormSet, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatJSON, "":
		out, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return append(out, '\n'), nil
	case OutputFormatYAML:
		out, err := yaml.Marshal(set)
		if err != nil {
			return nil, fmt.Errorf("tui: encode yaml: %w", err)
		}
		return out, nil
	case OutputFormatPrettyText:
		return []byte(Pretty(set)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Pretty renders an outline of every form and its blocks.
func Pretty(set model.FormSet) string {
	if len(set.Forms) == 0 {
		return "No forms.\n"
	}
	var b strings.Builder
	for formIndex, form := range set.Forms {
		b.WriteString(formHeading(formIndex, form, formIndex == set.Active))
		b.WriteByte('\n')
		if !form.HasBlockList() {
			continue
		}
		if len(form.Blocks) == 0 {
			b.WriteString("  (no blocks)\n")
			continue
		}
		for index, block := range form.Blocks {
			fmt.Fprintf(&b, "  %d. %s\n", index+1, blockLine(block))
		}
	}
	return b.String()
}

func formHeading(index int, form model.Form, selected bool) string {
	heading := fmt.Sprintf("Form %d", index+1)
	if form.Hoisted != nil {
		heading += fmt.Sprintf(": heading %q", form.Hoisted.Name)
	}
	if selected {
		heading += " [selected]"
	}
	if form.IsActive {
		heading += " [active]"
	}
	return heading
}

func blockLine(block model.Block) string {
	line := fmt.Sprintf("%s <%s>", block.Name, block.Type.Label())
	if block.IsRequired {
		line += " *"
	}
	if block.Type.UsesButtons() {
		line += " (" + strings.Join(block.ButtonNames, " | ") + ")"
	}
	if block.Type.UsesOptions() {
		line += " [" + strings.Join(block.Options, ", ") + "]"
	}
	return line
}
