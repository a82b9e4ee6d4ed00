package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

var defaultFilters = map[string]pongo2.FilterFunction{
	"trim":       filterTrim,
	"blocklabel": filterBlockLabel,
}

func registerFilters(filters map[string]pongo2.FilterFunction) {
	for name, fn := range filters {
		if pongo2.FilterExists(name) {
			continue
		}
		_ = pongo2.RegisterFilter(name, fn)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterBlockLabel renders a block type id ("textarea") as its label.
func filterBlockLabel(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if t, ok := model.ParseBlockType(in.String()); ok {
		return pongo2.AsValue(t.Label()), nil
	}
	return in, nil
}
