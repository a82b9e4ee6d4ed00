package gotemplate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// toContext turns view data into a pongo2 context. Maps are copied as is;
// anything else goes through its JSON form so templates see model values
// (blocks, forms, editor state) by their json keys, e.g. block.isRequired.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		out := make(pongo2.Context, len(v))
		for key, value := range v {
			converted, err := plain(value)
			if err != nil {
				return nil, fmt.Errorf("gotemplate: %s: %w", key, err)
			}
			out[key] = converted
		}
		return out, nil
	}

	value, err := viaJSON(data)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: encode %T: %w", data, err)
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("gotemplate: template data must be an object, got %T", data)
	}
	return pongo2.Context(m), nil
}

// plain leaves values pongo2 handles natively alone and re-encodes structs.
func plain(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64, []string:
		return v, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			converted, err := plain(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := plain(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := plain(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	}
	return viaJSON(value)
}

func viaJSON(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}
	return numbers(decoded), nil
}

// numbers replaces json.Number so counts such as numButtons print as "3".
func numbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		f, _ := v.Float64()
		return f
	case map[string]any:
		for key, item := range v {
			v[key] = numbers(item)
		}
	case []any:
		for i, item := range v {
			v[i] = numbers(item)
		}
	}
	return value
}
