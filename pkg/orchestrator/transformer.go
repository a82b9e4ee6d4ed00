package orchestrator

import (
	"context"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Transformer mutates a form set copy before it is rendered or published.
// Implementations can rename blocks, drop forms or inject defaults.
type Transformer interface {
	Transform(ctx context.Context, set *model.FormSet) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, set *model.FormSet) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, set *model.FormSet) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, set)
}

// TrimNames strips surrounding whitespace from block names, button names and
// options.
func TrimNames() Transformer {
	return TransformerFunc(func(_ context.Context, set *model.FormSet) error {
		for f := range set.Forms {
			form := &set.Forms[f]
			for b := range form.Blocks {
				trimBlock(&form.Blocks[b])
			}
			if form.Hoisted != nil {
				trimBlock(form.Hoisted)
			}
		}
		return nil
	})
}

func trimBlock(block *model.Block) {
	block.Name = strings.TrimSpace(block.Name)
	for i := range block.ButtonNames {
		block.ButtonNames[i] = strings.TrimSpace(block.ButtonNames[i])
	}
	for i := range block.Options {
		block.Options[i] = strings.TrimSpace(block.Options[i])
	}
}

// Chain runs transformers in order, stopping at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, set *model.FormSet) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, set); err != nil {
				return err
			}
		}
		return nil
	})
}
