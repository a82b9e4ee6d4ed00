package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Renderer converts a FormSet snapshot into a byte representation (HTML,
// plain text, JSON, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, set model.FormSet, options RenderOptions) ([]byte, error)
}
