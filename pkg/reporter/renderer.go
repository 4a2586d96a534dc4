package reporter

import (
	"context"

	"github.com/yaklabco/gotok/pkg/analysis"
)

// Renderer presents an analyzed report. Renderers that work from the
// aggregated views rather than raw token lists implement this instead of
// Reporter and are adapted by newRendererFacade.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}
