// Package render converts an HTML document into a PDF file. The orchestrator
// only depends on the Renderer interface; the headless-Chrome implementation
// lives here so it can be swapped out in tests.
package render

import "context"

// Renderer turns an HTML string into a PDF written to outPath.
type Renderer interface {
	RenderPDF(ctx context.Context, html string, outPath string) error
}
