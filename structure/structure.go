// Package structure turns flat extracted manuscript text into the structured
// article model.
//
// The primary implementation delegates to a generative model with a strict
// JSON schema; Heuristic is an offline fallback that recovers what it can
// from heading structure alone. Both return normalized content.
package structure

import (
	"context"

	"github.com/scigraf/jatsgen/article"
	"github.com/scigraf/jatsgen/extract"
)

// Structurer produces structured article content from an extracted document.
// Implementations must return normalized content (all sequences non-nil) and
// may return partially-filled data; completeness is judged downstream.
type Structurer interface {
	Structure(ctx context.Context, doc *extract.Document) (*article.Content, error)
}
