// Package formatter cleans up raw transcription text, either through the
// remote Gemini API or a local filler-stripping fallback.
package formatter

import "context"

// Formatter turns a raw transcript into styled text. Implementations may
// fail; callers must treat the pre-formatting text as the fallback result.
type Formatter interface {
	Name() string
	Format(ctx context.Context, text string) (string, error)
}
