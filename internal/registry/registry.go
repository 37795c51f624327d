// Package registry manages format-specific parsers for image types.
package registry

import (
	"slices"

	"github.com/simonhull/imgmeta/internal/types"
)

// FormatParser is the interface all format parsers implement.
type FormatParser interface {
	// Parse extracts dimensions and comments from a complete image held in
	// memory. Format is set by the parser; implementations must not retain
	// data after returning.
	Parse(data []byte, opts types.ParseOptions) (*types.ImageMetadata, error)
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]FormatParser)

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser FormatParser) {
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) FormatParser {
	return parsers[format]
}

// Formats returns the registered formats in ascending order.
func Formats() []types.Format {
	out := make([]types.Format, 0, len(parsers))
	for f := range parsers {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}
