// Package types provides core data structures for image metadata.
//
// This package defines ImageMetadata, the Format enumeration, the error
// kinds, and the per-call ParseOptions shared by the root package and the
// format parsers.
package types

import (
	"fmt"
	"log/slog"
)

// ImageMetadata holds an image's dimensions and embedded comments.
//
// Width and Height are both positive whenever a parser returns without
// error. Comments keep the order in which they appear in the stream and are
// copies, so they stay valid after the input buffer is reused.
type ImageMetadata struct {
	Comments [][]byte
	Warnings []Warning
	Format   Format
	Width    uint32
	Height   uint32
}

// String returns a short summary, e.g. "PNG 640x480, 2 comments".
func (m ImageMetadata) String() string {
	noun := "comments"
	if len(m.Comments) == 1 {
		noun = "comment"
	}
	return fmt.Sprintf("%s %dx%d, %d %s", m.Format, m.Width, m.Height, len(m.Comments), noun)
}

// CommentStrings returns the comments converted to strings.
func (m ImageMetadata) CommentStrings() []string {
	out := make([]string, len(m.Comments))
	for i, c := range m.Comments {
		out[i] = string(c)
	}
	return out
}

// AddWarning records a non-fatal issue.
func (m *ImageMetadata) AddWarning(stage string, offset int64, format string, args ...any) {
	m.Warnings = append(m.Warnings, Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
	})
}

// ParseOptions is the per-call configuration handed to a format parser.
type ParseOptions struct {
	// Logger receives debug records; never nil once normalised.
	Logger *slog.Logger

	// Path is used in error messages only. Empty for in-memory data.
	Path string

	// Comments enables comment collection. When false, parsers stop as soon
	// as the dimensions are known.
	Comments bool

	// AllTextChunks records every PNG text chunk instead of only those
	// keyed "Comment".
	AllTextChunks bool

	// ExtendedText enables PNG zTXt and iTXt decoding.
	ExtendedText bool
}

// DefaultParseOptions returns options that collect comments and log nothing.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Logger:   slog.New(slog.DiscardHandler),
		Comments: true,
	}
}

// Log returns the logger, falling back to a discarding one.
func (o ParseOptions) Log() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
