package imgmeta

import (
	"log/slog"

	"github.com/simonhull/imgmeta/internal/types"
)

// Option configures a read.
//
// Options use the functional options pattern:
//
//	meta, err := imgmeta.ReadFile("photo.png",
//	    imgmeta.WithExtendedText(),
//	    imgmeta.WithLogger(logger),
//	)
type Option func(*readOptions)

// readOptions holds the configuration for one call.
type readOptions struct {
	logger         *slog.Logger
	noComments     bool // Dimensions only
	allTextChunks  bool // Every tEXt keyword, not just Comment
	extendedText   bool // Decode zTXt and iTXt
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Drop warnings from the result
}

// defaultOptions returns the default configuration.
func defaultOptions() *readOptions {
	return &readOptions{
		logger: slog.New(slog.DiscardHandler),
	}
}

func newOptions(opts []Option) *readOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// parseOptions converts the options for the format parsers.
func (o *readOptions) parseOptions(path string) types.ParseOptions {
	return types.ParseOptions{
		Logger:        o.logger,
		Path:          path,
		Comments:      !o.noComments,
		AllTextChunks: o.allTextChunks,
		ExtendedText:  o.extendedText,
	}
}

// WithLogger sends debug records about the parse to logger.
//
// By default nothing is logged. The parsers log marker resynchronisation,
// skipped text chunks and early termination at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *readOptions) {
		o.logger = logger
	}
}

// WithoutComments reads dimensions only.
//
// Parsing stops as soon as width and height are known, which for PNG is
// right after IHDR. ImageMetadata.Comments is nil.
func WithoutComments() Option {
	return func(o *readOptions) {
		o.noComments = true
	}
}

// WithAllTextChunks records the text of every PNG tEXt chunk.
//
// By default only chunks keyed "Comment" (in any ASCII case) are recorded.
// JPEG is unaffected.
func WithAllTextChunks() Option {
	return func(o *readOptions) {
		o.allTextChunks = true
	}
}

// WithExtendedText also decodes PNG zTXt and iTXt chunks, inflating
// compressed text. The same keyword rule applies as for tEXt.
func WithExtendedText() Option {
	return func(o *readOptions) {
		o.extendedText = true
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default a malformed text chunk contributes an empty comment and a
// warning. With strict parsing the read fails with a *CorruptedFileError
// instead.
//
// Example:
//
//	meta, err := imgmeta.ReadFile("photo.png", imgmeta.WithStrictParsing())
//	// err != nil if ANY text chunk was malformed
func WithStrictParsing() Option {
	return func(o *readOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings drops warnings from the result.
//
// ImageMetadata.Warnings will always be empty. Comments are unaffected.
func WithIgnoreWarnings() Option {
	return func(o *readOptions) {
		o.ignoreWarnings = true
	}
}
