package imgmeta

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	// Register the format parsers.
	_ "github.com/simonhull/imgmeta/internal/jpeg"
	_ "github.com/simonhull/imgmeta/internal/png"

	"github.com/simonhull/imgmeta/internal/registry"
	"github.com/simonhull/imgmeta/internal/types"
)

// ImageMetadata holds an image's format, dimensions and comments.
//
// Width and Height are positive. Comments are in stream order and never
// alias the input buffer:
//
//	for _, c := range meta.Comments {
//		fmt.Printf("%q\n", c)
//	}
type ImageMetadata = types.ImageMetadata

// ReadBytes extracts dimensions and comments from an in-memory JPEG or PNG.
//
// The format is detected from the leading bytes; data that is neither fails
// with ErrUnrecognizedFormat without being parsed further. The input is only
// read, never retained.
//
// Example:
//
//	meta, err := imgmeta.ReadBytes(data)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%dx%d\n", meta.Width, meta.Height)
func ReadBytes(data []byte, opts ...Option) (*ImageMetadata, error) {
	return readBytes(data, "", newOptions(opts))
}

func readBytes(data []byte, path string, options *readOptions) (*ImageMetadata, error) {
	format, err := types.DetectFormat(data, path)
	if err != nil {
		return nil, err
	}

	parser := registry.Get(format)
	if parser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for format %s", format),
		}
	}

	logger := options.logger
	if path != "" {
		logger = logger.With("path", path)
	}
	parseOpts := options.parseOptions(path)
	parseOpts.Logger = logger

	meta, err := parser.Parse(data, parseOpts)
	if err != nil {
		return nil, err
	}

	// Only PNG text chunks produce warnings.
	if options.strictParsing && len(meta.Warnings) > 0 {
		w := meta.Warnings[0]
		return nil, &CorruptedFileError{
			Kind:   ErrTruncatedChunk,
			Path:   path,
			Offset: w.Offset,
			Reason: "strict parsing: " + w.Message,
		}
	}

	if options.ignoreWarnings {
		meta.Warnings = nil
	}

	return meta, nil
}

// ReadFile reads the file at path and extracts its metadata.
//
// A file that cannot be read fails with an *IOError; parse errors carry the
// path. The whole file is read into memory.
//
// Example:
//
//	meta, err := imgmeta.ReadFile("photo.jpg")
//	if errors.Is(err, imgmeta.ErrUnrecognizedFormat) {
//		// not an image we understand
//	}
func ReadFile(path string, opts ...Option) (*ImageMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	return readBytes(data, path, newOptions(opts))
}

// ReadFileContext is ReadFile with a context checked before the file is
// read.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	meta, err := imgmeta.ReadFileContext(ctx, "photo.png")
func ReadFileContext(ctx context.Context, path string, opts ...Option) (*ImageMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return ReadFile(path, opts...)
}

// ReadMany reads multiple files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any file fails, or ctx is cancelled, no results are returned and the
// first error is reported.
//
// Example:
//
//	metas, err := imgmeta.ReadMany(ctx, []string{"a.jpg", "b.png"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, m := range metas {
//		fmt.Println(m)
//	}
func ReadMany(ctx context.Context, paths []string, opts ...Option) ([]*ImageMetadata, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*ImageMetadata, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			meta, err := ReadFileContext(ctx, path, opts...)
			if err != nil {
				return err
			}

			results[i] = meta
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// ErrorKind returns the sentinel that err matches, or nil when err is not
// one of this package's errors.
//
//	switch imgmeta.ErrorKind(err) {
//	case imgmeta.ErrIO:
//		...
//	}
func ErrorKind(err error) error {
	for _, kind := range []error{
		ErrIO,
		ErrUnrecognizedFormat,
		ErrTruncatedSegment,
		ErrTruncatedChunk,
		ErrMissingDimensions,
		ErrInvalidHeader,
		ErrUnexpectedEOF,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
