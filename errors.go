package imgmeta

import (
	"github.com/simonhull/imgmeta/internal/types"
)

// Error kinds, matched with errors.Is. Every error returned by ReadBytes and
// ReadFile matches one of them; ErrorKind picks it out. A structural error
// caused by a short read also matches ErrUnexpectedEOF.
var (
	ErrIO                 = types.ErrIO
	ErrUnexpectedEOF      = types.ErrUnexpectedEOF
	ErrUnrecognizedFormat = types.ErrUnrecognizedFormat
	ErrTruncatedSegment   = types.ErrTruncatedSegment
	ErrTruncatedChunk     = types.ErrTruncatedChunk
	ErrMissingDimensions  = types.ErrMissingDimensions
	ErrInvalidHeader      = types.ErrInvalidHeader
)

// OutOfBoundsError reports a read past the end of the data.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError reports data that is neither JPEG nor PNG.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError reports a broken JPEG or PNG structure. Its Kind says
// which.
type CorruptedFileError = types.CorruptedFileError

// IOError reports a file that could not be read.
type IOError = types.IOError

// Warning is a non-fatal issue met while collecting comments.
type Warning = types.Warning
