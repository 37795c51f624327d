package types

import (
	"errors"
	"fmt"
)

// Error kinds, matched with errors.Is. ErrUnexpectedEOF is the low-level
// cause inside a structural error, never the only kind of a parser error.
var (
	ErrIO                 = errors.New("i/o error")
	ErrUnexpectedEOF      = errors.New("unexpected end of data")
	ErrUnrecognizedFormat = errors.New("unrecognized image format")
	ErrTruncatedSegment   = errors.New("truncated JPEG segment")
	ErrTruncatedChunk     = errors.New("truncated PNG chunk")
	ErrMissingDimensions  = errors.New("missing image dimensions")
	ErrInvalidHeader      = errors.New("invalid PNG header")
)

// prefix renders "path: " when a path is known. Errors from in-memory
// parsing have no path.
func prefix(path string) string {
	if path == "" {
		return ""
	}
	return path + ": "
}

// OutOfBoundsError is returned when a read would run past the end of the data.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%soffset %d out of bounds (data size: %d) while reading %s",
			prefix(e.Path), e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%sread of %d bytes at offset %d would exceed data size %d while reading %s",
		prefix(e.Path), e.Length, e.Offset, e.Size, e.What)
}

// Is reports whether target is ErrUnexpectedEOF.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrUnexpectedEOF
}

// UnsupportedFormatError is returned when the data is neither JPEG nor PNG.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%sunsupported format: %s", prefix(e.Path), e.Reason)
}

// Is reports whether target is ErrUnrecognizedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnrecognizedFormat
}

// CorruptedFileError is returned when the container structure is invalid.
//
// Kind is one of ErrTruncatedSegment, ErrTruncatedChunk, ErrMissingDimensions
// or ErrInvalidHeader. Err optionally holds the low-level cause, usually an
// *OutOfBoundsError.
type CorruptedFileError struct {
	Kind   error
	Err    error
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	msg := fmt.Sprintf("%scorrupted file at offset %d: %s", prefix(e.Path), e.Offset, e.Reason)
	if e.Kind != nil {
		msg += " (" + e.Kind.Error() + ")"
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *CorruptedFileError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// IOError is returned when the image file cannot be read.
type IOError struct {
	Err  error
	Path string
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%sread file: %v", prefix(e.Path), e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings come from auxiliary data only: malformed or undecodable text
// chunks. Dimensions never degrade into a warning.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "comments", "header"

	// Warning message
	Message string

	// Offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// Corrupt builds a *CorruptedFileError of the given kind.
func Corrupt(kind error, path string, offset int, cause error, format string, args ...any) *CorruptedFileError {
	return &CorruptedFileError{
		Kind:   kind,
		Err:    cause,
		Path:   path,
		Reason: fmt.Sprintf(format, args...),
		Offset: int64(offset),
	}
}
