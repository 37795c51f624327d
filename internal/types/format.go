package types

import (
	"bytes"
	"fmt"
)

// Format represents the detected image format
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatJPEG represents JPEG/JFIF images.
	FormatJPEG
	// FormatPNG represents PNG images.
	FormatPNG
)

// Signatures used by DetectFormat.
const (
	JPEGSignature = "\xff\xd8"
	PNGSignature  = "\x89PNG\r\n\x1a\n"

	// MinSniffLength is the shortest input DetectFormat will classify.
	MinSniffLength = 4
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatPNG:
		return "PNG"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatJPEG:
		return []string{".jpg", ".jpeg", ".jpe", ".jfif"}
	case FormatPNG:
		return []string{".png"}
	default:
		return nil
	}
}

// MIMEType returns the registered media type for this format.
func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// DetectFormat determines the image format by examining magic bytes.
//
// Only the leading bytes are inspected; the rest of the structure is left to
// the format parser. Inputs shorter than MinSniffLength are rejected.
func DetectFormat(data []byte, path string) (Format, error) {
	if len(data) < MinSniffLength {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("data too short (%d bytes)", len(data)),
		}
	}

	if bytes.HasPrefix(data, []byte(JPEGSignature)) {
		return FormatJPEG, nil
	}

	// The full PNG signature is required; its CR-LF and SUB bytes exist to
	// catch transfer corruption, so a partial match is not a PNG.
	if bytes.HasPrefix(data, []byte(PNGSignature)) {
		return FormatPNG, nil
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: fmt.Sprintf("unknown magic bytes 0x%x", data[:MinSniffLength]),
	}
}
