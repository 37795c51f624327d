package imgmeta

import (
	"github.com/simonhull/imgmeta/internal/types"
)

// Format identifies an image container format.
type Format = types.Format

// Format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatJPEG    = types.FormatJPEG
	FormatPNG     = types.FormatPNG
)

// DetectFormat classifies data by its leading bytes.
//
// It returns FormatJPEG for a leading FF D8, FormatPNG for the full 8-byte PNG
// signature, and an *UnsupportedFormatError otherwise, including for inputs
// shorter than four bytes.
func DetectFormat(data []byte) (Format, error) {
	return types.DetectFormat(data, "")
}
