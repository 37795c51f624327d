// Package jpeg reads dimensions and COM comments from JPEG marker segments.
package jpeg

import (
	"bytes"

	"github.com/simonhull/imgmeta/internal/binary"
	"github.com/simonhull/imgmeta/internal/registry"
	"github.com/simonhull/imgmeta/internal/types"
)

// minFrameHeader is precision (1) + height (2) + width (2).
const minFrameHeader = 5

// frameHeader holds the fields of a start-of-frame payload that matter here.
type frameHeader struct {
	marker    Marker
	precision uint8
	height    uint16
	width     uint16
}

// parser implements registry.FormatParser for JPEG data
type parser struct{}

// Parse walks every segment up to EOI. The first frame marker supplies the
// dimensions; COM payloads are collected in order. With comments disabled
// the walk stops as soon as both dimensions are known.
func (p *parser) Parse(data []byte, opts types.ParseOptions) (*types.ImageMetadata, error) {
	logger := opts.Log().With("format", "JPEG")

	s, err := NewScanner(data, opts.Path, logger)
	if err != nil {
		return nil, err
	}

	meta := &types.ImageMetadata{Format: types.FormatJPEG}
	var frame *frameHeader
	frameOffset := 0

	for s.Next() {
		seg := s.Segment()

		switch {
		case seg.Marker.IsFrame():
			if frame != nil {
				logger.Debug("ignoring additional frame marker", "marker", seg.Marker.String(), "offset", seg.Offset)
				continue
			}
			fh, err := readFrameHeader(seg, opts.Path)
			if err != nil {
				return nil, err
			}
			frame = &fh
			frameOffset = seg.Offset
			logger.Debug("frame header",
				"marker", fh.marker.String(), "offset", seg.Offset,
				"width", fh.width, "height", fh.height, "precision", fh.precision)

		case seg.Marker == DNL:
			if frame == nil || frame.height != 0 {
				continue
			}
			lines, err := readLineCount(seg, opts.Path)
			if err != nil {
				return nil, err
			}
			frame.height = lines
			logger.Debug("height from DNL", "offset", seg.Offset, "height", lines)

		case seg.Marker == COM:
			if opts.Comments {
				meta.Comments = append(meta.Comments, bytes.Clone(seg.Payload))
			}
		}

		if !opts.Comments && frame != nil && frame.width != 0 && frame.height != 0 {
			logger.Debug("dimensions known, stopping early", "offset", s.Offset())
			break
		}
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	if frame == nil {
		return nil, types.Corrupt(types.ErrMissingDimensions, opts.Path, s.Offset(), nil,
			"no start-of-frame marker before end of data")
	}
	if frame.width == 0 || frame.height == 0 {
		return nil, types.Corrupt(types.ErrMissingDimensions, opts.Path, frameOffset, nil,
			"%s declares %dx%d and no DNL segment supplies the missing dimension",
			frame.marker, frame.width, frame.height)
	}

	meta.Width = uint32(frame.width)
	meta.Height = uint32(frame.height)
	return meta, nil
}

// readFrameHeader decodes precision, height and width from an SOFn payload.
func readFrameHeader(seg Segment, path string) (frameHeader, error) {
	if len(seg.Payload) < minFrameHeader {
		return frameHeader{}, types.Corrupt(types.ErrTruncatedSegment, path, seg.Offset, nil,
			"%s payload is %d bytes, need at least %d", seg.Marker, len(seg.Payload), minFrameHeader)
	}

	cr := binary.NewChainReader(binary.NewCursor(seg.Payload, path))
	fh := frameHeader{
		marker:    seg.Marker,
		precision: binary.ReadChained[uint8](cr, "sample precision"),
		height:    binary.ReadChained[uint16](cr, "frame height"),
		width:     binary.ReadChained[uint16](cr, "frame width"),
	}
	if err := cr.Error(); err != nil {
		return frameHeader{}, types.Corrupt(types.ErrTruncatedSegment, path, seg.Offset, err,
			"reading %s header", seg.Marker)
	}
	return fh, nil
}

// readLineCount decodes the number of lines from a DNL payload.
func readLineCount(seg Segment, path string) (uint16, error) {
	lines, err := binary.NewCursor(seg.Payload, path).ReadU16BE("DNL line count")
	if err != nil {
		return 0, types.Corrupt(types.ErrTruncatedSegment, path, seg.Offset, err,
			"DNL payload is %d bytes, need 2", len(seg.Payload))
	}
	return lines, nil
}

// init registers the JPEG parser
func init() {
	registry.Register(types.FormatJPEG, &parser{})
}
