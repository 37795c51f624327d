// Package png reads dimensions and text comments from PNG chunks.
package png

import (
	"math"

	"github.com/simonhull/imgmeta/internal/binary"
	"github.com/simonhull/imgmeta/internal/registry"
	"github.com/simonhull/imgmeta/internal/types"
)

// minHeaderLength covers width and height; the remaining IHDR fields
// describe pixel layout and are optional here.
const minHeaderLength = 8

// header holds the IHDR fields. Only width and height are required.
type header struct {
	width     uint32
	height    uint32
	bitDepth  uint8
	colorType uint8
	interlace uint8
}

// parser implements registry.FormatParser for PNG data
type parser struct{}

// Parse walks the chunks up to IEND. IHDR must come first; text chunks
// after it are collected as comments.
func (p *parser) Parse(data []byte, opts types.ParseOptions) (*types.ImageMetadata, error) {
	logger := opts.Log().With("format", "PNG")

	s, err := NewScanner(data, opts.Path, logger)
	if err != nil {
		return nil, err
	}

	meta := &types.ImageMetadata{Format: types.FormatPNG}
	var hdr *header

	for s.Next() {
		ch := s.Chunk()

		if hdr == nil {
			h, err := readHeader(ch, opts.Path)
			if err != nil {
				return nil, err
			}
			hdr = &h
			logger.Debug("header",
				"width", h.width, "height", h.height,
				"bit_depth", h.bitDepth, "color_type", h.colorType, "interlace", h.interlace)

			if !opts.Comments {
				logger.Debug("dimensions known, stopping early", "offset", s.Offset())
				break
			}
			continue
		}

		switch ch.Type {
		case chunkTEXt:
			collectText(meta, ch, decodeTEXt, opts)
		case chunkZTXt:
			if opts.ExtendedText {
				collectText(meta, ch, decodeZTXt, opts)
			}
		case chunkITXt:
			if opts.ExtendedText {
				collectText(meta, ch, decodeITXt, opts)
			}
		case chunkIHDR:
			logger.Debug("ignoring duplicate IHDR", "offset", ch.Offset)
		}
	}

	if err := s.Err(); err != nil {
		// A non-IHDR first chunk is reported as such even when it is also
		// truncated.
		if failed := s.Chunk(); hdr == nil && failed.Type != "" && failed.Type != chunkIHDR {
			return nil, types.Corrupt(types.ErrInvalidHeader, opts.Path, failed.Offset, err,
				"first chunk is %q, want IHDR", failed.Type)
		}
		return nil, err
	}

	if hdr == nil {
		return nil, types.Corrupt(types.ErrInvalidHeader, opts.Path, s.Offset(), nil,
			"no IHDR chunk after signature")
	}

	meta.Width = hdr.width
	meta.Height = hdr.height
	return meta, nil
}

// readHeader validates the first chunk as IHDR and decodes it.
func readHeader(ch Chunk, path string) (header, error) {
	if ch.Type != chunkIHDR {
		return header{}, types.Corrupt(types.ErrInvalidHeader, path, ch.Offset, nil,
			"first chunk is %q, want IHDR", ch.Type)
	}
	if len(ch.Data) < minHeaderLength {
		return header{}, types.Corrupt(types.ErrInvalidHeader, path, ch.Offset, nil,
			"IHDR is %d bytes, need at least %d", len(ch.Data), minHeaderLength)
	}

	cr := binary.NewChainReader(binary.NewCursor(ch.Data, path))
	h := header{
		width:  binary.ReadChained[uint32](cr, "IHDR width"),
		height: binary.ReadChained[uint32](cr, "IHDR height"),
	}
	if cr.Remaining() >= 5 {
		h.bitDepth = binary.ReadChained[uint8](cr, "IHDR bit depth")
		h.colorType = binary.ReadChained[uint8](cr, "IHDR color type")
		cr.Discard(2, "IHDR compression and filter methods")
		h.interlace = binary.ReadChained[uint8](cr, "IHDR interlace method")
	}
	if err := cr.Error(); err != nil {
		return header{}, types.Corrupt(types.ErrInvalidHeader, path, ch.Offset, err, "reading IHDR")
	}

	if h.width == 0 || h.height == 0 {
		return header{}, types.Corrupt(types.ErrInvalidHeader, path, ch.Offset, nil,
			"IHDR declares %dx%d", h.width, h.height)
	}
	if h.width > math.MaxInt32 || h.height > math.MaxInt32 {
		return header{}, types.Corrupt(types.ErrInvalidHeader, path, ch.Offset, nil,
			"IHDR dimensions %dx%d exceed 2^31-1", h.width, h.height)
	}
	return h, nil
}

// collectText decodes a text chunk and records its text when the keyword
// qualifies. Decoding failures never fail the parse: the chunk contributes
// an empty comment and a warning instead.
func collectText(meta *types.ImageMetadata, ch Chunk, decode func([]byte) (textEntry, error), opts types.ParseOptions) {
	entry, err := decode(ch.Data)

	wanted := opts.AllTextChunks || isComment(entry.keyword)
	if err != nil && (entry.keyword == "" || wanted) {
		meta.AddWarning("comments", int64(ch.Offset), "malformed %s chunk: %v", ch.Type, err)
		opts.Log().Debug("malformed text chunk", "chunk", ch.Type, "offset", ch.Offset, "error", err)
		meta.Comments = append(meta.Comments, []byte{})
		return
	}
	if !wanted {
		return
	}
	meta.Comments = append(meta.Comments, entry.text)
}

// init registers the PNG parser
func init() {
	registry.Register(types.FormatPNG, &parser{})
}
