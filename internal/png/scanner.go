package png

import (
	"iter"
	"log/slog"

	"github.com/simonhull/imgmeta/internal/binary"
	"github.com/simonhull/imgmeta/internal/types"
)

// Chunk types the parser acts on.
const (
	chunkIHDR = "IHDR"
	chunkIEND = "IEND"
	chunkTEXt = "tEXt"
	chunkZTXt = "zTXt"
	chunkITXt = "iTXt"
)

// Chunk is one PNG chunk as found by the Scanner.
type Chunk struct {
	// Data aliases the scanned buffer.
	Data []byte

	// Type is the four-letter chunk type, e.g. "IHDR".
	Type string

	// Offset of the chunk's length field.
	Offset int

	// Length is the declared data length.
	Length int

	// CRC is read but never verified.
	CRC uint32
}

// Critical reports whether the chunk is critical (upper-case first letter).
func (c Chunk) Critical() bool {
	return len(c.Type) == 4 && c.Type[0]&0x20 == 0
}

// Scanner walks the chunks of a PNG stream.
//
// Scanning stops after IEND, at the end of the buffer, or at the first chunk
// whose header, data or CRC runs past the end of the buffer.
type Scanner struct {
	c      *binary.Cursor
	logger *slog.Logger
	err    error
	chunk  Chunk
	done   bool
}

// NewScanner checks the signature and returns a Scanner positioned on the
// first chunk.
func NewScanner(data []byte, path string, logger *slog.Logger) (*Scanner, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := binary.NewCursor(data, path)
	sig, err := c.Take(len(types.PNGSignature), "PNG signature")
	if err != nil || string(sig) != types.PNGSignature {
		return nil, &types.UnsupportedFormatError{
			Path:   path,
			Reason: "missing PNG signature",
		}
	}

	return &Scanner{c: c, logger: logger}, nil
}

// Next advances to the next chunk. It returns false at the end of the
// stream or on error; call Err to tell them apart.
//
// After a failed Next, Chunk still reports the type and offset of the chunk
// that could not be read, when its header was complete.
func (s *Scanner) Next() bool {
	if s.done || s.err != nil {
		return false
	}
	if s.c.AtEnd() {
		s.done = true
		return false
	}

	start := s.c.Offset()
	s.chunk = Chunk{Offset: start}

	cr := binary.NewChainReader(s.c)
	length := binary.ReadChained[uint32](cr, "chunk length")
	typ := cr.Bytes(4, "chunk type")
	if err := cr.Error(); err != nil {
		s.err = types.Corrupt(types.ErrTruncatedChunk, s.c.Path(), start, err,
			"chunk header needs 8 bytes, %d remain", s.c.Len()-start)
		return false
	}

	s.chunk.Type = string(typ)
	s.chunk.Length = int(length)

	// Compare in 64 bits: a hostile length can exceed int on 32-bit targets.
	if uint64(length) > uint64(s.c.Remaining()) {
		s.err = types.Corrupt(types.ErrTruncatedChunk, s.c.Path(), start, nil,
			"%s chunk declares %d bytes but only %d remain", s.chunk.Type, length, s.c.Remaining())
		return false
	}

	data, _ := s.c.Take(int(length), s.chunk.Type+" data")
	crc, err := s.c.ReadU32BE(s.chunk.Type + " CRC")
	if err != nil {
		s.err = types.Corrupt(types.ErrTruncatedChunk, s.c.Path(), start, err,
			"%s chunk is missing its CRC", s.chunk.Type)
		return false
	}

	s.chunk.Data = data
	s.chunk.CRC = crc

	if s.chunk.Type == chunkIEND {
		s.done = true
		if rest := s.c.Remaining(); rest > 0 {
			s.logger.Debug("ignoring data after IEND", "offset", s.c.Offset(), "bytes", rest)
		}
	}
	return true
}

// Chunk returns the chunk found by the last call to Next.
func (s *Scanner) Chunk() Chunk {
	return s.chunk
}

// Err returns the first structural error, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Offset returns the scanner's position in the buffer.
func (s *Scanner) Offset() int {
	return s.c.Offset()
}

// All returns an iterator over the remaining chunks. Check Err after the
// loop.
func (s *Scanner) All() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for s.Next() {
			if !yield(s.chunk) {
				return
			}
		}
	}
}
