package jpeg

import (
	"iter"
	"log/slog"

	"github.com/simonhull/imgmeta/internal/binary"
	"github.com/simonhull/imgmeta/internal/types"
)

// Segment is one marker and its payload, as found by the Scanner.
type Segment struct {
	// Payload aliases the scanned buffer. Nil for standalone markers.
	Payload []byte

	// Offset of the 0xFF byte that starts the marker.
	Offset int

	// Length is the declared length, which counts the two length bytes.
	// Zero for standalone markers.
	Length int

	Marker Marker
}

// Scanner walks the marker segments of a JPEG stream.
//
// Between segments the scanner resynchronises on the next byte pair that
// can start a marker, which steps over fill bytes and entropy-coded scan
// data. Scanning stops after EOI, at the end of the buffer, or at the first
// structural error.
//
//	s, err := jpeg.NewScanner(data, "", logger)
//	for s.Next() {
//		seg := s.Segment()
//		...
//	}
//	if err := s.Err(); err != nil { ... }
type Scanner struct {
	c      *binary.Cursor
	logger *slog.Logger
	err    error
	seg    Segment
	done   bool
}

// NewScanner checks the SOI marker and returns a Scanner positioned after it.
func NewScanner(data []byte, path string, logger *slog.Logger) (*Scanner, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := binary.NewCursor(data, path)
	soi, err := c.ReadU16BE("SOI marker")
	if err != nil || soi != 0xFF00|uint16(SOI) {
		return nil, &types.UnsupportedFormatError{
			Path:   path,
			Reason: "missing JPEG SOI marker",
		}
	}

	return &Scanner{c: c, logger: logger}, nil
}

// Next advances to the next segment. It returns false at the end of the
// stream or on error; call Err to tell them apart.
func (s *Scanner) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	if !s.resync() {
		s.done = true
		return false
	}

	start := s.c.Offset()
	// resync guarantees two bytes: 0xFF and a marker byte.
	_ = s.c.Skip(1, "marker prefix")
	b, _ := s.c.ReadU8("marker")
	m := Marker(b)

	s.seg = Segment{Marker: m, Offset: start}

	if m == EOI {
		s.done = true
		return true
	}
	if m.IsStandalone() {
		return true
	}

	length, err := s.c.ReadU16BE(m.String() + " length")
	if err != nil {
		s.err = types.Corrupt(types.ErrTruncatedSegment, s.c.Path(), start, err,
			"%s segment has no length field", m)
		return false
	}
	if length < 2 {
		s.err = types.Corrupt(types.ErrTruncatedSegment, s.c.Path(), start, nil,
			"%s segment length %d is below the minimum of 2", m, length)
		return false
	}

	payload, err := s.c.Take(int(length)-2, m.String()+" payload")
	if err != nil {
		s.err = types.Corrupt(types.ErrTruncatedSegment, s.c.Path(), start, err,
			"%s segment declares %d bytes but only %d remain", m, length-2, s.c.Remaining())
		return false
	}

	s.seg.Length = int(length)
	s.seg.Payload = payload
	return true
}

// resync moves the cursor to the next 0xFF that is followed by a byte other
// than 0x00 (stuffed data) or 0xFF (fill). It reports false when the buffer
// runs out first, leaving the cursor at the end.
func (s *Scanner) resync() bool {
	from := s.c.Offset()

	for s.c.Remaining() >= 2 {
		pair, _ := s.c.Peek(2, "marker")
		if pair[0] == 0xFF && pair[1] != 0x00 && pair[1] != 0xFF {
			if skipped := s.c.Offset() - from; skipped > 0 {
				s.logger.Debug("resynchronised on next marker",
					"from", from, "offset", s.c.Offset(), "skipped", skipped)
			}
			return true
		}

		_ = s.c.Skip(1, "resync")
		next := s.c.IndexByte(0xFF)
		if next < 0 {
			break
		}
		_ = s.c.Skip(next, "resync")
	}

	_ = s.c.Seek(s.c.Len(), "end of data")
	if skipped := s.c.Offset() - from; skipped > 0 {
		s.logger.Debug("no further markers", "from", from, "skipped", skipped)
	}
	return false
}

// Segment returns the segment found by the last successful call to Next.
func (s *Scanner) Segment() Segment {
	return s.seg
}

// Err returns the first structural error, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Offset returns the scanner's position in the buffer.
func (s *Scanner) Offset() int {
	return s.c.Offset()
}

// All returns an iterator over the remaining segments. Check Err after the
// loop.
func (s *Scanner) All() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for s.Next() {
			if !yield(s.seg) {
				return
			}
		}
	}
}
