// Package binary provides type-safe binary reading primitives with bounds checking
package binary

import (
	"bytes"
	"encoding/binary"

	"github.com/simonhull/imgmeta/internal/types"
)

// Cursor is a forward reader over an in-memory buffer.
//
// Every read is checked against the end of the buffer. A read that does not
// fit returns *types.OutOfBoundsError and leaves the offset where it was.
// The buffer is never modified.
type Cursor struct {
	buf  []byte
	path string
	pos  int
}

// NewCursor creates a Cursor positioned at the start of buf.
func NewCursor(buf []byte, path string) *Cursor {
	return &Cursor{
		buf:  buf,
		path: path,
	}
}

// Path returns the file path associated with this cursor.
func (c *Cursor) Path() string {
	return c.path
}

// Offset returns the current offset.
func (c *Cursor) Offset() int {
	return c.pos
}

// Len returns the total size of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// AtEnd reports whether every byte has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.buf)
}

// outOfBounds builds the error for an n-byte read at the current offset.
func (c *Cursor) outOfBounds(n int, what string) error {
	return &types.OutOfBoundsError{
		Path:   c.path,
		What:   what,
		Offset: int64(c.pos),
		Length: n,
		Size:   int64(len(c.buf)),
	}
}

// Peek returns the next n bytes without advancing.
func (c *Cursor) Peek(n int, what string) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, c.outOfBounds(n, what)
	}
	return c.buf[c.pos : c.pos+n : c.pos+n], nil
}

// Take returns the next n bytes as a sub-slice and advances past them.
//
// The returned slice aliases the buffer and has its capacity clipped, so
// appending to it cannot overwrite the bytes that follow.
func (c *Cursor) Take(n int, what string) ([]byte, error) {
	b, err := c.Peek(n, what)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// Skip advances the offset by n bytes.
func (c *Cursor) Skip(n int, what string) error {
	if n < 0 || n > c.Remaining() {
		return c.outOfBounds(n, what)
	}
	c.pos += n
	return nil
}

// Seek moves to an absolute offset. Offsets past the end are rejected.
func (c *Cursor) Seek(off int, what string) error {
	if off < 0 || off > len(c.buf) {
		return &types.OutOfBoundsError{
			Path:   c.path,
			What:   what,
			Offset: int64(off),
			Size:   int64(len(c.buf)),
		}
	}
	c.pos = off
	return nil
}

// IndexByte returns the distance from the current offset to the next
// occurrence of b, or -1.
func (c *Cursor) IndexByte(b byte) int {
	return bytes.IndexByte(c.buf[c.pos:], b)
}

// ReadU8 reads one byte.
func (c *Cursor) ReadU8(what string) (uint8, error) {
	return ReadValue[uint8](c, what)
}

// ReadU16BE reads a big-endian uint16.
func (c *Cursor) ReadU16BE(what string) (uint16, error) {
	return ReadValue[uint16](c, what)
}

// ReadU16LE reads a little-endian uint16.
func (c *Cursor) ReadU16LE(what string) (uint16, error) {
	return ReadValueLE[uint16](c, what)
}

// ReadU32BE reads a big-endian uint32.
func (c *Cursor) ReadU32BE(what string) (uint32, error) {
	return ReadValue[uint32](c, what)
}

// sizeOf returns the encoded width of T in bytes.
func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// ReadValue reads a big-endian value of type T and advances the offset.
// T must be uint8, uint16, uint32, or uint64.
func ReadValue[T uint8 | uint16 | uint32 | uint64](c *Cursor, what string) (T, error) {
	return ReadEndian[T](c, what, BigEndian)
}

// ReadValueLE reads a little-endian value of type T and advances the offset.
func ReadValueLE[T uint8 | uint16 | uint32 | uint64](c *Cursor, what string) (T, error) {
	return ReadEndian[T](c, what, LittleEndian)
}

// decode converts exactly sizeOf[T]() bytes to a value.
func decode[T uint8 | uint16 | uint32 | uint64](buf []byte, order binary.ByteOrder) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(buf[0])
	case uint16:
		return T(order.Uint16(buf))
	case uint32:
		return T(order.Uint32(buf))
	default:
		return T(order.Uint64(buf))
	}
}

// ChainReader allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks.
type ChainReader struct {
	*Cursor
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(c *Cursor) *ChainReader {
	return &ChainReader{Cursor: c}
}

// ReadChained reads a big-endian value with deferred error checking.
// If a previous read failed, returns zero value without attempting read.
func ReadChained[T uint8 | uint16 | uint32 | uint64](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadValue[T](cr.Cursor, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}

	return val
}

// Bytes takes n bytes, accumulating any error.
func (cr *ChainReader) Bytes(n int, what string) []byte {
	if cr.err != nil {
		return nil
	}

	b, err := cr.Cursor.Take(n, what)
	if err != nil {
		cr.err = err
		return nil
	}

	return b
}

// Discard skips n bytes, accumulating any error.
func (cr *ChainReader) Discard(n int, what string) {
	if cr.err != nil {
		return
	}
	cr.err = cr.Cursor.Skip(n, what)
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
