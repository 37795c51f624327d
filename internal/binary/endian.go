package binary

import "encoding/binary"

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian uses big-endian byte order.
	// Used by: JPEG segment lengths and frame headers, every PNG integer.
	BigEndian Endianness = iota

	// LittleEndian uses little-endian byte order.
	// Used by: Intel-ordered TIFF/EXIF blocks inside APP1 segments.
	LittleEndian
)

// ByteOrder returns the encoding/binary implementation for e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ReadEndian reads a numeric value of type T with the specified byte order
// and advances the cursor.
//
// This is the low-level function used by ReadValue and ReadValueLE.
// Most code should use the convenience wrappers instead.
//
// Example:
//
//	length, err := binary.ReadEndian[uint16](c, "segment length", binary.BigEndian)
func ReadEndian[T uint8 | uint16 | uint32 | uint64](c *Cursor, what string, endian Endianness) (T, error) {
	buf, err := c.Take(sizeOf[T](), what)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](buf, endian.ByteOrder()), nil
}
