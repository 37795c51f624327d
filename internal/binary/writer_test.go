package binary

import (
	"bytes"
	"testing"
)

func TestSafeWriter_Encodings(t *testing.T) {
	tests := []struct {
		write func(sw *SafeWriter) error
		name  string
		want  []byte
	}{
		{
			name:  "uint8",
			write: func(sw *SafeWriter) error { return Write[uint8](sw, 0x42) },
			want:  []byte{0x42},
		},
		{
			name:  "uint16 big-endian",
			write: func(sw *SafeWriter) error { return Write[uint16](sw, 0xABCD) },
			want:  []byte{0xAB, 0xCD},
		},
		{
			name:  "uint32 big-endian",
			write: func(sw *SafeWriter) error { return Write[uint32](sw, 0x12345678) },
			want:  []byte{0x12, 0x34, 0x56, 0x78},
		},
		{
			name:  "uint64 big-endian",
			write: func(sw *SafeWriter) error { return Write[uint64](sw, 0x0102030405060708) },
			want:  []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		},
		{
			name:  "uint16 little-endian",
			write: func(sw *SafeWriter) error { return WriteLE[uint16](sw, 0x1234) },
			want:  []byte{0x34, 0x12},
		},
		{
			name:  "uint32 little-endian",
			write: func(sw *SafeWriter) error { return WriteLE[uint32](sw, 0x12345678) },
			want:  []byte{0x78, 0x56, 0x34, 0x12},
		},
		{
			name:  "string",
			write: func(sw *SafeWriter) error { return sw.WriteString("IHDR") },
			want:  []byte("IHDR"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			sw := NewSafeWriter(buf)

			if err := tt.write(sw); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("got % x, want % x", buf.Bytes(), tt.want)
			}
			if sw.Offset() != int64(len(tt.want)) {
				t.Errorf("Offset() = %d, want %d", sw.Offset(), len(tt.want))
			}
		})
	}
}

// A segment written with SafeWriter must read back through Cursor.
func TestSafeWriter_RoundTripsThroughCursor(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	_ = Write[uint8](sw, 0xFF)
	_ = Write[uint8](sw, 0xFE)
	_ = Write[uint16](sw, 2+5)
	_ = sw.WriteString("hello")

	c := NewCursor(buf.Bytes(), "")
	marker, err := c.ReadU16BE("marker")
	if err != nil || marker != 0xFFFE {
		t.Fatalf("marker = 0x%04x, %v", marker, err)
	}
	length, err := c.ReadU16BE("length")
	if err != nil || length != 7 {
		t.Fatalf("length = %d, %v", length, err)
	}
	payload, err := c.Take(int(length)-2, "payload")
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if string(payload) != "hello" {
		t.Errorf("payload = %q, want %q", payload, "hello")
	}
	if !c.AtEnd() {
		t.Errorf("expected cursor at end, %d bytes remain", c.Remaining())
	}
}
