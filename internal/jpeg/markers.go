package jpeg

import "fmt"

// Marker is the second byte of an FFxx marker pair.
type Marker uint8

// Markers the scanner distinguishes. SOFn = SOF0+n for n in 0-15 except 4,
// 8 and 12; RSTn = RST0+n for n in 0-7; APPn = APP0+n for n in 0-15.
const (
	TEM  Marker = 0x01
	SOF0 Marker = 0xC0
	DHT  Marker = 0xC4
	JPG  Marker = 0xC8
	DAC  Marker = 0xCC
	RST0 Marker = 0xD0
	RST7 Marker = 0xD7
	SOI  Marker = 0xD8
	EOI  Marker = 0xD9
	SOS  Marker = 0xDA
	DQT  Marker = 0xDB
	DNL  Marker = 0xDC
	DRI  Marker = 0xDD
	APP0 Marker = 0xE0
	COM  Marker = 0xFE
)

// IsFrame reports whether m is a start-of-frame marker, the family that
// carries the image dimensions.
func (m Marker) IsFrame() bool {
	if m < SOF0 || m > SOF0+0x0F {
		return false
	}
	return m != DHT && m != JPG && m != DAC
}

// IsStandalone reports whether m is followed directly by the next marker,
// with no length field.
func (m Marker) IsStandalone() bool {
	return m == SOI || m == EOI || m == TEM || (m >= RST0 && m <= RST7)
}

// String returns the conventional marker name, e.g. "SOF2" or "APP1".
func (m Marker) String() string {
	switch {
	case m == TEM:
		return "TEM"
	case m == DHT:
		return "DHT"
	case m == JPG:
		return "JPG"
	case m == DAC:
		return "DAC"
	case m.IsFrame():
		return fmt.Sprintf("SOF%d", m-SOF0)
	case m >= RST0 && m <= RST7:
		return fmt.Sprintf("RST%d", m-RST0)
	case m == SOI:
		return "SOI"
	case m == EOI:
		return "EOI"
	case m == SOS:
		return "SOS"
	case m == DQT:
		return "DQT"
	case m == DNL:
		return "DNL"
	case m == DRI:
		return "DRI"
	case m >= APP0 && m <= APP0+0x0F:
		return fmt.Sprintf("APP%d", m-APP0)
	case m >= 0xF0 && m <= 0xFD:
		return fmt.Sprintf("JPG%d", m-0xF0)
	case m == COM:
		return "COM"
	default:
		return fmt.Sprintf("0xFF%02X", uint8(m))
	}
}
