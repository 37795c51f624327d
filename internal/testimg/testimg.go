// Package testimg builds small JPEG and PNG streams in memory.
//
// The streams are structurally valid containers with no decodable pixel
// data, which is all the metadata parsers look at. Builders panic on write
// failure since they only ever write to a bytes.Buffer.
package testimg

import (
	"bytes"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"

	"github.com/simonhull/imgmeta/internal/binary"
	"github.com/simonhull/imgmeta/internal/types"
)

// JPEG marker bytes (the second byte of the FFxx pair).
const (
	SOF0 = 0xC0
	SOF2 = 0xC2
	DHT  = 0xC4
	JPG  = 0xC8
	DAC  = 0xCC
	RST0 = 0xD0
	SOI  = 0xD8
	EOI  = 0xD9
	SOS  = 0xDA
	DQT  = 0xDB
	DNL  = 0xDC
	APP0 = 0xE0
	APP1 = 0xE1
	COM  = 0xFE
	TEM  = 0x01
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

// JPEG accumulates a JPEG stream.
type JPEG struct {
	sw  *binary.SafeWriter
	buf bytes.Buffer
}

// NewJPEG starts a stream with the SOI marker.
func NewJPEG() *JPEG {
	j := &JPEG{}
	j.sw = binary.NewSafeWriter(&j.buf)
	return j.Marker(SOI)
}

// Marker writes a standalone marker with no length field.
func (j *JPEG) Marker(m byte) *JPEG {
	check(binary.Write[uint8](j.sw, 0xFF))
	check(binary.Write[uint8](j.sw, m))
	return j
}

// Segment writes a marker, its length and payload.
func (j *JPEG) Segment(m byte, payload []byte) *JPEG {
	j.Marker(m)
	check(binary.Write[uint16](j.sw, uint16(len(payload)+2)))
	check(j.sw.WriteBytes(payload))
	return j
}

// JFIF writes a minimal APP0 JFIF header.
func (j *JPEG) JFIF() *JPEG {
	return j.Segment(APP0, []byte("JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00"))
}

// Comment writes a COM segment.
func (j *JPEG) Comment(text string) *JPEG {
	return j.Segment(COM, []byte(text))
}

// Frame writes a start-of-frame segment with a single 8-bit component.
func (j *JPEG) Frame(m byte, width, height uint16) *JPEG {
	payload := &bytes.Buffer{}
	sw := binary.NewSafeWriter(payload)
	check(binary.Write[uint8](sw, 8))
	check(binary.Write[uint16](sw, height))
	check(binary.Write[uint16](sw, width))
	check(sw.WriteBytes([]byte{1, 1, 0x11, 0}))
	return j.Segment(m, payload.Bytes())
}

// DQT writes a placeholder quantisation table segment.
func (j *JPEG) DQT() *JPEG {
	return j.Segment(DQT, append([]byte{0}, bytes.Repeat([]byte{1}, 64)...))
}

// Scan writes an SOS header followed by entropy-coded bytes. Any 0xFF in
// data must already be stuffed by the caller.
func (j *JPEG) Scan(data []byte) *JPEG {
	j.Segment(SOS, []byte{1, 1, 0, 0, 0x3F, 0})
	return j.Raw(data)
}

// Raw appends bytes verbatim.
func (j *JPEG) Raw(b []byte) *JPEG {
	check(j.sw.WriteBytes(b))
	return j
}

// EOI writes the end-of-image marker.
func (j *JPEG) EOI() *JPEG {
	return j.Marker(EOI)
}

// Bytes returns a copy of the stream so far.
func (j *JPEG) Bytes() []byte {
	return bytes.Clone(j.buf.Bytes())
}

// MinimalJPEG returns SOI, JFIF, DQT, SOF0, a one-byte scan and EOI.
func MinimalJPEG(width, height uint16) []byte {
	return NewJPEG().JFIF().DQT().Frame(SOF0, width, height).Scan([]byte{0x00}).EOI().Bytes()
}

// PNG accumulates a PNG stream.
type PNG struct {
	sw  *binary.SafeWriter
	buf bytes.Buffer
}

// NewPNG starts a stream with the PNG signature.
func NewPNG() *PNG {
	p := &PNG{}
	p.sw = binary.NewSafeWriter(&p.buf)
	check(p.sw.WriteString(types.PNGSignature))
	return p
}

// Chunk writes a chunk with a correct CRC.
func (p *PNG) Chunk(typ string, data []byte) *PNG {
	check(binary.Write[uint32](p.sw, uint32(len(data))))
	check(p.sw.WriteString(typ))
	check(p.sw.WriteBytes(data))

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	check(binary.Write[uint32](p.sw, crc.Sum32()))
	return p
}

// IHDR writes a header chunk for an 8-bit RGB image.
func (p *PNG) IHDR(width, height uint32) *PNG {
	data := &bytes.Buffer{}
	sw := binary.NewSafeWriter(data)
	check(binary.Write[uint32](sw, width))
	check(binary.Write[uint32](sw, height))
	check(sw.WriteBytes([]byte{8, 2, 0, 0, 0}))
	return p.Chunk("IHDR", data.Bytes())
}

// Text writes a tEXt chunk.
func (p *PNG) Text(keyword, text string) *PNG {
	return p.Chunk("tEXt", []byte(keyword+"\x00"+text))
}

// ZText writes a zTXt chunk with zlib-compressed text.
func (p *PNG) ZText(keyword, text string) *PNG {
	data := append([]byte(keyword+"\x00"), 0)
	return p.Chunk("zTXt", append(data, Deflate([]byte(text))...))
}

// IText writes an iTXt chunk, optionally compressing the text.
func (p *PNG) IText(keyword, lang, translated, text string, compressed bool) *PNG {
	data := []byte(keyword + "\x00")
	if compressed {
		data = append(data, 1, 0)
	} else {
		data = append(data, 0, 0)
	}
	data = append(data, lang+"\x00"+translated+"\x00"...)
	if compressed {
		data = append(data, Deflate([]byte(text))...)
	} else {
		data = append(data, text...)
	}
	return p.Chunk("iTXt", data)
}

// IDAT writes an image data chunk with arbitrary content.
func (p *PNG) IDAT(data []byte) *PNG {
	return p.Chunk("IDAT", data)
}

// IEND writes the trailer chunk.
func (p *PNG) IEND() *PNG {
	return p.Chunk("IEND", nil)
}

// Raw appends bytes verbatim.
func (p *PNG) Raw(b []byte) *PNG {
	check(p.sw.WriteBytes(b))
	return p
}

// Bytes returns a copy of the stream so far.
func (p *PNG) Bytes() []byte {
	return bytes.Clone(p.buf.Bytes())
}

// MinimalPNG returns signature, IHDR, one IDAT and IEND.
func MinimalPNG(width, height uint32) []byte {
	return NewPNG().IHDR(width, height).IDAT([]byte{0x78, 0x9C, 0x03, 0x00}).IEND().Bytes()
}

// Deflate compresses b into a zlib stream.
func Deflate(b []byte) []byte {
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	_, err := zw.Write(b)
	check(err)
	check(zw.Close())
	return buf.Bytes()
}
