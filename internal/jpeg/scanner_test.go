package jpeg

import (
	"errors"
	"slices"
	"testing"

	"github.com/simonhull/imgmeta/internal/testimg"
	"github.com/simonhull/imgmeta/internal/types"
)

// markers collects the marker sequence of a stream.
func markers(t *testing.T, data []byte) []Marker {
	t.Helper()

	s, err := NewScanner(data, "test.jpg", nil)
	if err != nil {
		t.Fatalf("NewScanner() error = %v", err)
	}

	var got []Marker
	for seg := range s.All() {
		got = append(got, seg.Marker)
	}
	if err := s.Err(); err != nil {
		t.Fatalf("scan error = %v", err)
	}
	return got
}

func TestScanner_MarkerSequence(t *testing.T) {
	data := testimg.MinimalJPEG(16, 8)

	got := markers(t, data)
	want := []Marker{APP0, DQT, SOF0, SOS, EOI}
	if !slices.Equal(got, want) {
		t.Errorf("markers = %v, want %v", got, want)
	}
}

func TestScanner_SegmentFields(t *testing.T) {
	data := testimg.NewJPEG().Comment("Buttercups").EOI().Bytes()

	s, err := NewScanner(data, "", nil)
	if err != nil {
		t.Fatalf("NewScanner() error = %v", err)
	}
	if !s.Next() {
		t.Fatalf("Next() = false, err = %v", s.Err())
	}

	seg := s.Segment()
	if seg.Marker != COM {
		t.Errorf("Marker = %s, want COM", seg.Marker)
	}
	if seg.Offset != 2 {
		t.Errorf("Offset = %d, want 2", seg.Offset)
	}
	if seg.Length != 12 {
		t.Errorf("Length = %d, want 12", seg.Length)
	}
	if string(seg.Payload) != "Buttercups" {
		t.Errorf("Payload = %q, want %q", seg.Payload, "Buttercups")
	}
}

func TestScanner_StandaloneMarkers(t *testing.T) {
	data := testimg.NewJPEG().
		Marker(byte(TEM)).
		Marker(byte(RST0)).
		Marker(byte(RST7)).
		Comment("x").
		EOI().
		Bytes()

	got := markers(t, data)
	want := []Marker{TEM, RST0, RST7, COM, EOI}
	if !slices.Equal(got, want) {
		t.Errorf("markers = %v, want %v", got, want)
	}
}

func TestScanner_Resync(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []Marker
	}{
		{
			name: "fill bytes before marker",
			data: testimg.NewJPEG().Raw([]byte{0xFF, 0xFF, 0xFF}).Comment("a").EOI().Bytes(),
			want: []Marker{COM, EOI},
		},
		{
			name: "garbage between segments",
			data: testimg.NewJPEG().Comment("a").Raw([]byte{0x12, 0x34, 0x00}).Comment("b").EOI().Bytes(),
			want: []Marker{COM, COM, EOI},
		},
		{
			name: "entropy data with stuffed bytes and restarts",
			data: testimg.NewJPEG().
				Frame(byte(SOF0), 1, 1).
				Scan([]byte{0x12, 0xFF, 0x00, 0x34, 0xFF, 0xD0, 0x56, 0xFF, 0x00}).
				Comment("after scan").
				EOI().
				Bytes(),
			want: []Marker{SOF0, SOS, RST0, COM, EOI},
		},
		{
			name: "trailing garbage without EOI",
			data: testimg.NewJPEG().Comment("a").Raw([]byte{0x01, 0x02, 0xFF}).Bytes(),
			want: []Marker{COM},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := markers(t, tt.data)
			if !slices.Equal(got, tt.want) {
				t.Errorf("markers = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanner_StopsAtEOI(t *testing.T) {
	data := testimg.NewJPEG().EOI().Comment("after EOI").Bytes()

	got := markers(t, data)
	if !slices.Equal(got, []Marker{EOI}) {
		t.Errorf("markers = %v, want [EOI]", got)
	}
}

func TestScanner_TruncatedSegments(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "length exceeds buffer",
			data: []byte{0xFF, 0xD8, 0xFF, 0xFE, 0x00, 0x10, 'a', 'b'},
		},
		{
			name: "missing length field",
			data: []byte{0xFF, 0xD8, 0xFF, 0xFE},
		},
		{
			name: "half a length field",
			data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00},
		},
		{
			name: "length below minimum",
			data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x01, 0xFF, 0xD9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScanner(tt.data, "", nil)
			if err != nil {
				t.Fatalf("NewScanner() error = %v", err)
			}
			for s.Next() {
			}
			if !errors.Is(s.Err(), types.ErrTruncatedSegment) {
				t.Errorf("Err() = %v, want ErrTruncatedSegment", s.Err())
			}
			// Once failed, the scanner stays failed.
			if s.Next() {
				t.Error("Next() = true after error")
			}
		})
	}
}

func TestNewScanner_RequiresSOI(t *testing.T) {
	for _, data := range [][]byte{nil, {0xFF}, {0xFF, 0xD9}, {0x89, 'P', 'N', 'G'}} {
		_, err := NewScanner(data, "", nil)
		if !errors.Is(err, types.ErrUnrecognizedFormat) {
			t.Errorf("NewScanner(% x) error = %v, want ErrUnrecognizedFormat", data, err)
		}
	}
}

func TestScanner_AllStopsEarly(t *testing.T) {
	data := testimg.NewJPEG().Comment("a").Comment("b").Comment("c").EOI().Bytes()

	s, err := NewScanner(data, "", nil)
	if err != nil {
		t.Fatalf("NewScanner() error = %v", err)
	}
	n := 0
	for range s.All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d segments, want 2", n)
	}

	// The scanner resumes where the loop left off.
	if !s.Next() || string(s.Segment().Payload) != "c" {
		t.Errorf("expected to resume at third comment, got %+v", s.Segment())
	}
}
