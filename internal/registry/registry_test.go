package registry

import (
	"slices"
	"testing"

	"github.com/simonhull/imgmeta/internal/types"
)

// mockParser implements FormatParser for testing.
type mockParser struct {
	name string
}

func (m *mockParser) Parse(data []byte, opts types.ParseOptions) (*types.ImageMetadata, error) {
	return &types.ImageMetadata{Width: uint32(len(data)), Height: 1, Comments: [][]byte{[]byte(m.name)}}, nil
}

func TestRegisterAndGet(t *testing.T) {
	// Use a format that's unlikely to conflict with real registrations
	format := types.Format(999)
	parser := &mockParser{name: "test"}

	Register(format, parser)

	got := Get(format)
	if got == nil {
		t.Fatal("Get() returned nil for registered format")
	}

	mp, ok := got.(*mockParser)
	if !ok {
		t.Fatal("Get() returned wrong parser type")
	}
	if mp.name != "test" {
		t.Errorf("Parser name = %q, want %q", mp.name, "test")
	}

	meta, err := got.Parse([]byte{1, 2, 3}, types.DefaultParseOptions())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if meta.Width != 3 {
		t.Errorf("Width = %d, want 3", meta.Width)
	}
}

func TestGet_Unregistered(t *testing.T) {
	got := Get(types.Format(998))
	if got != nil {
		t.Errorf("Get() = %v for unregistered format, want nil", got)
	}
}

func TestRegister_Overwrites(t *testing.T) {
	format := types.Format(997)

	Register(format, &mockParser{name: "first"})
	Register(format, &mockParser{name: "second"})

	mp, ok := Get(format).(*mockParser)
	if !ok {
		t.Fatal("Get() returned wrong parser type")
	}
	if mp.name != "second" {
		t.Errorf("Parser name = %q, want %q (should be overwritten)", mp.name, "second")
	}
}

func TestFormats_Sorted(t *testing.T) {
	Register(types.Format(995), &mockParser{name: "b"})
	Register(types.Format(994), &mockParser{name: "a"})

	got := Formats()
	if !slices.IsSorted(got) {
		t.Errorf("Formats() not sorted: %v", got)
	}
	if !slices.Contains(got, types.Format(994)) || !slices.Contains(got, types.Format(995)) {
		t.Errorf("Formats() = %v, missing registered formats", got)
	}
}
