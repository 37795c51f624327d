package types

import (
	"errors"
	"slices"
	"testing"
)

func TestImageMetadata_String(t *testing.T) {
	tests := []struct {
		name string
		meta ImageMetadata
		want string
	}{
		{"no comments", ImageMetadata{Format: FormatJPEG, Width: 1, Height: 1}, "JPEG 1x1, 0 comments"},
		{"one comment", ImageMetadata{Format: FormatPNG, Width: 640, Height: 480, Comments: [][]byte{nil}}, "PNG 640x480, 1 comment"},
		{"two comments", ImageMetadata{Format: FormatPNG, Width: 2, Height: 3, Comments: [][]byte{{'a'}, {'b'}}}, "PNG 2x3, 2 comments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageMetadata_CommentStrings(t *testing.T) {
	meta := ImageMetadata{Comments: [][]byte{[]byte("a"), {}, []byte("a")}}

	if got, want := meta.CommentStrings(), []string{"a", "", "a"}; !slices.Equal(got, want) {
		t.Errorf("CommentStrings() = %q, want %q", got, want)
	}
}

func TestImageMetadata_AddWarning(t *testing.T) {
	var meta ImageMetadata
	meta.AddWarning("comments", 42, "malformed %s chunk", "tEXt")

	want := []Warning{{Stage: "comments", Message: "malformed tEXt chunk", Offset: 42}}
	if !slices.Equal(meta.Warnings, want) {
		t.Errorf("Warnings = %v, want %v", meta.Warnings, want)
	}
}

func TestParseOptions(t *testing.T) {
	opts := DefaultParseOptions()
	if !opts.Comments || opts.AllTextChunks || opts.ExtendedText || opts.Logger == nil {
		t.Errorf("DefaultParseOptions() = %+v", opts)
	}

	var zero ParseOptions
	if zero.Log() == nil {
		t.Error("Log() on zero options returned nil")
	}
}

func TestCorrupt(t *testing.T) {
	cause := &OutOfBoundsError{Offset: 10, Length: 4, Size: 12, What: "chunk CRC"}
	err := Corrupt(ErrTruncatedChunk, "a.png", 33, cause, "%s chunk is missing its CRC", "IDAT")

	if err.Offset != 33 || err.Path != "a.png" || err.Reason != "IDAT chunk is missing its CRC" {
		t.Errorf("Corrupt() = %+v", err)
	}
	if !errors.Is(err, ErrTruncatedChunk) || !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Corrupt() should match its kind and its cause: %v", err)
	}
	if errors.Is(err, ErrInvalidHeader) {
		t.Error("Corrupt() matched an unrelated kind")
	}

	if bare := Corrupt(ErrMissingDimensions, "", 0, nil, "no frame"); len(bare.Unwrap()) != 1 {
		t.Errorf("Unwrap() = %v, want only the kind", bare.Unwrap())
	}
}
