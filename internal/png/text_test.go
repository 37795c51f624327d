package png

import (
	"bytes"
	"errors"
	"testing"

	"github.com/simonhull/imgmeta/internal/testimg"
)

func TestIsComment(t *testing.T) {
	for keyword, want := range map[string]bool{
		"Comment":  true,
		"comment":  true,
		"COMMENT":  true,
		"Author":   false,
		"":         false,
		"Comments": false,
	} {
		if got := isComment(keyword); got != want {
			t.Errorf("isComment(%q) = %v, want %v", keyword, got, want)
		}
	}
}

func TestDecodeTEXt(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		data    string
		keyword string
		text    string
	}{
		{name: "simple", data: "Comment\x00hi", keyword: "Comment", text: "hi"},
		{name: "empty text", data: "Title\x00", keyword: "Title", text: ""},
		{name: "NUL in text kept", data: "k\x00a\x00b", keyword: "k", text: "a\x00b"},
		{name: "no separator", data: "Comment", wantErr: errNoKeyword},
		{name: "empty payload", data: "", wantErr: errNoKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := decodeTEXt([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("decodeTEXt() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if entry.keyword != tt.keyword || string(entry.text) != tt.text {
				t.Errorf("decodeTEXt() = (%q, %q), want (%q, %q)", entry.keyword, entry.text, tt.keyword, tt.text)
			}
		})
	}
}

func TestDecodeZTXt(t *testing.T) {
	data := append([]byte("Comment\x00\x00"), testimg.Deflate([]byte("squeezed"))...)

	entry, err := decodeZTXt(data)
	if err != nil {
		t.Fatalf("decodeZTXt() error = %v", err)
	}
	if entry.keyword != "Comment" || string(entry.text) != "squeezed" {
		t.Errorf("decodeZTXt() = (%q, %q)", entry.keyword, entry.text)
	}
}

func TestDecodeZTXt_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"missing method", []byte("Comment\x00")},
		{"unknown method", append([]byte("Comment\x00\x01"), testimg.Deflate([]byte("x"))...)},
		{"corrupt stream", []byte("Comment\x00\x00not zlib")},
		{"truncated stream", append([]byte("Comment\x00\x00"), testimg.Deflate([]byte("some text"))[:6]...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := decodeZTXt(tt.data)
			if err == nil {
				t.Fatalf("decodeZTXt() = %q, want error", entry.text)
			}
			// The keyword survives so the caller can still filter.
			if entry.keyword != "Comment" {
				t.Errorf("keyword = %q, want Comment", entry.keyword)
			}
		})
	}
}

func TestDecodeZTXt_TooLarge(t *testing.T) {
	big := bytes.Repeat([]byte{'a'}, maxInflatedText+1)
	data := append([]byte("Comment\x00\x00"), testimg.Deflate(big)...)

	if _, err := decodeZTXt(data); !errors.Is(err, errTextTooLarge) {
		t.Errorf("decodeZTXt() error = %v, want errTextTooLarge", err)
	}
}

func TestDecodeITXt(t *testing.T) {
	tests := []struct {
		name       string
		compressed bool
	}{
		{"uncompressed", false},
		{"compressed", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScanner(testimg.NewPNG().IText("Comment", "fi", "Kommentti", "hyvä", tt.compressed).Bytes(), "", nil)
			if err != nil {
				t.Fatalf("NewScanner() error = %v", err)
			}
			if !s.Next() {
				t.Fatalf("Next() = false, err = %v", s.Err())
			}

			entry, err := decodeITXt(s.Chunk().Data)
			if err != nil {
				t.Fatalf("decodeITXt() error = %v", err)
			}
			if entry.keyword != "Comment" || string(entry.text) != "hyvä" {
				t.Errorf("decodeITXt() = (%q, %q)", entry.keyword, entry.text)
			}
		})
	}
}

func TestDecodeITXt_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no keyword", "Comment"},
		{"missing flags", "Comment\x00"},
		{"unterminated language", "Comment\x00\x00\x00en"},
		{"unterminated translation", "Comment\x00\x00\x00en\x00Kommentti"},
		{"unknown method", "Comment\x00\x01\x07\x00\x00zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeITXt([]byte(tt.data)); err == nil {
				t.Error("decodeITXt() error = nil, want error")
			}
		})
	}
}
