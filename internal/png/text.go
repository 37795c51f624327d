package png

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/simonhull/imgmeta/internal/binary"
)

// CommentKeyword is the registered tEXt keyword for general comments.
const CommentKeyword = "Comment"

// maxInflatedText caps the size of a decompressed zTXt or iTXt value.
const maxInflatedText = 1 << 20

// compressionDeflate is the only compression method PNG defines.
const compressionDeflate = 0

var (
	errNoKeyword       = errors.New("no NUL after keyword")
	errTextTooLarge    = fmt.Errorf("decompressed text exceeds %d bytes", maxInflatedText)
	errUnknownCompress = errors.New("unknown compression method")
)

// textEntry is a decoded tEXt, zTXt or iTXt chunk.
type textEntry struct {
	keyword string
	text    []byte
}

// isComment reports whether keyword names a comment. Matching ignores ASCII
// case; encoders disagree on "Comment" versus "comment".
func isComment(keyword string) bool {
	return strings.EqualFold(keyword, CommentKeyword)
}

// splitKeyword returns the bytes before the first NUL and the cursor
// positioned after it.
func splitKeyword(data []byte, what string) (string, *binary.Cursor, error) {
	c := binary.NewCursor(data, "")
	n := c.IndexByte(0)
	if n < 0 {
		return "", nil, errNoKeyword
	}
	keyword, _ := c.Take(n, what+" keyword")
	_ = c.Skip(1, what+" keyword separator")
	return string(keyword), c, nil
}

// decodeTEXt decodes "keyword NUL text".
func decodeTEXt(data []byte) (textEntry, error) {
	keyword, c, err := splitKeyword(data, chunkTEXt)
	if err != nil {
		return textEntry{}, err
	}
	text, _ := c.Take(c.Remaining(), "tEXt text")
	return textEntry{keyword: keyword, text: bytes.Clone(text)}, nil
}

// decodeZTXt decodes "keyword NUL method compressed-text".
//
// A keyword is returned alongside a decompression error so the caller can
// still decide whether the chunk was a comment.
func decodeZTXt(data []byte) (textEntry, error) {
	keyword, c, err := splitKeyword(data, chunkZTXt)
	if err != nil {
		return textEntry{}, err
	}
	entry := textEntry{keyword: keyword}

	method, err := c.ReadU8("zTXt compression method")
	if err != nil {
		return entry, err
	}
	if method != compressionDeflate {
		return entry, fmt.Errorf("%w %d", errUnknownCompress, method)
	}

	compressed, _ := c.Take(c.Remaining(), "zTXt text")
	entry.text, err = inflate(compressed)
	return entry, err
}

// decodeITXt decodes "keyword NUL flag method language NUL translated NUL text".
func decodeITXt(data []byte) (textEntry, error) {
	keyword, c, err := splitKeyword(data, chunkITXt)
	if err != nil {
		return textEntry{}, err
	}
	entry := textEntry{keyword: keyword}

	cr := binary.NewChainReader(c)
	flag := binary.ReadChained[uint8](cr, "iTXt compression flag")
	method := binary.ReadChained[uint8](cr, "iTXt compression method")
	if err := cr.Error(); err != nil {
		return entry, err
	}

	// Language tag and translated keyword are not reported.
	for _, field := range []string{"language tag", "translated keyword"} {
		n := c.IndexByte(0)
		if n < 0 {
			return entry, fmt.Errorf("iTXt %s not terminated", field)
		}
		_ = c.Skip(n+1, "iTXt "+field)
	}

	text, _ := c.Take(c.Remaining(), "iTXt text")
	if flag == 0 {
		entry.text = bytes.Clone(text)
		return entry, nil
	}
	if method != compressionDeflate {
		return entry, fmt.Errorf("%w %d", errUnknownCompress, method)
	}
	entry.text, err = inflate(text)
	return entry, err
}

// inflate decompresses a zlib stream, refusing output beyond maxInflatedText.
func inflate(b []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, maxInflatedText+1))
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	if len(out) > maxInflatedText {
		return nil, errTextTooLarge
	}
	return out, nil
}
