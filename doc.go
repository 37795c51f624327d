// Package imgmeta reads image dimensions and embedded comments from JPEG and
// PNG data.
//
// Only the container structure is walked: JPEG marker segments and PNG
// chunks. Pixel data is never decoded, so reading a multi-megabyte photo
// costs a single linear pass over its headers.
//
// # Quick Start
//
//	meta, err := imgmeta.ReadFile("photo.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s %dx%d\n", meta.Format, meta.Width, meta.Height)
//	for _, c := range meta.CommentStrings() {
//		fmt.Println(c)
//	}
//
// # Supported Formats
//
//   - JPEG: dimensions from the first SOFn frame header (or a following DNL
//     segment when the frame declares zero lines), comments from COM segments
//   - PNG: dimensions from IHDR, comments from tEXt chunks keyed "Comment";
//     zTXt and iTXt with WithExtendedText
//
// # Comments
//
// Comments are returned as raw bytes in stream order, duplicates included.
// They are copies and remain valid after the input buffer is reused. Use
// WithoutComments when only the dimensions matter; parsing then stops as
// soon as both are known.
//
// # Error Handling
//
// Every failure matches one of the error kinds with errors.Is:
//
//	switch {
//	case errors.Is(err, imgmeta.ErrUnrecognizedFormat):
//		// neither JPEG nor PNG
//	case errors.Is(err, imgmeta.ErrTruncatedSegment), errors.Is(err, imgmeta.ErrTruncatedChunk):
//		// structure runs past the end of the data
//	}
//
// Structural errors are *CorruptedFileError values carrying the byte offset
// of the offending segment or chunk. A malformed text chunk is not an error:
// it contributes an empty comment and a Warning, unless WithStrictParsing is
// set.
//
// # Concurrency
//
// All functions are safe for concurrent use. ReadMany parses files in
// parallel:
//
//	metas, err := imgmeta.ReadMany(ctx, paths)
package imgmeta
