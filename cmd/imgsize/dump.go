package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/simonhull/imgmeta"
	"github.com/simonhull/imgmeta/internal/jpeg"
	"github.com/simonhull/imgmeta/internal/png"
)

// dumpFiles lists the structure of each file.
func dumpFiles(stdout, stderr io.Writer, paths []string, logger *slog.Logger) error {
	failed := false
	for _, path := range paths {
		if err := dumpFile(stdout, path, logger); err != nil {
			failed = true
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

func dumpFile(w io.Writer, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	format, err := imgmeta.DetectFormat(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s, %d bytes\n", path, format, len(data))
	logger = logger.With("path", path)

	switch format {
	case imgmeta.FormatJPEG:
		return dumpJPEG(w, data, path, logger)
	default:
		return dumpPNG(w, data, path, logger)
	}
}

func dumpJPEG(w io.Writer, data []byte, path string, logger *slog.Logger) error {
	s, err := jpeg.NewScanner(data, path, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "  %-6s (offset: %d)\n", jpeg.SOI, 0)
	for seg := range s.All() {
		if seg.Marker.IsStandalone() || seg.Marker == jpeg.EOI {
			fmt.Fprintf(w, "  %-6s (offset: %d)\n", seg.Marker, seg.Offset)
			continue
		}
		fmt.Fprintf(w, "  %-6s (size: %d, offset: %d)", seg.Marker, seg.Length, seg.Offset)
		if seg.Marker == jpeg.COM {
			fmt.Fprintf(w, " %q", seg.Payload)
		}
		fmt.Fprintln(w)
	}
	return s.Err()
}

func dumpPNG(w io.Writer, data []byte, path string, logger *slog.Logger) error {
	s, err := png.NewScanner(data, path, logger)
	if err != nil {
		return err
	}

	for ch := range s.All() {
		kind := "ancillary"
		if ch.Critical() {
			kind = "critical"
		}
		fmt.Fprintf(w, "  %s (size: %d, offset: %d, crc: %08x, %s)\n", ch.Type, ch.Length, ch.Offset, ch.CRC, kind)
	}
	return s.Err()
}
