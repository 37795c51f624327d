package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/imgmeta"
)

// report is the printed form of one file's result.
type report struct {
	Path     string   `json:"path" yaml:"path"`
	Format   string   `json:"format,omitempty" yaml:"format,omitempty"`
	Width    uint32   `json:"width,omitempty" yaml:"width,omitempty"`
	Height   uint32   `json:"height,omitempty" yaml:"height,omitempty"`
	Comments []string `json:"comments,omitempty" yaml:"comments,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func newReport(path string, meta *imgmeta.ImageMetadata, err error) report {
	r := report{Path: path}
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Format = meta.Format.String()
	r.Width = meta.Width
	r.Height = meta.Height
	r.Comments = meta.CommentStrings()
	for _, w := range meta.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}

// encoder writes reports in one output format.
type encoder struct {
	w      io.Writer
	format string
}

func newEncoder(format string, w io.Writer) (*encoder, error) {
	switch format {
	case "text", "json", "yaml":
		return &encoder{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func (e *encoder) encode(reports []report) error {
	if e.format == "text" {
		return writeText(e.w, reports)
	}
	return e.encodeValue(reports)
}

func (e *encoder) encodeValue(v any) error {
	switch e.format {
	case "json":
		enc := json.NewEncoder(e.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(e.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintf(e.w, "%+v\n", v)
		return err
	}
}

// writeText prints one line per file, comments indented below it. Failed
// files are skipped; their errors go to stderr.
func writeText(w io.Writer, reports []report) error {
	var b strings.Builder
	for _, r := range reports {
		if r.Error != "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s %dx%d\n", r.Path, r.Format, r.Width, r.Height)
		for _, c := range r.Comments {
			fmt.Fprintf(&b, "  comment: %q\n", c)
		}
		for _, warn := range r.Warnings {
			fmt.Fprintf(&b, "  warning: %s\n", warn)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
