// imgsize prints the dimensions and comments of JPEG and PNG files.
//
// With --dump it lists the marker segments or chunks of each file instead,
// which is useful for checking what the parsers actually see.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/simonhull/imgmeta"
)

// errFailed reports that at least one file could not be read. The
// individual errors have already been printed.
var errFailed = errors.New("one or more files failed")

// config holds the parsed command line.
type config struct {
	output       string
	dump         bool
	allText      bool
	extendedText bool
	noComments   bool
	verbose      bool
	version      bool
	help         bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var cfg config

	flagSet := pflag.NewFlagSet("imgsize", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVarP(&cfg.output, "output", "o", "text", "output format: text, json or yaml")
	flagSet.BoolVar(&cfg.dump, "dump", false, "list markers/chunks instead of metadata")
	flagSet.BoolVar(&cfg.allText, "all-text", false, "record every PNG tEXt chunk, not just Comment")
	flagSet.BoolVar(&cfg.extendedText, "extended-text", false, "also decode PNG zTXt and iTXt chunks")
	flagSet.BoolVar(&cfg.noComments, "no-comments", false, "read dimensions only")
	flagSet.BoolVarP(&cfg.verbose, "verbose", "v", false, "debug logging to stderr")
	flagSet.BoolVar(&cfg.version, "version", false, "print version and exit")
	flagSet.BoolVarP(&cfg.help, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}

	if cfg.help {
		printHelp(stderr, flagSet)
		return nil
	}
	if cfg.version {
		return printVersion(stdout, cfg.output)
	}

	paths := flagSet.Args()
	if len(paths) == 0 {
		printHelp(stderr, flagSet)
		return errors.New("no files given")
	}

	logger := newLogger(stderr, cfg.verbose)

	if cfg.dump {
		return dumpFiles(stdout, stderr, paths, logger)
	}

	enc, err := newEncoder(cfg.output, stdout)
	if err != nil {
		return err
	}

	opts := []imgmeta.Option{imgmeta.WithLogger(logger)}
	if cfg.allText {
		opts = append(opts, imgmeta.WithAllTextChunks())
	}
	if cfg.extendedText {
		opts = append(opts, imgmeta.WithExtendedText())
	}
	if cfg.noComments {
		opts = append(opts, imgmeta.WithoutComments())
	}

	failed := false
	reports := make([]report, 0, len(paths))
	for _, path := range paths {
		meta, err := imgmeta.ReadFile(path, opts...)
		if err != nil {
			failed = true
			logger.Debug("read failed", "path", path, "kind", imgmeta.ErrorKind(err), "error", err)
			fmt.Fprintf(stderr, "%v\n", err)
		}
		reports = append(reports, newReport(path, meta, err))
	}

	if err := enc.encode(reports); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if failed {
		return errFailed
	}
	return nil
}

// newLogger builds a text handler on w: debug level with verbose, warnings
// only otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printVersion(w io.Writer, output string) error {
	info := imgmeta.GetVersionInfo()
	if output == "text" {
		_, err := fmt.Fprintf(w, "imgsize %s (commit %s, built %s, %s)\n",
			info.Version, info.GitCommit, info.BuildTime, info.GoVersion)
		return err
	}

	enc, err := newEncoder(output, w)
	if err != nil {
		return err
	}
	return enc.encodeValue(info)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `imgsize prints the dimensions and comments of JPEG and PNG images.

Only the container structure is read; pixel data is never decoded.

Usage:
  imgsize [flags] FILE...

Examples:
  # Dimensions and comments
  imgsize photo.jpg scan.png

  # Every PNG text chunk, including compressed ones, as JSON
  imgsize --all-text --extended-text -o json image.png

  # Inspect the segment structure of a broken file
  imgsize --dump -v broken.jpg

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
