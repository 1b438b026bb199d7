// Package cli implements the makecab command line.
package cli

import (
	"bytes"
	_ "crypto/sha256" // registers the digest.Canonical hash
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/opencontainers/go-digest"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arloliu/mscab/cabinet"
	"github.com/arloliu/mscab/format"
	"github.com/arloliu/mscab/internal/atomicfile"
)

// Version is reported by --version.
var Version = "dev"

type makecabOptions struct {
	directives string
	defines    []string
	destDir    string
	verbosity  int
	name       string
	attributes string
	mtime      string
	level      int
	checksum   string
	setID      string
	verify     bool
}

// NewRootCommand creates the makecab command.
func NewRootCommand() *cobra.Command {
	opts := &makecabOptions{}

	cmd := &cobra.Command{
		Use:   "makecab [flags] <source> [destination]",
		Short: "Cabinet Maker: compress one file into an MSZIP cabinet",
		Long: `Compress one file into a Microsoft Cabinet (.cab) archive using MSZIP.

If destination is omitted, the last character of the source file name is
replaced with an underscore (_) and used as the destination.`,
		Version:       Version,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMakecab(cmd, opts, args)
		},
	}

	addFlags(cmd.Flags(), opts)

	return cmd
}

func addFlags(flags *pflag.FlagSet, opts *makecabOptions) {
	flags.StringVarP(&opts.directives, "directives", "F", "", "Directive file (not supported)")
	flags.StringArrayVarP(&opts.defines, "define", "D", nil, "Define variable VAR=VAL; only CompressionType=MSZIP is accepted")
	flags.StringVarP(&opts.destDir, "dest-dir", "L", ".", "Location to place destination")
	flags.IntVarP(&opts.verbosity, "verbosity", "V", 1, "Verbosity level (0 quiet, 1 info, 2 debug, 3 trace)")
	flags.StringVar(&opts.name, "name", "", "Member name stored in the cabinet (default: source base name)")
	flags.StringVar(&opts.attributes, "attributes", "a", "Member attributes: r(ead-only) h(idden) s(ystem) a(rchive) x(execute)")
	flags.StringVar(&opts.mtime, "mtime", "", "Member timestamp in RFC3339 (default: source modification time)")
	flags.IntVar(&opts.level, "level", flate.DefaultCompression, "Deflate level: -2 (Huffman only), -1 (default) or 0-9")
	flags.StringVar(&opts.checksum, "checksum", format.ChecksumCabinet.String(), "Data block checksum: payload, cabinet or none")
	flags.StringVar(&opts.setID, "set-id", autoSetID, "Cabinet set id: auto or a number in 0..65535")
	flags.BoolVar(&opts.verify, "verify", false, "Read the cabinet back and check it before committing")
}

// Main runs makecab with the process arguments and exits non-zero on failure.
func Main() {
	cmd := NewRootCommand()
	cmd.SetArgs(NormalizeArgs(os.Args[1:]))

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbosity int) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(logLevel(verbosity))
}

type source struct {
	path     string
	name     string
	modified time.Time
	content  []byte
}

func readSource(cmd *cobra.Command, path string) (*source, error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}

		return &source{path: path, modified: time.Now(), content: content}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &source{
		path:     path,
		name:     filepath.Base(path),
		modified: info.ModTime().UTC(),
		content:  content,
	}, nil
}

func runMakecab(cmd *cobra.Command, opts *makecabOptions, args []string) error {
	if opts.directives != "" {
		return errors.New("directive files are not supported")
	}
	if err := checkDefines(opts.defines); err != nil {
		return err
	}

	log := newLogger(cmd.ErrOrStderr(), opts.verbosity)

	attrs, err := ParseAttributes(opts.attributes)
	if err != nil {
		return err
	}
	mode, err := parseChecksum(opts.checksum)
	if err != nil {
		return err
	}
	setIDOpt, err := parseSetID(opts.setID)
	if err != nil {
		return err
	}

	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	name := src.name
	if opts.name != "" {
		name = opts.name
	}
	if name == "" {
		return errors.New("--name is required when reading standard input")
	}
	modified, err := parseModTime(opts.mtime, src.modified)
	if err != nil {
		return err
	}

	dest := DefaultDestination(name)
	if len(args) > 1 {
		dest = args[1]
	}
	if dest != "-" && !filepath.IsAbs(dest) {
		dest = filepath.Join(opts.destDir, dest)
	}
	log.Info().Msgf("%s -> %s", src.path, dest)

	builder, err := cabinet.NewBuilder(
		cabinet.WithCompressionLevel(opts.level),
		cabinet.WithChecksumMode(mode),
		setIDOpt,
		cabinet.WithLogger(log),
	)
	if err != nil {
		return err
	}

	out, err := atomicfile.WriteAny(dest, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	digester := digest.Canonical.Digester()
	writers := []io.Writer{out, digester.Hash()}
	var written *bytes.Buffer
	if opts.verify {
		written = &bytes.Buffer{}
		writers = append(writers, written)
	}

	member := cabinet.Member{Name: name, Modified: modified, Attributes: attrs}
	result, err := builder.BuildTo(io.MultiWriter(writers...), src.content, member)
	if err != nil {
		return fmt.Errorf("failed to write cab file: %w", err)
	}

	if opts.verify {
		if err := verifyCabinet(written.Bytes(), src.content, mode); err != nil {
			return fmt.Errorf("verification of %s failed: %w", dest, err)
		}
		log.Debug().Msg("cabinet verified")
	}

	if err := out.Commit(); err != nil {
		return err
	}

	log.Info().
		Str("member", name).
		Int64("size", result.Stats.OriginalSize).
		Int64("cabinet_size", result.BytesWritten).
		Int("blocks", result.Blocks).
		Str("savings", fmt.Sprintf("%.1f%%", result.Stats.SpaceSavings())).
		Stringer("digest", digester.Digest()).
		Msg("cabinet written")

	return nil
}

func verifyCabinet(data, content []byte, mode format.ChecksumMode) error {
	cab, err := cabinet.Open(data)
	if err != nil {
		return err
	}
	if err := cab.VerifyChecksums(mode); err != nil {
		return err
	}

	extracted, err := cab.Extract()
	if err != nil {
		return err
	}
	if !bytes.Equal(extracted, content) {
		return errors.New("extracted content differs from source")
	}

	return nil
}
