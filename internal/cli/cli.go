// Package cli handles command line interface logic
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/retroenv/c166disasm/internal/options"
	"github.com/retroenv/c166disasm/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
)

// Name of the program.
const Name = "c166disasm"

// RunFunc processes the parsed options.
type RunFunc func(ctx context.Context, opts options.Program) error

// UsageError represents an error that should show usage information
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "missing file to disassemble"
	}
	return e.msg
}

// ShowUsage prints the one line usage of the program.
func (e *UsageError) ShowUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "usage: %s [options] <file.bin>\n", Name)
}

// NewRootCommand returns the root command that parses the flags and passes the
// resulting options to run.
func NewRootCommand(version string, run RunFunc) *cobra.Command {
	opts := options.New()
	var start, end string

	cmd := &cobra.Command{
		Use:   Name + " [options] <file.bin>",
		Short: "C166 firmware image disassembler",
		Long: `Decodes a flat C166 firmware image into a linear listing of instructions.

Every instruction is printed with its offset, raw bytes, mnemonic and operand bytes.
Decoding of a region stops at the first reserved opcode or at an instruction that
does not fit into the region.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !opts.ListRegions {
				return &UsageError{}
			}
			if len(args) > 0 {
				opts.Input = args[0]
			}

			if err := normalizeOptions(cmd, &opts, start, end); err != nil {
				return err
			}
			return run(cmd.Context(), opts)
		},
	}

	readOptionFlags(cmd, &opts, &start, &end)
	cmd.AddCommand(newSchemaCommand())
	return cmd
}

// Execute runs the command with the given arguments. Output to a terminal uses
// styled help and error messages, otherwise errors are reported through the logger.
// Signal handling is left to the passed context.
func Execute(ctx context.Context, cmd *cobra.Command, logger *log.Logger, args []string, out io.Writer) error {
	cmd.SetArgs(args)
	cmd.SetOut(out)

	if file, ok := out.(*os.File); ok && term.IsTerminal(file.Fd()) {
		return fang.Execute(ctx, cmd, fang.WithVersion(cmd.Version))
	}

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var usageErr *UsageError
	switch {
	case !errors.As(err, &usageErr):
		logger.Error("Disassembling failed", log.Err(err))
	case usageErr.msg != "":
		logger.Error("Invalid arguments", log.Err(err))
	}
	return err
}

func readOptionFlags(cmd *cobra.Command, opts *options.Program, start, end *string) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.Regions, "region", "r", opts.Regions,
		"memory map regions to decode, 'all' selects all code regions")
	flags.StringVar(start, "start", "", "start offset of a custom region to decode, for example 0x10000")
	flags.StringVar(end, "end", "", "end offset (exclusive) of a custom region to decode")
	flags.StringVarP(&opts.Format, "format", "f", opts.Format, "output format (text/json)")
	flags.StringVar(&opts.Color, "color", opts.Color, "colorize text output (auto/always/never)")
	flags.BoolVar(&opts.ListRegions, "list-regions", false, "print the memory map and exit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "perform operations quietly")
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(cmd *cobra.Command, opts *options.Program, start, end string) error {
	opts.Format = strings.ToLower(opts.Format)
	if opts.Format != writer.FormatText && opts.Format != writer.FormatJSON {
		return &UsageError{msg: fmt.Sprintf("unsupported format: %s. Valid options: text, json", opts.Format)}
	}

	opts.Color = strings.ToLower(opts.Color)
	switch opts.Color {
	case options.ColorAuto, options.ColorAlways, options.ColorNever:
	default:
		return &UsageError{msg: fmt.Sprintf("unsupported color mode: %s. Valid options: auto, always, never", opts.Color)}
	}

	if start == "" && end == "" {
		return nil
	}
	if start == "" || end == "" {
		return &UsageError{msg: "custom region needs both --start and --end"}
	}
	if cmd.Flags().Changed("region") {
		return &UsageError{msg: "--region can not be combined with --start and --end"}
	}

	var err error
	if opts.Start, err = parseOffset(start); err != nil {
		return &UsageError{msg: fmt.Sprintf("invalid start offset: %s", err)}
	}
	if opts.End, err = parseOffset(end); err != nil {
		return &UsageError{msg: fmt.Sprintf("invalid end offset: %s", err)}
	}
	opts.Custom = true
	return nil
}

// parseOffset parses a decimal or 0x prefixed hexadecimal offset.
func parseOffset(s string) (int, error) {
	value, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing '%s': %w", s, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative offset '%s'", s)
	}
	return int(value), nil
}
