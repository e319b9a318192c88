// Package writer implements the output of decoded instructions.
package writer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/retroenv/c166disasm/internal/disasm"
	"github.com/retroenv/c166disasm/internal/memmap"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var errUnsupportedFormat = errors.New("unsupported output format")

// Options of the writer.
type Options struct {
	Format string
	Color  bool // colorize text output
}

// Record is the JSON representation of a decoded instruction.
type Record struct {
	Region   string `json:"region" jsonschema:"title=Region,description=Name of the decoded memory region"`
	Offset   int    `json:"offset" jsonschema:"title=Offset,description=Address of the opcode byte,minimum=0"`
	Raw      string `json:"raw" jsonschema:"title=Raw Bytes,description=Instruction bytes as space separated lowercase hex,pattern=^[0-9a-f]{2}( [0-9a-f]{2}){1}( [0-9a-f]{2} [0-9a-f]{2})?$"`
	Mnemonic string `json:"mnemonic" jsonschema:"title=Mnemonic,description=Instruction name"`
	Operands string `json:"operands" jsonschema:"title=Operands,description=Bytes following the opcode as space separated lowercase hex"`
}

// Writer writes decoded instructions in the configured format.
type Writer struct {
	writer  io.Writer
	options Options
	styles  styles
	encoder *json.Encoder
	region  string
}

type styles struct {
	offset   lipgloss.Style
	raw      lipgloss.Style
	mnemonic lipgloss.Style
	operands lipgloss.Style
}

// New creates a new writer.
func New(writer io.Writer, options Options) (*Writer, error) {
	w := &Writer{
		writer:  writer,
		options: options,
	}

	switch options.Format {
	case FormatText, "":
		w.options.Format = FormatText
		if options.Color {
			w.styles = styles{
				offset:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
				raw:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
				mnemonic: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
				operands: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
			}
		}

	case FormatJSON:
		w.encoder = json.NewEncoder(writer)

	default:
		return nil, fmt.Errorf("%w '%s'", errUnsupportedFormat, options.Format)
	}
	return w, nil
}

// WriteHeader writes the name and size of the image. JSON output has no header.
func (w *Writer) WriteHeader(name string, size int) error {
	if w.options.Format != FormatText {
		return nil
	}
	if _, err := fmt.Fprintf(w.writer, "Name: %s, size %d\n", name, size); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// StartRegion sets the region that the following instructions belong to.
func (w *Writer) StartRegion(region memmap.Region) {
	w.region = region.Name
}

// WriteInstruction writes a single decoded instruction.
func (w *Writer) WriteInstruction(ins disasm.Instruction) error {
	if w.encoder != nil {
		record := NewRecord(w.region, ins)
		if err := w.encoder.Encode(record); err != nil {
			return fmt.Errorf("encoding instruction: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintln(w.writer, w.formatLine(ins)); err != nil {
		return fmt.Errorf("writing instruction: %w", err)
	}
	return nil
}

// formatLine returns the text representation of an instruction, for example
// [00010][e6 12 34 56] mov 12 34 56
func (w *Writer) formatLine(ins disasm.Instruction) string {
	offset := fmt.Sprintf("%05x", ins.Offset)
	raw := disasm.FormatBytes(ins.Raw)
	mnemonic := ins.Mnemonic
	operands := disasm.FormatBytes(ins.Operands())

	if w.options.Color {
		offset = w.styles.offset.Render(offset)
		raw = w.styles.raw.Render(raw)
		mnemonic = w.styles.mnemonic.Render(mnemonic)
		operands = w.styles.operands.Render(operands)
	}
	return fmt.Sprintf("[%s][%s] %s %s", offset, raw, mnemonic, operands)
}

// NewRecord returns the JSON record of an instruction.
func NewRecord(region string, ins disasm.Instruction) Record {
	return Record{
		Region:   region,
		Offset:   ins.Offset,
		Raw:      disasm.FormatBytes(ins.Raw),
		Mnemonic: ins.Mnemonic,
		Operands: disasm.FormatBytes(ins.Operands()),
	}
}
