// Package disasm implements the sequential C166 instruction decoder.
package disasm

import (
	"fmt"

	"github.com/retroenv/c166disasm/internal/arch/c166"
	"github.com/retroenv/c166disasm/internal/memmap"
)

// maxInstructionSize is the number of bytes shown as context of a reserved opcode.
const maxInstructionSize = int(c166.Size4)

// Memory is the read-only byte storage that instructions are decoded from.
type Memory interface {
	Len() int
	Read(offset, count int) ([]byte, error)
}

// State is the state of a decoder.
type State int

// Decoder states. Both halted states are terminal.
const (
	Scanning State = iota
	HaltedComplete
	HaltedError
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case HaltedComplete:
		return "complete"
	case HaltedError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Decoder walks a region of memory and decodes one instruction after another
// in ascending address order. It stops at the end of the region or at the first
// byte sequence that can not be decoded, it never skips bytes to resynchronize.
type Decoder struct {
	memory Memory
	region memmap.Region
	limit  int // end of the region clipped to the memory size

	offset int
	count  int
	state  State
	err    error
}

// New returns a decoder positioned at the start of the region.
func New(memory Memory, region memmap.Region) *Decoder {
	return &Decoder{
		memory: memory,
		region: region,
		limit:  min(region.End, memory.Len()),
		offset: region.Start,
	}
}

// Next decodes the instruction at the current offset and advances past it.
// It returns false once the decoder halted, Err and State describe the reason.
func (d *Decoder) Next() (Instruction, bool) {
	if d.state != Scanning {
		return Instruction{}, false
	}
	if d.offset >= d.region.End {
		d.state = HaltedComplete
		return Instruction{}, false
	}
	if d.offset >= d.limit || d.offset < 0 {
		d.halt(ErrBoundary)
		return Instruction{}, false
	}

	head, err := d.memory.Read(d.offset, 1)
	if err != nil {
		d.halt(fmt.Errorf("%w: %w", ErrBoundary, err))
		return Instruction{}, false
	}

	op := c166.Lookup(head[0])
	if op.Reserved() {
		d.halt(ErrReservedOpcode)
		return Instruction{}, false
	}

	size := int(op.Size)
	if size > d.limit-d.offset {
		d.halt(ErrBoundary)
		return Instruction{}, false
	}

	raw, err := d.memory.Read(d.offset, size)
	if err != nil {
		d.halt(fmt.Errorf("%w: %w", ErrBoundary, err))
		return Instruction{}, false
	}

	ins := Instruction{
		Offset:   d.offset,
		Raw:      raw,
		Mnemonic: op.Mnemonic,
	}
	d.offset += size
	d.count++
	return ins, true
}

// halt stops the decoder with a decode error at the current offset.
func (d *Decoder) halt(cause error) {
	d.state = HaltedError
	d.err = &DecodeError{
		Region: d.region.Name,
		Offset: d.offset,
		Raw:    d.context(),
		Cause:  cause,
	}
}

// context returns up to maxInstructionSize bytes at the current offset
// without reading past the region end.
func (d *Decoder) context() []byte {
	count := min(maxInstructionSize, d.limit-d.offset)
	if count <= 0 || d.offset < 0 {
		return nil
	}
	data, err := d.memory.Read(d.offset, count)
	if err != nil {
		return nil
	}
	return data
}

// State returns the current state of the decoder.
func (d *Decoder) State() State {
	return d.state
}

// Err returns the decode error that halted the decoder, nil if decoding
// is still in progress or completed the region.
func (d *Decoder) Err() error {
	return d.err
}

// Offset returns the offset of the next instruction to decode.
func (d *Decoder) Offset() int {
	return d.offset
}

// Count returns the number of instructions decoded so far.
func (d *Decoder) Count() int {
	return d.count
}

// Decode decodes the whole region and passes every instruction to the handler.
// It returns the number of instructions the handler accepted and the first
// decode or handler error.
func Decode(memory Memory, region memmap.Region, handler func(Instruction) error) (int, error) {
	dec := New(memory, region)
	var handled int
	for {
		ins, ok := dec.Next()
		if !ok {
			break
		}
		if err := handler(ins); err != nil {
			return handled, fmt.Errorf("handling instruction at offset %05x: %w", ins.Offset, err)
		}
		handled++
	}
	return handled, dec.Err()
}
