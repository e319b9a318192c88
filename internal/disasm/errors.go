package disasm

import (
	"errors"
	"fmt"
)

var (
	// ErrReservedOpcode is the cause of a decode error for an undefined opcode byte.
	ErrReservedOpcode = errors.New("reserved opcode")
	// ErrBoundary is the cause of a decode error for an instruction that does not
	// end inside the region or the image.
	ErrBoundary = errors.New("instruction exceeds region boundary")
)

// DecodeError describes the position where decoding of a region stopped.
type DecodeError struct {
	Region string
	Offset int
	Raw    []byte // bytes at Offset, limited by the region end
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s in region %s at offset %05x [%s]", e.Cause, e.Region, e.Offset, FormatBytes(e.Raw))
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
