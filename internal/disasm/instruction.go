package disasm

import "strings"

// Instruction is a single decoded instruction.
type Instruction struct {
	Offset   int    // address of the opcode byte
	Raw      []byte // opcode byte followed by the operand bytes
	Mnemonic string
}

// Operands returns the bytes following the opcode byte.
func (i Instruction) Operands() []byte {
	return i.Raw[1:]
}

// Size returns the length of the instruction in bytes.
func (i Instruction) Size() int {
	return len(i.Raw)
}

// FormatBytes renders bytes as space separated lowercase hex values.
func FormatBytes(data []byte) string {
	const digits = "0123456789abcdef"

	var sb strings.Builder
	sb.Grow(len(data) * 3)
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(digits[b>>4])
		sb.WriteByte(digits[b&0x0f])
	}
	return sb.String()
}
