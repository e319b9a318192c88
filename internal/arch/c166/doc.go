// Package c166 provides the opcode map of the C166 microcontroller family.
//
// # Instruction Encoding
//
// The C166 is a 16-bit microcontroller with a fixed instruction encoding:
//   - The first byte of an instruction is the opcode
//   - The opcode alone determines the instruction length
//   - Instructions are either 2 or 4 bytes long
//   - 20 opcode values are reserved and do not encode any instruction
//
// Operands (registers, bit offsets, memory addresses and immediates) are packed
// into the bytes following the opcode. This package does not interpret them.
//
// # Usage Example
//
//	op := c166.Lookup(data[offset])
//	if op.Reserved() {
//		return fmt.Errorf("reserved opcode $%02x", data[offset])
//	}
//	next := offset + int(op.Size)
package c166
