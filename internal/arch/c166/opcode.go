package c166

import "fmt"

// Size is the length in bytes of an instruction, selected by its opcode byte.
type Size uint8

// Instruction sizes. Reserved marks opcode values that are undefined in the
// instruction set and must never be decoded as an instruction.
const (
	Reserved Size = 0
	Size2    Size = 2
	Size4    Size = 4
)

// Valid returns whether the size belongs to a defined instruction.
func (s Size) Valid() bool {
	return s == Size2 || s == Size4
}

func (s Size) String() string {
	if s.Valid() {
		return fmt.Sprintf("%d", uint8(s))
	}
	return "reserved"
}

// ReservedMnemonic is the mnemonic of all reserved opcodes.
const ReservedMnemonic = "-"

// Opcode is the decoding rule of a single opcode byte.
type Opcode struct {
	Mnemonic string
	Size     Size
}

// Reserved returns true if the opcode value is not defined in the instruction set.
func (o Opcode) Reserved() bool {
	return !o.Size.Valid()
}

var reserved = Opcode{Mnemonic: ReservedMnemonic, Size: Reserved}

// opcodes maps every opcode byte to its rule. Rows follow the opcode map of the
// instruction set manual: one comment per high nibble, 16 low nibble columns.
var opcodes = [256]Opcode{
	// 0x
	{"add", Size2}, {"addb", Size2}, {"add", Size4}, {"addb", Size4},
	{"add", Size4}, {"addb", Size4}, {"add", Size4}, {"addb", Size4},
	{"add", Size2}, {"addb", Size2}, {"bfldl", Size4}, {"mul", Size2},
	{"rol", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// 1x
	{"addc", Size2}, {"addcb", Size2}, {"addc", Size4}, {"addcb", Size4},
	{"addc", Size4}, {"addcb", Size4}, {"addc", Size4}, {"addcb", Size4},
	{"addc", Size2}, {"addcb", Size2}, {"bfldh", Size4}, {"mulu", Size2},
	{"rol", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// 2x
	{"sub", Size2}, {"subb", Size2}, {"sub", Size4}, {"subb", Size4},
	{"sub", Size4}, {"subb", Size4}, {"sub", Size4}, {"subb", Size4},
	{"sub", Size2}, {"subb", Size2}, {"bcmp", Size4}, {"prior", Size2},
	{"ror", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// 3x
	{"subc", Size2}, {"subcb", Size2}, {"subc", Size4}, {"subcb", Size4},
	{"subc", Size4}, {"subcb", Size4}, {"subc", Size4}, {"subcb", Size4},
	{"subc", Size2}, {"subcb", Size2}, {"bmovn", Size4}, reserved,
	{"ror", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// 4x
	{"cmp", Size2}, {"cmpb", Size2}, {"cmp", Size4}, {"cmpb", Size4},
	reserved, reserved, {"cmp", Size4}, {"cmpb", Size4},
	{"cmp", Size2}, {"cmpb", Size2}, {"bmov", Size4}, {"div", Size2},
	{"shl", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// 5x
	{"xor", Size2}, {"xorb", Size2}, {"xor", Size4}, {"xorb", Size4},
	{"xor", Size4}, {"xorb", Size4}, {"xor", Size4}, {"xorb", Size4},
	{"xor", Size2}, {"xorb", Size2}, {"bor", Size4}, {"divu", Size2},
	{"shl", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// 6x
	{"and", Size2}, {"andb", Size2}, {"and", Size4}, {"andb", Size4},
	{"and", Size4}, {"andb", Size4}, {"and", Size4}, {"andb", Size4},
	{"and", Size2}, {"andb", Size2}, {"band", Size4}, {"divl", Size2},
	{"shr", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// 7x
	{"or", Size2}, {"orb", Size2}, {"or", Size4}, {"orb", Size4},
	{"or", Size4}, {"orb", Size4}, {"or", Size4}, {"orb", Size4},
	{"or", Size2}, {"orb", Size2}, {"bxor", Size4}, {"divlu", Size2},
	{"shr", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// 8x
	{"cmpi1", Size2}, {"neg", Size2}, {"cmpi1", Size4}, reserved,
	{"mov", Size4}, reserved, {"cmpi1", Size4}, {"idle", Size4},
	{"mov", Size2}, {"movb", Size2}, {"jb", Size4}, reserved,
	reserved, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// 9x
	{"cmpi2", Size2}, {"cpl", Size2}, {"cmpi2", Size4}, reserved,
	{"mov", Size4}, reserved, {"cmpi2", Size4}, {"pwrdn", Size4},
	{"mov", Size2}, {"movb", Size2}, {"jnb", Size4}, {"trap", Size2},
	{"jmpi", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// Ax
	{"cmpd1", Size2}, {"negb", Size2}, {"cmpd1", Size4}, reserved,
	{"movb", Size4}, {"diswdt", Size4}, {"cmpd1", Size4}, {"srvwdt", Size4},
	{"mov", Size2}, {"movb", Size2}, {"jbc", Size4}, {"calli", Size2},
	{"ashr", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// Bx
	{"cmpd2", Size2}, {"cplb", Size2}, {"cmpd2", Size4}, reserved,
	{"movb", Size4}, {"einit", Size4}, {"cmpd2", Size4}, {"srst", Size4},
	{"mov", Size2}, {"movb", Size2}, {"jnbs", Size4}, {"callr", Size2},
	{"ashr", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// Cx
	{"movbz", Size2}, reserved, {"movbz", Size4}, reserved,
	{"mov", Size4}, {"movbz", Size4}, {"scxt", Size4}, reserved,
	{"mov", Size2}, {"movb", Size2}, {"calla", Size4}, {"ret", Size2},
	{"nop", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// Dx
	{"movbs", Size2}, {"atomic/extr", Size2}, {"movbs", Size4}, reserved,
	{"mov", Size4}, {"movbs", Size4}, {"scxt", Size4}, {"extp/exts", Size4},
	{"mov", Size2}, {"movb", Size2}, {"calls", Size4}, {"rets", Size2},
	{"extp/exts", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// Ex
	{"mov", Size2}, {"movb", Size2}, {"pcall", Size4}, reserved,
	{"movb", Size4}, reserved, {"mov", Size4}, {"movb", Size4},
	{"mov", Size2}, {"movb", Size2}, {"jmpa", Size4}, {"retp", Size2},
	{"push", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
	// Fx
	{"mov", Size2}, {"movb", Size2}, {"mov", Size4}, {"movb", Size4},
	{"movb", Size4}, reserved, {"mov", Size4}, {"movb", Size4},
	reserved, reserved, {"jmps", Size4}, {"reti", Size2},
	{"pop", Size2}, {"jmpr", Size2}, {"bclr", Size2}, {"bset", Size2},
}

// Lookup returns the decoding rule for the given opcode byte.
// The table covers the full byte range, the lookup never fails.
func Lookup(b byte) Opcode {
	return opcodes[b]
}
