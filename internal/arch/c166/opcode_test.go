package c166

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

var reservedOpcodes = []byte{
	0x3b, 0x44, 0x45, 0x83, 0x85, 0x8b, 0x8c, 0x93, 0x95, 0xa3,
	0xb3, 0xc1, 0xc3, 0xc7, 0xd3, 0xe3, 0xe5, 0xf5, 0xf8, 0xf9,
}

func TestLookup_Total(t *testing.T) {
	for i := range 256 {
		op := Lookup(byte(i))
		assert.True(t, op.Size == Size2 || op.Size == Size4 || op.Size == Reserved)
		assert.True(t, op.Mnemonic != "")
		if op.Reserved() {
			assert.Equal(t, ReservedMnemonic, op.Mnemonic)
		} else {
			assert.True(t, op.Mnemonic != ReservedMnemonic)
		}
	}
}

func TestLookup_Reserved(t *testing.T) {
	isReserved := map[byte]bool{}
	for _, b := range reservedOpcodes {
		isReserved[b] = true
	}

	for i := range 256 {
		op := Lookup(byte(i))
		assert.Equal(t, isReserved[byte(i)], op.Reserved())
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		opcode   byte
		mnemonic string
		size     Size
	}{
		{0x00, "add", Size2},
		{0x02, "add", Size4},
		{0x06, "add", Size4},
		{0x0d, "jmpr", Size2},
		{0x10, "addc", Size2},
		{0x39, "subcb", Size2},
		{0x87, "idle", Size4},
		{0x9b, "trap", Size2},
		{0xa5, "diswdt", Size4},
		{0xca, "calla", Size4},
		{0xcb, "ret", Size2},
		{0xcc, "nop", Size2},
		{0xd1, "atomic/extr", Size2},
		{0xd7, "extp/exts", Size4},
		{0xdc, "extp/exts", Size2},
		{0xe6, "mov", Size4},
		{0xfa, "jmps", Size4},
		{0xfb, "reti", Size2},
		{0xff, "bset", Size2},
	}

	for _, tt := range tests {
		t.Run(tt.mnemonic, func(t *testing.T) {
			op := Lookup(tt.opcode)
			assert.Equal(t, tt.mnemonic, op.Mnemonic)
			assert.Equal(t, tt.size, op.Size)
		})
	}
}

func TestLookup_ColumnsShared(t *testing.T) {
	// the last three columns of every row are jmpr, bclr and bset
	for row := range 16 {
		base := byte(row << 4)
		assert.Equal(t, "jmpr", Lookup(base|0x0d).Mnemonic)
		assert.Equal(t, "bclr", Lookup(base|0x0e).Mnemonic)
		assert.Equal(t, "bset", Lookup(base|0x0f).Mnemonic)
	}
}

func TestOpcode_ReservedSize(t *testing.T) {
	op := Lookup(0x3b)
	assert.True(t, op.Reserved())
	assert.False(t, op.Size.Valid())
	assert.Equal(t, "reserved", op.Size.String())
	assert.Equal(t, "4", Size4.String())
}
