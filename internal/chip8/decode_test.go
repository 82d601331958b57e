package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		op   Opcode
		want Instruction
	}{
		{"clear", 0x00E0, Instruction{Kind: Clear, Y: 0xE, K: 0xE0, Addr: 0x0E0}},
		{"return", 0x00EE, Instruction{Kind: Return, X: 0, Y: 0xE, N: 0xE, K: 0xEE, Addr: 0x0EE}},
		{"sys", 0x0123, Instruction{Kind: Sys, X: 1, Y: 2, N: 3, K: 0x23, Addr: 0x123}},
		{"jump", 0x1ABC, Instruction{Kind: Jump, X: 0xA, Y: 0xB, N: 0xC, K: 0xBC, Addr: 0xABC}},
		{"call", 0x2200, Instruction{Kind: Call, X: 2, Addr: 0x200}},
		{"skip equal k", 0x3A42, Instruction{Kind: SkipEqualK, X: 0xA, Y: 4, N: 2, K: 0x42, Addr: 0xA42}},
		{"skip not equal k", 0x4B10, Instruction{Kind: SkipNotEqualK, X: 0xB, Y: 1, K: 0x10, Addr: 0xB10}},
		{"skip equal", 0x5120, Instruction{Kind: SkipEqual, X: 1, Y: 2, K: 0x20, Addr: 0x120}},
		{"set k", 0x6A05, Instruction{Kind: SetK, X: 0xA, N: 5, K: 0x05, Addr: 0xA05}},
		{"add k", 0x7BFF, Instruction{Kind: AddK, X: 0xB, Y: 0xF, N: 0xF, K: 0xFF, Addr: 0xBFF}},
		{"set", 0x8120, Instruction{Kind: Set, X: 1, Y: 2, K: 0x20, Addr: 0x120}},
		{"or", 0x8121, Instruction{Kind: Or, X: 1, Y: 2, N: 1, K: 0x21, Addr: 0x121}},
		{"and", 0x8122, Instruction{Kind: And, X: 1, Y: 2, N: 2, K: 0x22, Addr: 0x122}},
		{"xor", 0x8123, Instruction{Kind: XOr, X: 1, Y: 2, N: 3, K: 0x23, Addr: 0x123}},
		{"add", 0x8AB4, Instruction{Kind: Add, X: 0xA, Y: 0xB, N: 4, K: 0xB4, Addr: 0xAB4}},
		{"sub", 0x8AB5, Instruction{Kind: Sub, X: 0xA, Y: 0xB, N: 5, K: 0xB5, Addr: 0xAB5}},
		{"shift right", 0x8AB6, Instruction{Kind: ShiftRight, X: 0xA, Y: 0xB, N: 6, K: 0xB6, Addr: 0xAB6}},
		{"sub inverted", 0x8AB7, Instruction{Kind: SubInv, X: 0xA, Y: 0xB, N: 7, K: 0xB7, Addr: 0xAB7}},
		{"shift left", 0x8ABE, Instruction{Kind: ShiftLeft, X: 0xA, Y: 0xB, N: 0xE, K: 0xBE, Addr: 0xABE}},
		{"unknown 8 family", 0x8AB9, Instruction{Kind: Unknown, X: 0xA, Y: 0xB, N: 9, K: 0xB9, Addr: 0xAB9}},
		{"skip not equal", 0x9120, Instruction{Kind: SkipNotEqual, X: 1, Y: 2, K: 0x20, Addr: 0x120}},
		{"load i", 0xA300, Instruction{Kind: LoadI, X: 3, Addr: 0x300}},
		{"long jump", 0xB123, Instruction{Kind: LongJump, X: 1, Y: 2, N: 3, K: 0x23, Addr: 0x123}},
		{"rand", 0xC47F, Instruction{Kind: Rand, X: 4, Y: 7, N: 0xF, K: 0x7F, Addr: 0x47F}},
		{"draw", 0xD125, Instruction{Kind: Draw, X: 1, Y: 2, N: 5, K: 0x25, Addr: 0x125}},
		{"skip pressed", 0xEA9E, Instruction{Kind: SkipPressed, X: 0xA, Y: 9, N: 0xE, K: 0x9E, Addr: 0xA9E}},
		{"skip not pressed", 0xEBA1, Instruction{Kind: SkipNotPressed, X: 0xB, Y: 0xA, N: 1, K: 0xA1, Addr: 0xBA1}},
		{"unknown e family", 0xEA00, Instruction{Kind: Unknown, X: 0xA, Addr: 0xA00}},
		{"get timer", 0xF107, Instruction{Kind: GetTimer, X: 1, N: 7, K: 0x07, Addr: 0x107}},
		{"wait key", 0xF50A, Instruction{Kind: WaitKey, X: 5, N: 0xA, K: 0x0A, Addr: 0x50A}},
		{"set timer", 0xF215, Instruction{Kind: SetTimer, X: 2, Y: 1, N: 5, K: 0x15, Addr: 0x215}},
		{"set sound timer", 0xF318, Instruction{Kind: SetSoundTimer, X: 3, Y: 1, N: 8, K: 0x18, Addr: 0x318}},
		{"add to i", 0xF41E, Instruction{Kind: AddToI, X: 4, Y: 1, N: 0xE, K: 0x1E, Addr: 0x41E}},
		{"load hex glyph", 0xF029, Instruction{Kind: LoadHexGlyph, X: 0, Y: 2, N: 9, K: 0x29, Addr: 0x029}},
		{"store bcd", 0xF733, Instruction{Kind: StoreBCD, X: 7, Y: 3, N: 3, K: 0x33, Addr: 0x733}},
		{"store registers", 0xF855, Instruction{Kind: StoreRegisters, X: 8, Y: 5, N: 5, K: 0x55, Addr: 0x855}},
		{"load registers", 0xF965, Instruction{Kind: LoadRegisters, X: 9, Y: 6, N: 5, K: 0x65, Addr: 0x965}},
		{"unknown f family", 0xF0FF, Instruction{Kind: Unknown, Y: 0xF, N: 0xF, K: 0xFF, Addr: 0x0FF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.op))
		})
	}
}

func TestOpcodeFields(t *testing.T) {
	op := Opcode(0xD42A)

	assert.Equal(t, byte(0xD), op.HighNibble())
	assert.Equal(t, byte(0x4), op.X())
	assert.Equal(t, byte(0x2), op.Y())
	assert.Equal(t, byte(0xA), op.LowNibble())
	assert.Equal(t, byte(0x2A), op.K())
	assert.Equal(t, uint16(0x42A), op.Addr())
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		op   Opcode
		want string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1200, "JP 200"},
		{0x2ABC, "CALL ABC"},
		{0x6A05, "LD VA, 05"},
		{0x8AB4, "ADD VA, VB"},
		{0xD125, "DRW V1, V2, 5"},
		{0xF50A, "LD V5, K"},
		{0xF855, "LD [I], V8"},
		{0x8AB9, "???"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Decode(tt.op).String())
	}
}
