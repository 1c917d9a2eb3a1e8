package chip8

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisassembleKnownEncodings(t *testing.T) {
	cases := []struct {
		op       uint16
		contains []string
	}{
		{0x00E0, []string{"CLS"}},
		{0x00EE, []string{"RET"}},
		{0x1234, []string{"JP", "234"}},
		{0x2345, []string{"CALL", "345"}},
		{0x3A12, []string{"SE", "VA", "12"}},
		{0x4A12, []string{"SNE", "VA", "12"}},
		{0x5120, []string{"SE", "V1", "V2"}},
		{0x6A12, []string{"LD", "VA", "12"}},
		{0x7A12, []string{"ADD", "VA", "12"}},
		{0x8120, []string{"LD", "V1", "V2"}},
		{0x8121, []string{"OR", "V1", "V2"}},
		{0x8122, []string{"AND", "V1", "V2"}},
		{0x8123, []string{"XOR", "V1", "V2"}},
		{0x8124, []string{"ADD", "V1", "V2"}},
		{0x8125, []string{"SUB", "V1", "V2"}},
		{0x8126, []string{"SHR", "V1"}},
		{0x8127, []string{"SUBN", "V1", "V2"}},
		{0x812E, []string{"SHL", "V1"}},
		{0x9120, []string{"SNE", "V1", "V2"}},
		{0xA123, []string{"LD", "I"}},
		{0xB123, []string{"JP", "V0"}},
		{0xC1FF, []string{"RND", "V1"}},
		{0xD125, []string{"DRW", "V1", "V2", "5"}},
		{0xE19E, []string{"SKP", "V1"}},
		{0xE1A1, []string{"SKNP", "V1"}},
		{0xF107, []string{"LD", "V1", "DT"}},
		{0xF10A, []string{"LD", "V1", "K"}},
		{0xF115, []string{"LD", "DT", "V1"}},
		{0xF118, []string{"LD", "ST", "V1"}},
		{0xF11E, []string{"ADD", "I", "V1"}},
		{0xF129, []string{"LD", "F", "V1"}},
		{0xF133, []string{"LD", "B", "V1"}},
		{0xF155, []string{"LD", "[I]", "V1"}},
		{0xF165, []string{"LD", "V1", "[I]"}},
	}

	for _, c := range cases {
		mnemonic := Disassemble(c.op)
		require.NotEmpty(t, mnemonic, "op %04X", c.op)

		for _, want := range c.contains {
			require.True(t, strings.Contains(mnemonic, want), "op %04X mnemonic %q missing %q", c.op, mnemonic, want)
		}
	}
}

func TestDisassembleUnknownEncodingIsEmpty(t *testing.T) {
	require.Empty(t, Disassemble(0x5001))
	require.Empty(t, Disassemble(0x9001))
}

func TestDisassembleAtReadsVMMemory(t *testing.T) {
	vm := New()
	require.NoError(t, vm.LoadROM([]byte{0x00, 0xE0}))

	require.Equal(t, "CLS", vm.DisassembleAt(ProgramStart))
}

func TestDisassembleAtOutOfRangeIsEmpty(t *testing.T) {
	vm := New()

	require.Empty(t, vm.DisassembleAt(uint16(len(vm.Memory)-1)))
}
