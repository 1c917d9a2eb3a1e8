package input

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-chip8/chip8vm/chip8"
)

func TestKeyDownSetsMappedKey(t *testing.T) {
	vm := chip8.New()
	b := New(vm)

	b.KeyDown("Q")
	require.True(t, vm.IsKeyDown(0x4))
}

func TestKeyUpClearsMappedKey(t *testing.T) {
	vm := chip8.New()
	b := New(vm)

	b.KeyDown("V")
	require.True(t, vm.IsKeyDown(0xF))

	b.KeyUp("V")
	require.False(t, vm.IsKeyDown(0xF))
}

func TestUnmappedCodeIsIgnored(t *testing.T) {
	vm := chip8.New()
	b := New(vm)

	b.KeyDown("Tab")

	for i := 0; i < 16; i++ {
		require.False(t, vm.IsKeyDown(i))
	}
}

func TestKeyUpOnlyClearsItsOwnKey(t *testing.T) {
	vm := chip8.New()
	b := New(vm)

	b.KeyDown("1")
	b.KeyDown("2")

	b.KeyUp("1")

	require.False(t, vm.IsKeyDown(0x1))
	require.True(t, vm.IsKeyDown(0x2))
}

func TestLookupReportsKeyMapMembership(t *testing.T) {
	b := New(chip8.New())

	key, ok := b.Lookup("Z")
	require.True(t, ok)
	require.EqualValues(t, 0xA, key)

	_, ok = b.Lookup("Enter")
	require.False(t, ok)
}

func TestKeyMapCoversAllSixteenHexKeys(t *testing.T) {
	seen := make(map[byte]bool)
	for _, key := range KeyMap {
		seen[key] = true
	}
	require.Len(t, seen, 16)
}
