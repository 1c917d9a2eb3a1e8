// Package input binds host key codes to CHIP-8 hex keys and forwards
// their up/down transitions to a chip8.VM.
package input

import "github.com/go-chip8/chip8vm/chip8"

// KeyMap is the standard CHIP-8 host keyboard layout:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   -->  4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var KeyMap = map[string]byte{
	"X": 0x0,
	"1": 0x1,
	"2": 0x2,
	"3": 0x3,
	"Q": 0x4,
	"W": 0x5,
	"E": 0x6,
	"A": 0x7,
	"S": 0x8,
	"D": 0x9,
	"Z": 0xA,
	"C": 0xB,
	"4": 0xC,
	"R": 0xD,
	"F": 0xE,
	"V": 0xF,
}

// Binder forwards host key events to a VM through KeyMap. Codes
// outside the map are ignored.
type Binder struct {
	vm     *chip8.VM
	layout map[string]byte
}

// New returns a Binder driving vm through KeyMap.
func New(vm *chip8.VM) *Binder {
	return &Binder{vm: vm, layout: KeyMap}
}

// KeyDown presses the CHIP-8 key bound to code, if any.
func (b *Binder) KeyDown(code string) {
	if key, ok := b.layout[code]; ok {
		b.vm.SetKey(int(key), true)
	}
}

// KeyUp releases the CHIP-8 key bound to code, if any.
func (b *Binder) KeyUp(code string) {
	if key, ok := b.layout[code]; ok {
		b.vm.SetKey(int(key), false)
	}
}

// Lookup returns the CHIP-8 key bound to code, if any.
func (b *Binder) Lookup(code string) (byte, bool) {
	key, ok := b.layout[code]
	return key, ok
}
