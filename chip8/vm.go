/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

// Package chip8 implements the CHIP-8 virtual machine: its memory and
// register model, the opcode interpreter, the instruction
// disassembler, and the 60 Hz timer hook.
package chip8

import "fmt"

const (
	// MemSize is the total addressable memory of the VM.
	MemSize = 0x1000

	// ProgramStart is where loaded ROMs are placed in memory.
	ProgramStart = 0x200

	// FontStart is where the built-in hex digit font is preloaded.
	FontStart = 0x050

	// FontBytesPerGlyph is the number of bytes in each font glyph.
	FontBytesPerGlyph = 5

	// MaxROMSize is the largest ROM that LoadROM will accept.
	MaxROMSize = MemSize - ProgramStart

	// StackDepth is the depth of the CALL/RET return-address stack.
	StackDepth = 16

	// DisplayWidth is the framebuffer width in pixels.
	DisplayWidth = 64

	// DisplayHeight is the framebuffer height in pixels.
	DisplayHeight = 32
)

// font is the built-in 4x5 hex digit sprite set, one glyph per
// nibble 0x0-0xF, preloaded at FontStart.
var font = [FontBytesPerGlyph * 16]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// RomTooLarge is returned by LoadROM when the program cannot fit in
// the memory available after ProgramStart.
type RomTooLarge struct {
	// Size is the number of bytes the caller attempted to load.
	Size int
}

func (e RomTooLarge) Error() string {
	return fmt.Sprintf("rom too large: %d bytes exceeds %d available", e.Size, MaxROMSize)
}

// UnknownOpcode is returned by Tick when the fetched instruction word
// does not match any known CHIP-8 encoding.
type UnknownOpcode struct {
	// PC is the address the opcode was fetched from.
	PC uint16

	// Op is the full 16-bit instruction word.
	Op uint16
}

func (e UnknownOpcode) Error() string {
	return fmt.Sprintf("unknown opcode %04X at %04X", e.Op, e.PC)
}

// EmptyReturn is returned by Tick when a RET instruction executes
// against an empty call stack.
type EmptyReturn struct {
	// PC is the address of the offending RET instruction.
	PC uint16
}

func (e EmptyReturn) Error() string {
	return fmt.Sprintf("RET with empty stack at %04X", e.PC)
}

// VM is the mutable state of a CHIP-8 virtual machine: memory,
// registers, the call stack, timers, keypad and framebuffer.
type VM struct {
	// Memory is the full 4 KiB address space.
	Memory [MemSize]byte

	// V holds the sixteen 8-bit general-purpose registers V0..VF.
	V [16]byte

	// I is the 16-bit address (index) register.
	I uint16

	// PC is the program counter, always even within [0x200, 0xFFE)
	// immediately before fetch.
	PC uint16

	// Stack holds return addresses pushed by CALL and popped by RET.
	Stack [StackDepth]uint16

	// SP is the number of live entries in Stack.
	SP uint8

	// DT is the delay timer; it saturates at zero under decrement.
	DT byte

	// ST is the sound timer; non-zero means "beep on". It saturates
	// at zero under decrement.
	ST byte

	// Keys is the current keypad state, index 0x0-0xF.
	Keys [16]bool

	// Video is the 64x32 monochrome framebuffer, one byte per pixel
	// (0 or 1) for trivial XOR blitting; see render.Adapter for the
	// conversion to RGBA at the rendering boundary.
	Video [DisplayWidth * DisplayHeight]byte

	// rng supplies bytes for the RND instruction.
	rng randSource
}

// New returns a freshly reset VM with no ROM loaded.
func New() *VM {
	vm := &VM{rng: defaultRand{}}
	copy(vm.Memory[FontStart:], font[:])
	vm.Reset()
	return vm
}

// Reset restores PC, I, V, the stack, timers, keypad and framebuffer
// to their power-on values. Per the CHIP-8 reset contract, memory is
// untouched beyond the font table: a previously loaded ROM remains in
// place and must be reloaded via LoadROM to be re-seeded.
func (vm *VM) Reset() {
	vm.PC = ProgramStart
	vm.I = 0
	vm.SP = 0
	vm.V = [16]byte{}
	vm.Stack = [StackDepth]uint16{}
	vm.DT = 0xFF
	vm.ST = 0xFF
	vm.Keys = [16]bool{}
	vm.Video = [DisplayWidth * DisplayHeight]byte{}
}

// LoadROM resets the VM, then copies program into memory starting at
// ProgramStart. Memory from ProgramStart onward is zeroed first so
// that loading the same or a different ROM twice in a row produces
// the same image as loading it once.
func (vm *VM) LoadROM(program []byte) error {
	if len(program) > MaxROMSize {
		return RomTooLarge{Size: len(program)}
	}

	vm.Reset()

	for i := ProgramStart; i < MemSize; i++ {
		vm.Memory[i] = 0
	}

	copy(vm.Memory[ProgramStart:], program)

	return nil
}

// SetKey updates the pressed state of a CHIP-8 key (0x0-0xF). Indexes
// outside that range are ignored.
func (vm *VM) SetKey(index int, down bool) {
	if index < 0 || index >= len(vm.Keys) {
		return
	}

	vm.Keys[index] = down
}

// IsKeyDown reports whether a CHIP-8 key is currently pressed.
func (vm *VM) IsKeyDown(index int) bool {
	if index < 0 || index >= len(vm.Keys) {
		return false
	}

	return vm.Keys[index]
}

// Framebuffer returns a read-only view of the 64x32 monochrome
// display, one byte per pixel (0 or 1), row-major.
func (vm *VM) Framebuffer() [DisplayWidth * DisplayHeight]byte {
	return vm.Video
}

// randSource supplies the byte stream consumed by the RND
// instruction; it is seamed out for deterministic tests.
type randSource interface {
	Intn(n int) int
}
