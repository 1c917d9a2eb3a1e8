// Package debugger implements breakpoint tracking and the
// register/memory views an external shell uses to inspect a running
// chip8.VM.
package debugger

import (
	"sync"

	"github.com/go-chip8/chip8vm/chip8"
)

// PageWords is the number of 16-bit words shown in a memory view page.
const PageWords = 16

// MemoryRow describes one disassembled instruction in a memory view.
type MemoryRow struct {
	Address    uint16
	Word       uint16
	Mnemonic   string
	Current    bool
	Breakpoint bool
}

// RegistersView is a snapshot of the VM's register file for display.
type RegistersView struct {
	V  [16]byte
	I  uint16
	PC uint16
	SP uint8
	DT byte
	ST byte
}

// Debugger tracks breakpoints and the debugger-visible flag for a
// Runner to consult. Breakpoints and the visible flag are guarded
// independently of the VM's own lock, so the Runner can read them
// without holding it (avoiding lock inversion).
type Debugger struct {
	mu          sync.RWMutex
	breakpoints map[uint16]struct{}
	visible     bool
}

// New returns an empty Debugger, hidden by default.
func New() *Debugger {
	return &Debugger{breakpoints: make(map[uint16]struct{})}
}

// At reports whether addr is a breakpoint, satisfying runner.Breakpoints.
func (d *Debugger) At(addr uint16) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.breakpoints[addr]
	return ok
}

// ToggleBreakpoint adds addr to the breakpoint set, or removes it if
// already present. Idempotent against the already-set state.
func (d *Debugger) ToggleBreakpoint(addr uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.breakpoints[addr]; ok {
		delete(d.breakpoints, addr)
	} else {
		d.breakpoints[addr] = struct{}{}
	}
}

// ClearBreakpoints removes every breakpoint.
func (d *Debugger) ClearBreakpoints() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.breakpoints = make(map[uint16]struct{})
}

// Breakpoints returns a snapshot slice of the current breakpoint
// addresses.
func (d *Debugger) Breakpoints() []uint16 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]uint16, 0, len(d.breakpoints))
	for addr := range d.breakpoints {
		out = append(out, addr)
	}

	return out
}

// SetVisible sets the debugger-visible flag to v.
func (d *Debugger) SetVisible(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.visible = v
}

// ToggleVisible flips the debugger-visible flag and returns the new
// value.
func (d *Debugger) ToggleVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.visible = !d.visible
	return d.visible
}

// Visible reports the current debugger-visible flag.
func (d *Debugger) Visible() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.visible
}

// MemoryView returns PageWords disassembled rows of vm's memory,
// centered near vm.PC. The start address is rounded down to an even
// address and clamped within program memory.
func (d *Debugger) MemoryView(vm *chip8.VM) []MemoryRow {
	start := int(vm.PC) - PageWords
	start &^= 1

	if start < chip8.ProgramStart {
		start = chip8.ProgramStart
	}

	maxStart := chip8.MemSize - PageWords*2
	if start > maxStart {
		start = maxStart
	}

	rows := make([]MemoryRow, 0, PageWords)

	for i := 0; i < PageWords; i++ {
		addr := uint16(start + i*2)
		word := uint16(vm.Memory[addr])<<8 | uint16(vm.Memory[addr+1])

		rows = append(rows, MemoryRow{
			Address:    addr,
			Word:       word,
			Mnemonic:   chip8.Disassemble(word),
			Current:    addr == vm.PC,
			Breakpoint: d.At(addr),
		})
	}

	return rows
}

// RegistersView returns a snapshot of vm's registers for display.
func (d *Debugger) RegistersView(vm *chip8.VM) RegistersView {
	return RegistersView{
		V:  vm.V,
		I:  vm.I,
		PC: vm.PC,
		SP: vm.SP,
		DT: vm.DT,
		ST: vm.ST,
	}
}
