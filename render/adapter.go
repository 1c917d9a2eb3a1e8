// Package render projects a chip8.VM's framebuffer into an RGBA image
// for a host surface, and reports the debugger views for the host to
// draw when the debugger is visible.
package render

import (
	"image"
	"image/color"

	"github.com/go-chip8/chip8vm/chip8"
	"github.com/go-chip8/chip8vm/debugger"
)

// Adapter renders a VM's framebuffer at a fixed integer pixel scale,
// with configurable on/off colors, and reports the debugger's memory
// and register views when the debugger is visible. Render itself does
// not draw the debugger views into the image.
type Adapter struct {
	Scale   int
	On, Off color.RGBA

	dbg *debugger.Debugger
}

// New returns an Adapter scaling each CHIP-8 pixel to a scale x scale
// block of on/off colored pixels. dbg may be nil; if set, its Visible
// flag gates whether DebuggerOverlay reports anything to draw.
func New(scale int, on, off color.RGBA, dbg *debugger.Debugger) *Adapter {
	if scale < 1 {
		scale = 1
	}

	return &Adapter{Scale: scale, On: on, Off: off, dbg: dbg}
}

// Render projects vm's framebuffer into a freshly allocated RGBA
// image of chip8.DisplayWidth*Scale x chip8.DisplayHeight*Scale
// pixels.
func (a *Adapter) Render(vm *chip8.VM) *image.RGBA {
	w := chip8.DisplayWidth * a.Scale
	h := chip8.DisplayHeight * a.Scale

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fb := vm.Framebuffer()

	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			c := a.Off
			if fb[y*chip8.DisplayWidth+x] != 0 {
				c = a.On
			}

			for dy := 0; dy < a.Scale; dy++ {
				for dx := 0; dx < a.Scale; dx++ {
					img.SetRGBA(x*a.Scale+dx, y*a.Scale+dy, c)
				}
			}
		}
	}

	return img
}

// DebuggerOverlay returns the debugger's memory and register views
// for vm, along with whether the overlay should be drawn at all. A
// nil Debugger always reports not visible.
func (a *Adapter) DebuggerOverlay(vm *chip8.VM) ([]debugger.MemoryRow, debugger.RegistersView, bool) {
	if a.dbg == nil || !a.dbg.Visible() {
		return nil, debugger.RegistersView{}, false
	}

	return a.dbg.MemoryView(vm), a.dbg.RegistersView(vm), true
}
