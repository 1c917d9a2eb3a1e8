package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-chip8/chip8vm/chip8"
	"github.com/go-chip8/chip8vm/debugger"
)

var (
	on  = color.RGBA{R: 17, G: 29, B: 43, A: 255}
	off = color.RGBA{R: 143, G: 145, B: 133, A: 255}
)

func TestRenderProducesScaledImage(t *testing.T) {
	a := New(4, on, off, nil)
	vm := chip8.New()

	img := a.Render(vm)

	require.Equal(t, chip8.DisplayWidth*4, img.Bounds().Dx())
	require.Equal(t, chip8.DisplayHeight*4, img.Bounds().Dy())
}

func TestRenderPaintsOnColorForLitPixels(t *testing.T) {
	a := New(2, on, off, nil)
	vm := chip8.New()
	vm.Video[0] = 1

	img := a.Render(vm)

	require.Equal(t, on, img.RGBAAt(0, 0))
	require.Equal(t, on, img.RGBAAt(1, 1))
	require.Equal(t, off, img.RGBAAt(2, 0))
}

func TestNewClampsScaleToAtLeastOne(t *testing.T) {
	a := New(0, on, off, nil)
	require.Equal(t, 1, a.Scale)
}

func TestDebuggerOverlayHiddenByDefault(t *testing.T) {
	dbg := debugger.New()
	a := New(1, on, off, dbg)
	vm := chip8.New()

	_, _, visible := a.DebuggerOverlay(vm)
	require.False(t, visible)
}

func TestDebuggerOverlayReportsViewsWhenVisible(t *testing.T) {
	dbg := debugger.New()
	dbg.SetVisible(true)

	a := New(1, on, off, dbg)
	vm := chip8.New()
	require.NoError(t, vm.LoadROM([]byte{0x00, 0xE0}))

	rows, regs, visible := a.DebuggerOverlay(vm)
	require.True(t, visible)
	require.Len(t, rows, debugger.PageWords)
	require.EqualValues(t, vm.PC, regs.PC)
}

func TestDebuggerOverlayWithNilDebuggerIsAlwaysHidden(t *testing.T) {
	a := New(1, on, off, nil)

	_, _, visible := a.DebuggerOverlay(chip8.New())
	require.False(t, visible)
}
