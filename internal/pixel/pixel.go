// Package pixel hosts the chipvm display and keypad input on a pixelgl
// window.
package pixel

import (
	"fmt"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

const screenWidth float64 = 1024
const screenHeight float64 = 512

// Window embeds a pixelgl window and holds the keymapping of hex keypad
// code -> pixelgl.Button. The CHIP-8 keypad maps onto the left side of a
// QWERTY keyboard:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   ->   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
type Window struct {
	*pixelgl.Window
	KeyMap map[byte]pixelgl.Button
}

// NewWindow creates the pixelgl window config, initializes the window,
// and returns a Window with the keypad mapping in place. Must run on the
// main thread (inside pixelgl.Run).
func NewWindow(title string) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, screenWidth, screenHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating new window: %v", err)
	}
	km := map[byte]pixelgl.Button{
		0x1: pixelgl.Key1, 0x2: pixelgl.Key2,
		0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
		0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW,
		0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
		0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS,
		0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
		0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX,
		0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
	}
	return &Window{Window: w, KeyMap: km}, nil
}

// DrawGraphics renders the framebuffer rows (32 rows of 64 bytes, top row
// first, each byte 0 or 1) scaled to the window.
func (w *Window) DrawGraphics(rows [][]byte) {
	w.Clear(colornames.Black)
	imDraw := imdraw.New(nil)
	imDraw.Color = pixel.RGB(1, 1, 1)

	cellW := screenWidth / float64(len(rows[0]))
	cellH := screenHeight / float64(len(rows))

	for y, row := range rows {
		for x, px := range row {
			if px == 0 {
				continue
			}
			// Row 0 is the top of the screen; pixel's origin is bottom-left.
			wy := screenHeight - cellH*float64(y+1)
			imDraw.Push(pixel.V(cellW*float64(x), wy))
			imDraw.Push(pixel.V(cellW*float64(x)+cellW, wy+cellH))
			imDraw.Rectangle(0)
		}
	}

	imDraw.Draw(w)
	w.Update()
}

// HandleKeyInput forwards keypad press and release edges to the VM entry
// points.
func (w *Window) HandleKeyInput(press, release func(idx byte)) {
	for code, key := range w.KeyMap {
		if w.JustPressed(key) {
			press(code)
		}
		if w.JustReleased(key) {
			release(code)
		}
	}
}
