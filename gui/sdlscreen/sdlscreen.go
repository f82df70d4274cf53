// This file is part of LiteX-Go.
//
// LiteX-Go is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// LiteX-Go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with LiteX-Go.  If not, see <https://www.gnu.org/licenses/>.

// Package sdlscreen displays the simulated framebuffer scanout in an SDL
// window. Window creation must happen on the main thread; the main program
// arranges that through its creator channel. Render() may be called from the
// driver loop goroutine.
package sdlscreen

import (
	"io"

	"github.com/disdi/litex/curated"
	"github.com/disdi/litex/hardware/framebuffer"
	"github.com/veandco/go-sdl2/sdl"
)

// SDLError is the error pattern for failures in the SDL layer.
const SDLError = "sdlscreen: %v"

// Screen is the scanout window.
type Screen struct {
	fb *framebuffer.Framebuffer

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width  int32
	height int32
	pixels []byte

	quit chan bool
}

// NewScreen is the preferred method of initialisation for Screen.
// #mainthread
func NewScreen(fb *framebuffer.Framebuffer) (*Screen, error) {
	scr := &Screen{
		fb:   fb,
		quit: make(chan bool, 1),
	}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	// window size is set in Resize() once the mode is known
	scr.window, err = sdl.CreateWindow("LiteX-Go",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		0, 0,
		uint32(sdl.WINDOW_HIDDEN))
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	err = scr.Resize()
	if err != nil {
		return nil, err
	}

	scr.window.Show()

	return scr, nil
}

// Resize the window and texture to the framebuffer's current mode. Called
// once at creation and again after every mode change.
func (scr *Screen) Resize() error {
	hres, vres := scr.fb.Resolution()
	if hres == 0 || vres == 0 {
		// no mode programmed yet. a small placeholder keeps SDL happy
		hres = 640
		vres = 480
	}

	scr.width = int32(hres)
	scr.height = int32(vres)
	scr.pixels = make([]byte, hres*vres*framebuffer.PixelDepth)

	// the texture is the size of the pixel array and is updated from it on
	// every Render()
	var err error
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		scr.width,
		scr.height)
	if err != nil {
		return curated.Errorf(SDLError, err)
	}

	scr.window.SetSize(scr.width, scr.height)

	return nil
}

// Render one frame: scan the framebuffer's DMA window out into the pixel
// array and present it.
func (scr *Screen) Render() error {
	h, v := scr.fb.Resolution()
	if int32(h) != scr.width || int32(v) != scr.height {
		err := scr.Resize()
		if err != nil {
			return err
		}
	}

	scr.fb.Scanout(scr.pixels)

	err := scr.texture.Update(nil, scr.pixels, int(scr.width)*framebuffer.PixelDepth)
	if err != nil {
		return curated.Errorf(SDLError, err)
	}

	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		return curated.Errorf(SDLError, err)
	}

	scr.renderer.Present()

	return nil
}

// Service the SDL event queue. MUST ONLY be called from the main thread, as
// part of the main program's service loop. It should not pause or loop
// longer than necessary.
// #mainthread
func (scr *Screen) Service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev.(type) {
		case *sdl.QuitEvent:
			select {
			case scr.quit <- true:
			default:
			}
		}
	}
}

// Quit returns the channel signalled when the window is closed.
func (scr *Screen) Quit() <-chan bool {
	return scr.quit
}

// Destroy implements the main program's GuiCreator interface.
// #mainthread
func (scr *Screen) Destroy(output io.Writer) {
	if scr.texture != nil {
		_ = scr.texture.Destroy()
	}
	if scr.renderer != nil {
		_ = scr.renderer.Destroy()
	}
	if scr.window != nil {
		err := scr.window.Destroy()
		if err != nil {
			io.WriteString(output, err.Error())
		}
	}
	sdl.Quit()
}
