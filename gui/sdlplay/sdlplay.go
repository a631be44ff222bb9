// This file is part of UCHIP.
//
// UCHIP is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// UCHIP is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with UCHIP.  If not, see <https://www.gnu.org/licenses/>.

// Package sdlplay implements a playable window for the emulation using SDL2.
// The window shows the machine's display scaled up by a user supplied factor
// and forwards keyboard and window events on a channel supplied by the
// emulation loop.
//
// SDL requires that all window and renderer functions are called from the
// main OS thread. The emulation loop and the Service() function therefore
// both run on the main goroutine.
package sdlplay

import (
	"github.com/billymyers/UCHIP/curated"
	"github.com/billymyers/UCHIP/gui"
	"github.com/billymyers/UCHIP/hardware/video"

	"github.com/veandco/go-sdl2/sdl"
)

// the number of bytes per pixel in the streaming texture (RGBA)
const pixelDepth = 4

// SdlPlay is a simple SDL2 window for playing a cartridge.
type SdlPlay struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// the pixel buffer that is copied to the streaming texture every update
	pixels []byte

	// the channel on which gui events are sent. registered with
	// SetEventChannel()
	events chan gui.Event

	audio *beeper
}

// NewSdlPlay is the preferred method of initialisation for the SdlPlay type.
// Scale is the size of a single machine pixel in screen pixels.
func NewSdlPlay(scale float32) (*SdlPlay, error) {
	scr := &SdlPlay{}

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.window, err = sdl.CreateWindow("UCHIP",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(float32(video.ClksScreen)*scale), int32(float32(video.ScanlinesScreen)*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1,
		uint32(sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC))
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	// logical size means the renderer handles the scaling for us
	err = scr.renderer.SetLogicalSize(video.ClksScreen, video.ScanlinesScreen)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		video.ClksScreen, video.ScanlinesScreen)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.pixels = make([]byte, video.ClksScreen*video.ScanlinesScreen*pixelDepth)

	scr.audio, err = newBeeper()
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	return scr, nil
}

// Destroy closes the window and releases all SDL resources.
func (scr *SdlPlay) Destroy() {
	scr.audio.destroy()
	_ = scr.texture.Destroy()
	_ = scr.renderer.Destroy()
	_ = scr.window.Destroy()
	sdl.Quit()
}

// SetEventChannel registers the channel on which gui events will be sent.
// Events are dropped if the channel is full.
func (scr *SdlPlay) SetEventChannel(events chan gui.Event) {
	scr.events = events
}

// SetBeep turns the audio beep on or off.
func (scr *SdlPlay) SetBeep(on bool) {
	scr.audio.set(on)
}

// UpdateScreen copies the machine's display to the window. Should be called
// whenever the machine indicates that the display has changed.
func (scr *SdlPlay) UpdateScreen(vid *video.Video) error {
	i := 0
	for y := 0; y < video.ScanlinesScreen; y++ {
		for x := 0; x < video.ClksScreen; x++ {
			var c byte
			if vid.Pixels[y][x] != 0 {
				c = 255
			}
			scr.pixels[i] = c
			scr.pixels[i+1] = c
			scr.pixels[i+2] = c
			scr.pixels[i+3] = 255
			i += pixelDepth
		}
	}

	err := scr.texture.Update(nil, scr.pixels, video.ClksScreen*pixelDepth)
	if err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	err = scr.renderer.Clear()
	if err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	scr.renderer.Present()

	return nil
}
