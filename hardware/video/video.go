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

// Package video implements the machine's display: a grid of 64x32 one-bit
// pixels. The display is mutated only by the clear-screen and draw-sprite
// instructions. A renderer outside of the hardware reads the Pixels array
// and should present it whenever Redraw() reports true.
package video

import (
	"strings"

	"github.com/billymyers/UCHIP/hardware/preferences"
)

// Screen geometry.
const (
	ClksScreen      = 64
	ScanlinesScreen = 32
)

// Video is the pixel display of the machine.
type Video struct {
	prefs *preferences.Preferences

	// one entry per pixel. 0x00 unlit, 0x01 lit. indexed by scanline and
	// then clock
	Pixels [ScanlinesScreen][ClksScreen]uint8

	// whether display content was touched during the current cycle. reset
	// by NewFrame()
	redraw bool
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo(prefs *preferences.Preferences) *Video {
	return &Video{prefs: prefs}
}

// Reset the display to all pixels unlit. Unlike Clear() this does not count
// as touching the display. Used by the machine's power/reset sequence.
func (vid *Video) Reset() {
	vid.Pixels = [ScanlinesScreen][ClksScreen]uint8{}
	vid.redraw = false
}

// NewFrame marks the start of a machine cycle, clearing the redraw flag.
func (vid *Video) NewFrame() {
	vid.redraw = false
}

// Redraw reports whether display content was touched during the current
// cycle. Renderers can use this as a hint to skip presentation; the Pixels
// array is always internally consistent either way.
func (vid *Video) Redraw() bool {
	return vid.redraw
}

// Clear every pixel on the display.
func (vid *Video) Clear() {
	vid.Pixels = [ScanlinesScreen][ClksScreen]uint8{}
	vid.redraw = true
}

// DrawSprite XORs a sprite onto the display and returns whether any lit
// pixel was unlit by the draw (a collision). Each byte of the sprite is one
// row of eight pixels, most significant bit leftmost.
//
// The origin coordinates always wrap to the screen. The placement of pixels
// beyond the origin is controlled by the SpriteWrap preference: when
// enabled pixels wrap around the screen edges; when disabled they are not
// drawn and do not collide.
func (vid *Video) DrawSprite(x uint8, y uint8, sprite []uint8) bool {
	vid.redraw = true

	ox := int(x) % ClksScreen
	oy := int(y) % ScanlinesScreen

	collision := false

	for row, bits := range sprite {
		py := oy + row
		if vid.prefs.SpriteWrap {
			py %= ScanlinesScreen
		} else if py >= ScanlinesScreen {
			continue
		}

		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px := ox + col
			if vid.prefs.SpriteWrap {
				px %= ClksScreen
			} else if px >= ClksScreen {
				continue
			}

			if vid.Pixels[py][px] != 0 {
				collision = true
			}
			vid.Pixels[py][px] ^= 0x01
		}
	}

	return collision
}

// String returns the display as rows of characters, lit pixels as '*'.
// Useful in error reports from tests.
func (vid *Video) String() string {
	s := strings.Builder{}
	for y := 0; y < ScanlinesScreen; y++ {
		for x := 0; x < ClksScreen; x++ {
			if vid.Pixels[y][x] != 0 {
				s.WriteRune('*')
			} else {
				s.WriteRune('.')
			}
		}
		s.WriteRune('\n')
	}
	return s.String()
}
