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

package sdlplay

import (
	"github.com/billymyers/UCHIP/gui"

	"github.com/veandco/go-sdl2/sdl"
)

// Service pumps the SDL event queue and translates events onto the
// registered event channel. Must be called frequently and only from the
// main OS thread.
func (scr *SdlPlay) Service() {
	// the amount of time to wait for an SDL event is kept short so that the
	// emulation loop is not starved
	ev := sdl.WaitEventTimeout(1)
	if ev == nil {
		return
	}

	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		scr.pushEvent(gui.Event{ID: gui.EventWindowClose})

	case *sdl.KeyboardEvent:
		if ev.Repeat == 1 {
			return
		}

		switch ev.Type {
		case sdl.KEYDOWN:
			scr.pushEvent(gui.Event{
				ID: gui.EventKeyboard,
				Data: gui.EventDataKeyboard{
					Key:  sdl.GetKeyName(ev.Keysym.Sym),
					Down: true,
				}})
		case sdl.KEYUP:
			scr.pushEvent(gui.Event{
				ID: gui.EventKeyboard,
				Data: gui.EventDataKeyboard{
					Key:  sdl.GetKeyName(ev.Keysym.Sym),
					Down: false,
				}})
		}
	}
}

// pushEvent sends an event on the registered channel. events are dropped
// rather than have the gui block.
func (scr *SdlPlay) pushEvent(ev gui.Event) {
	if scr.events == nil {
		return
	}

	select {
	case scr.events <- ev:
	default:
	}
}
