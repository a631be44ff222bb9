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

// Package playmode ties together the machine, the SDL window and the
// keyboard into a playable emulation.
package playmode

import (
	"os"
	"os/signal"
	"time"

	"github.com/billymyers/UCHIP/cartridgeloader"
	"github.com/billymyers/UCHIP/curated"
	"github.com/billymyers/UCHIP/gui"
	"github.com/billymyers/UCHIP/gui/sdlplay"
	"github.com/billymyers/UCHIP/hardware"
	"github.com/billymyers/UCHIP/hardware/preferences"
	"github.com/billymyers/UCHIP/logger"
	"github.com/billymyers/UCHIP/wavwriter"
)

// Play sets up a playable emulation of the named cartridge and runs it until
// the window is closed, the user interrupts, or the machine errors. The tick
// argument is the number of machine instructions executed per second.
func Play(cartload cartridgeloader.Loader, prefs *preferences.Preferences, scale float32, tick int, wavFile string) error {
	scr, err := sdlplay.NewSdlPlay(scale)
	if err != nil {
		return curated.Errorf("playmode: %v", err)
	}
	defer scr.Destroy()

	events := make(chan gui.Event, 10)
	scr.SetEventChannel(events)

	if !cartload.HasLoaded() {
		err = cartload.Load()
		if err != nil {
			return curated.Errorf("playmode: %v", err)
		}
	}

	ch8 := hardware.NewChip8(prefs)

	err = ch8.AttachCartridge(cartload)
	if err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	var wav *wavwriter.WavWriter
	if wavFile != "" {
		wav, err = wavwriter.New(wavFile, tick)
		if err != nil {
			return curated.Errorf("playmode: %v", err)
		}
	}

	// the emulation only ever advances on a tick so the instruction rate
	// stays constant whatever the display is doing
	ticker := time.NewTicker(time.Second / time.Duration(tick))
	defer ticker.Stop()

	// ctrl-c on the terminal ends the emulation cleanly
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	logger.Logf("playmode", "running %s", cartload.ShortName())

	err = ch8.Run(func() (bool, error) {
		scr.Service()

		// drain all pending gui events before advancing the machine
		for {
			select {
			case ev := <-events:
				switch ev.ID {
				case gui.EventWindowClose:
					return false, nil
				case gui.EventKeyboard:
					if !KeyboardEventHandler(ev.Data.(gui.EventDataKeyboard), ch8) {
						return false, nil
					}
				}
			case <-intChan:
				return false, nil
			case <-ticker.C:
				beep := ch8.CPU.SoundTimer > 0
				scr.SetBeep(beep)
				if wav != nil {
					wav.SetAudio(beep)
				}

				if ch8.Video.Redraw() {
					err := scr.UpdateScreen(ch8.Video)
					if err != nil {
						return false, err
					}
				}

				return true, nil
			}
		}
	})

	if wav != nil {
		werr := wav.EndMixing()
		if werr != nil && err == nil {
			err = werr
		}
	}

	if err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	return nil
}
