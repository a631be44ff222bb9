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

package hardware

import (
	"github.com/billymyers/UCHIP/cartridgeloader"
	"github.com/billymyers/UCHIP/curated"
	"github.com/billymyers/UCHIP/hardware/cpu"
	"github.com/billymyers/UCHIP/hardware/input"
	"github.com/billymyers/UCHIP/hardware/memory"
	"github.com/billymyers/UCHIP/hardware/preferences"
	"github.com/billymyers/UCHIP/hardware/video"
	"github.com/billymyers/UCHIP/logger"
)

// PowerOff is the error pattern returned by Step() when no cartridge has
// been attached.
const PowerOff = "machine: power is off"

// PerformanceBrake is the number of instructions to execute between checks
// of expensive conditions (timers, channels) in a Run() callback. Callbacks
// that check on every instruction slow an uncapped emulation noticeably.
const PerformanceBrake = 100

// Chip8 is the main container for the emulated components of the machine.
type Chip8 struct {
	Prefs  *preferences.Preferences
	Mem    *memory.RAM
	Video  *video.Video
	Keypad *input.Keypad
	CPU    *cpu.CPU

	// the machine is powered once a cartridge load has completed
	powered bool
}

// NewChip8 creates a new machine and everything associated with it. A nil
// prefs argument means default preferences.
func NewChip8(prefs *preferences.Preferences) *Chip8 {
	if prefs == nil {
		prefs = preferences.NewPreferences()
	}

	ch8 := &Chip8{Prefs: prefs}
	ch8.Mem = memory.NewRAM()
	ch8.Video = video.NewVideo(prefs)
	ch8.Keypad = input.NewKeypad()
	ch8.CPU = cpu.NewCPU(prefs, ch8.Mem, ch8.Video, ch8.Keypad)

	return ch8
}

// Reset the machine: all registers, the call stack, both timers, the keypad
// and the display are zeroed; memory is wiped and the font table
// reinstalled. The machine is unpowered until the next cartridge load.
func (ch8 *Chip8) Reset() {
	ch8.Mem.Reset()
	ch8.Video.Reset()
	ch8.Keypad.Reset()
	ch8.CPU.Reset()
	ch8.powered = false
}

// AttachCartridge resets the machine, copies the cartridge bytes into
// memory at the cartridge origin and powers the machine on.
func (ch8 *Chip8) AttachCartridge(cartload cartridgeloader.Loader) error {
	ch8.Reset()

	if err := ch8.Mem.WriteCart(cartload.Data); err != nil {
		return curated.Errorf("machine: %v", err)
	}
	ch8.powered = true

	logger.Logf("machine", "cartridge attached: %s (%d bytes)", cartload.ShortName(), len(cartload.Data))

	return nil
}

// IsPowered returns true once a cartridge load has completed and the
// machine is eligible to execute cycles.
func (ch8 *Chip8) IsPowered() bool {
	return ch8.powered
}

// Step the machine through exactly one fetch-decode-execute cycle. The
// redraw flag is cleared at the start of the cycle and set again only if
// the cycle touched the display.
func (ch8 *Chip8) Step() error {
	if !ch8.powered {
		return curated.Errorf(PowerOff)
	}

	ch8.Video.NewFrame()

	return ch8.CPU.ExecuteInstruction()
}

// Run the machine until the continueCheck callback returns false or an
// error. continueCheck is called after every step; a nil callback means run
// forever or until a machine error.
func (ch8 *Chip8) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for {
		if err := ch8.Step(); err != nil {
			return err
		}

		cont, err := continueCheck()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}
