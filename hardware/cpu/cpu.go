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

package cpu

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/billymyers/UCHIP/hardware/input"
	"github.com/billymyers/UCHIP/hardware/memory"
	"github.com/billymyers/UCHIP/hardware/preferences"
	"github.com/billymyers/UCHIP/hardware/video"
)

// Processor geometry.
const (
	NumRegisters = 16
	StackDepth   = 16

	// value of the program counter after reset. the first instruction of
	// the cartridge
	ResetPC = memory.OriginCart
)

// Flag is the register conventionally overwritten as a flag output by the
// arithmetic, shift and draw instructions. It is not a separate entity,
// just a shared use of register VF.
const Flag = 0x0f

// CPU implements the processor. Registers are exported for the benefit of
// the host: reading them is always safe between calls to
// ExecuteInstruction().
type CPU struct {
	prefs  *preferences.Preferences
	mem    *memory.RAM
	vid    *video.Video
	keypad *input.Keypad

	// general purpose registers. V[Flag] doubles as the flag output
	V [NumRegisters]uint8

	// index register. used as an indirect pointer into memory
	I uint16

	// program counter
	PC uint16

	// call stack. SP points at the first free slot and aliases modulo
	// StackDepth, meaning overflow and underflow go unguarded, as on the
	// original hardware
	Stack [StackDepth]uint16
	SP    uint8

	// timers. each decremented once per executed cycle while nonzero
	DelayTimer uint8
	SoundTimer uint8

	// a single generator owned by the processor, seeded at creation
	rnd *rand.Rand
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(prefs *preferences.Preferences, mem *memory.RAM, vid *video.Video, keypad *input.Keypad) *CPU {
	return &CPU{
		prefs:  prefs,
		mem:    mem,
		vid:    vid,
		keypad: keypad,
		PC:     ResetPC,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reset reinitialises all registers, the stack and both timers. Memory,
// display and keypad are owned elsewhere and are not touched.
func (mc *CPU) Reset() {
	mc.V = [NumRegisters]uint8{}
	mc.I = 0
	mc.PC = ResetPC
	mc.Stack = [StackDepth]uint16{}
	mc.SP = 0
	mc.DelayTimer = 0
	mc.SoundTimer = 0
}

func (mc *CPU) String() string {
	return fmt.Sprintf("PC=%#04x I=%#04x SP=%d DT=%#02x ST=%#02x V=%#02x",
		mc.PC, mc.I, mc.SP, mc.DelayTimer, mc.SoundTimer, mc.V)
}

// ExecuteInstruction performs one fetch-decode-execute cycle: the two bytes
// at the program counter are combined into an instruction word, the
// matching handler mutates machine state and decides how far the program
// counter advances, and then both timers are decremented if nonzero.
//
// An instruction word that matches no defined operation returns an error
// with the IllegalOpcode pattern. Nothing else about the cycle happens in
// that case.
func (mc *CPU) ExecuteInstruction() error {
	opcode := mc.mem.Read16(mc.PC)

	advance, err := mc.execute(opcode)
	if err != nil {
		return err
	}
	mc.PC += advance

	if mc.DelayTimer > 0 {
		mc.DelayTimer--
	}
	if mc.SoundTimer > 0 {
		mc.SoundTimer--
	}

	return nil
}

// push the address of the instruction following the one at the current
// program counter onto the call stack.
func (mc *CPU) push() {
	mc.Stack[mc.SP%StackDepth] = mc.PC + 2
	mc.SP = (mc.SP + 1) % StackDepth
}

// pop a return address from the call stack.
func (mc *CPU) pop() uint16 {
	mc.SP = (mc.SP + StackDepth - 1) % StackDepth
	return mc.Stack[mc.SP]
}
