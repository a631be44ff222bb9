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

package cpu_test

import (
	"testing"

	"github.com/billymyers/UCHIP/curated"
	"github.com/billymyers/UCHIP/hardware/cpu"
	"github.com/billymyers/UCHIP/hardware/input"
	"github.com/billymyers/UCHIP/hardware/memory"
	"github.com/billymyers/UCHIP/hardware/preferences"
	"github.com/billymyers/UCHIP/hardware/video"
	"github.com/billymyers/UCHIP/test"
)

type testMachine struct {
	prefs  *preferences.Preferences
	mem    *memory.RAM
	vid    *video.Video
	keypad *input.Keypad
	mc     *cpu.CPU
}

func newTestMachine(dialect preferences.Dialect) *testMachine {
	tm := &testMachine{}
	tm.prefs = preferences.NewPreferences()
	tm.prefs.Dialect = dialect
	tm.mem = memory.NewRAM()
	tm.vid = video.NewVideo(tm.prefs)
	tm.keypad = input.NewKeypad()
	tm.mc = cpu.NewCPU(tm.prefs, tm.mem, tm.vid, tm.keypad)
	return tm
}

// putInstructions writes instruction words to memory, high byte first,
// returning the address after the last word.
func (tm *testMachine) putInstructions(origin uint16, words ...uint16) uint16 {
	for i, w := range words {
		tm.mem.Write8(origin+uint16(i*2), uint8(w>>8))
		tm.mem.Write8(origin+uint16(i*2)+1, uint8(w))
	}
	return origin + uint16(len(words)*2)
}

func (tm *testMachine) step(t *testing.T) {
	t.Helper()
	if err := tm.mc.ExecuteInstruction(); err != nil {
		t.Fatal(err)
	}
}

func TestReset(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	tm.mc.V[5] = 0xaa
	tm.mc.I = 0x123
	tm.mc.SP = 3
	tm.mc.DelayTimer = 10
	tm.mc.SoundTimer = 10
	tm.putInstructions(cpu.ResetPC, 0x1400)
	tm.step(t)

	tm.mc.Reset()
	for i := 0; i < cpu.NumRegisters; i++ {
		test.Equate(t, tm.mc.V[i], 0)
	}
	test.Equate(t, tm.mc.I, 0)
	test.Equate(t, tm.mc.PC, cpu.ResetPC)
	test.Equate(t, tm.mc.SP, 0)
	test.Equate(t, tm.mc.DelayTimer, 0)
	test.Equate(t, tm.mc.SoundTimer, 0)
}

func TestLoadAndAddImmediate(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	// V1 = 0x20; V1 += 0x05; V1 += 0xf0 (wraps)
	tm.putInstructions(cpu.ResetPC, 0x6120, 0x7105, 0x71f0)

	tm.step(t)
	test.Equate(t, tm.mc.V[1], 0x20)
	test.Equate(t, tm.mc.PC, cpu.ResetPC+2)

	tm.step(t)
	test.Equate(t, tm.mc.V[1], 0x25)

	// add immediate wraps modulo 256 and does not touch the flag register
	tm.mc.V[cpu.Flag] = 0xee
	tm.step(t)
	test.Equate(t, tm.mc.V[1], 0x15)
	test.Equate(t, tm.mc.V[cpu.Flag], 0xee)
}

func TestJump(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	tm.putInstructions(cpu.ResetPC, 0x1400)
	tm.step(t)
	test.Equate(t, tm.mc.PC, 0x400)

	// jump with offset
	tm.mc.V[0] = 0x10
	tm.putInstructions(0x400, 0xb500)
	tm.step(t)
	test.Equate(t, tm.mc.PC, 0x510)
}

func TestCallReturn(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	// call a subroutine at 0x400 that returns immediately
	tm.putInstructions(cpu.ResetPC, 0x2400)
	tm.putInstructions(0x400, 0x00ee)

	tm.step(t)
	test.Equate(t, tm.mc.PC, 0x400)
	test.Equate(t, tm.mc.SP, 1)

	// return restores the program counter to the instruction immediately
	// after the call
	tm.step(t)
	test.Equate(t, tm.mc.PC, cpu.ResetPC+2)
	test.Equate(t, tm.mc.SP, 0)
}

func TestSkips(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	tm.mc.V[2] = 0x42
	tm.mc.V[3] = 0x42
	tm.mc.V[4] = 0x99

	// skip-eq-imm taken
	tm.putInstructions(cpu.ResetPC, 0x3242)
	tm.step(t)
	test.Equate(t, tm.mc.PC, cpu.ResetPC+4)

	// skip-eq-imm not taken
	pc := tm.mc.PC
	tm.putInstructions(pc, 0x3241)
	tm.step(t)
	test.Equate(t, tm.mc.PC, pc+2)

	// skip-ne-imm taken
	pc = tm.mc.PC
	tm.putInstructions(pc, 0x4241)
	tm.step(t)
	test.Equate(t, tm.mc.PC, pc+4)

	// skip-eq-reg taken
	pc = tm.mc.PC
	tm.putInstructions(pc, 0x5230)
	tm.step(t)
	test.Equate(t, tm.mc.PC, pc+4)

	// skip-ne-reg taken
	pc = tm.mc.PC
	tm.putInstructions(pc, 0x9240)
	tm.step(t)
	test.Equate(t, tm.mc.PC, pc+4)

	// skip-ne-reg not taken
	pc = tm.mc.PC
	tm.putInstructions(pc, 0x9230)
	tm.step(t)
	test.Equate(t, tm.mc.PC, pc+2)
}

func TestBitwise(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	tm.mc.V[0] = 0x0f
	tm.mc.V[1] = 0x55

	// copy; or; and; xor
	tm.putInstructions(cpu.ResetPC, 0x8210, 0x8011, 0x8012, 0x8013)

	tm.step(t)
	test.Equate(t, tm.mc.V[2], 0x55)

	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x5f)

	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x55)

	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x00)
}

func TestAddWithCarry(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	tm.mc.V[0] = 0xff
	tm.mc.V[1] = 0x01
	tm.putInstructions(cpu.ResetPC, 0x8014, 0x8014)

	// 0xff + 0x01 wraps to 0x00 with the carry flag set
	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x00)
	test.Equate(t, tm.mc.V[cpu.Flag], 1)

	// 0x00 + 0x01 clears the carry flag again
	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x01)
	test.Equate(t, tm.mc.V[cpu.Flag], 0)
}

func TestSubtract(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	// no borrow: V0 = 0x05 - 0x03 = 0x02, flag set
	tm.mc.V[0] = 0x05
	tm.mc.V[1] = 0x03
	tm.putInstructions(cpu.ResetPC, 0x8015)
	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x02)
	test.Equate(t, tm.mc.V[cpu.Flag], 1)

	// borrow: V0 = 0x03 - 0x05 = 0xfe, flag clear
	tm.mc.Reset()
	tm.mc.V[0] = 0x03
	tm.mc.V[1] = 0x05
	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0xfe)
	test.Equate(t, tm.mc.V[cpu.Flag], 0)

	// equal operands count as no borrow
	tm.mc.Reset()
	tm.mc.V[0] = 0x07
	tm.mc.V[1] = 0x07
	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x00)
	test.Equate(t, tm.mc.V[cpu.Flag], 1)
}

func TestSubtractReversed(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	// V0 = V1 - V0
	tm.mc.V[0] = 0x03
	tm.mc.V[1] = 0x05
	tm.putInstructions(cpu.ResetPC, 0x8017)
	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x02)
	test.Equate(t, tm.mc.V[cpu.Flag], 1)

	tm.mc.Reset()
	tm.mc.V[0] = 0x05
	tm.mc.V[1] = 0x03
	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0xfe)
	test.Equate(t, tm.mc.V[cpu.Flag], 0)
}

func TestShiftSCHIP(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	// SCHIP shifts VX in place. VY plays no part
	tm.mc.V[0] = 0x03
	tm.mc.V[1] = 0xf0
	tm.putInstructions(cpu.ResetPC, 0x8016)
	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x01)
	test.Equate(t, tm.mc.V[1], 0xf0)
	test.Equate(t, tm.mc.V[cpu.Flag], 1)

	// shift left of 0x81 wraps to 0x02 with the flag holding the high bit
	tm.mc.Reset()
	tm.mc.V[0] = 0x81
	tm.putInstructions(cpu.ResetPC, 0x801e)
	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x02)
	test.Equate(t, tm.mc.V[cpu.Flag], 1)
}

func TestShiftCOSMAC(t *testing.T) {
	tm := newTestMachine(preferences.DialectCOSMAC)

	// COSMAC shifts VY into VX. VY is unmodified
	tm.mc.V[0] = 0xff
	tm.mc.V[1] = 0x03
	tm.putInstructions(cpu.ResetPC, 0x8016)
	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x01)
	test.Equate(t, tm.mc.V[1], 0x03)
	test.Equate(t, tm.mc.V[cpu.Flag], 1)

	tm.mc.Reset()
	tm.mc.V[0] = 0x00
	tm.mc.V[1] = 0xc0
	tm.putInstructions(cpu.ResetPC, 0x801e)
	tm.step(t)
	test.Equate(t, tm.mc.V[0], 0x80)
	test.Equate(t, tm.mc.V[1], 0xc0)
	test.Equate(t, tm.mc.V[cpu.Flag], 1)
}

func TestRandomMask(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	// the random byte is AND-ed with the immediate. a zero mask is the
	// only deterministic case
	tm.mc.V[3] = 0xaa
	tm.putInstructions(cpu.ResetPC, 0xc300, 0xc30f)

	tm.step(t)
	test.Equate(t, tm.mc.V[3], 0x00)

	tm.step(t)
	if tm.mc.V[3] > 0x0f {
		t.Errorf("random byte not masked (%#02x)", tm.mc.V[3])
	}
}

func TestIndexRegister(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	// I = 0x123; I += V0
	tm.mc.V[0] = 0x10
	tm.putInstructions(cpu.ResetPC, 0xa123, 0xf01e)

	tm.step(t)
	test.Equate(t, tm.mc.I, 0x123)

	tm.step(t)
	test.Equate(t, tm.mc.I, 0x133)
	test.Equate(t, tm.mc.V[cpu.Flag], 0)

	// adding past 0x0fff sets the flag
	tm.mc.Reset()
	tm.mc.I = 0x0fff
	tm.mc.V[0] = 0x02
	tm.putInstructions(cpu.ResetPC, 0xf01e)
	tm.step(t)
	test.Equate(t, tm.mc.I, 0x1001)
	test.Equate(t, tm.mc.V[cpu.Flag], 1)
}

func TestFontAddress(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	tm.mc.V[4] = 0x0a
	tm.putInstructions(cpu.ResetPC, 0xf429)
	tm.step(t)
	test.Equate(t, tm.mc.I, uint16(0x0a*memory.FontGlyphSize))

	// the glyph rows for 'A' are found at the computed address
	font := memory.FontData()
	for i := 0; i < memory.FontGlyphSize; i++ {
		test.Equate(t, tm.mem.Read8(tm.mc.I+uint16(i)), font[0x0a*memory.FontGlyphSize+i])
	}
}

func TestBCD(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	tm.mc.V[7] = 254
	tm.mc.I = 0x300
	tm.putInstructions(cpu.ResetPC, 0xf733)
	tm.step(t)
	test.Equate(t, tm.mem.Read8(0x300), 2)
	test.Equate(t, tm.mem.Read8(0x301), 5)
	test.Equate(t, tm.mem.Read8(0x302), 4)
}

func TestStoreLoadRegistersSCHIP(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	for i := uint8(0); i <= 3; i++ {
		tm.mc.V[i] = 0x10 + i
	}
	tm.mc.I = 0x300
	tm.putInstructions(cpu.ResetPC, 0xf355, 0x6000, 0x6100, 0x6200, 0x6300, 0xf365)

	tm.step(t)
	for i := uint16(0); i <= 3; i++ {
		test.Equate(t, tm.mem.Read8(0x300+i), uint8(0x10+i))
	}

	// SCHIP leaves the index register unchanged
	test.Equate(t, tm.mc.I, 0x300)

	// zero the registers then load them back
	tm.step(t)
	tm.step(t)
	tm.step(t)
	tm.step(t)
	tm.step(t)
	for i := uint8(0); i <= 3; i++ {
		test.Equate(t, tm.mc.V[i], 0x10+i)
	}
	test.Equate(t, tm.mc.I, 0x300)
}

func TestStoreLoadRegistersCOSMAC(t *testing.T) {
	tm := newTestMachine(preferences.DialectCOSMAC)

	for i := uint8(0); i <= 3; i++ {
		tm.mc.V[i] = 0x10 + i
	}
	tm.mc.I = 0x300
	tm.putInstructions(cpu.ResetPC, 0xf355, 0xa300, 0xf365)

	// COSMAC moves the index register on by X+1 after the transfer
	tm.step(t)
	test.Equate(t, tm.mc.I, 0x304)

	tm.step(t) // restore I
	tm.step(t)
	for i := uint8(0); i <= 3; i++ {
		test.Equate(t, tm.mc.V[i], 0x10+i)
	}
	test.Equate(t, tm.mc.I, 0x304)
}

func TestTimers(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	// set delay timer from V0 then spin on jumps
	tm.mc.V[0] = 5
	tm.putInstructions(cpu.ResetPC, 0xf015)
	pc := tm.putInstructions(cpu.ResetPC+2, 0x1202)
	_ = pc

	tm.step(t)

	// the set itself is followed by a decrement in the same cycle, so we
	// start the observation afterwards with the timer at 4
	test.Equate(t, tm.mc.DelayTimer, 4)

	for i := 0; i < 4; i++ {
		tm.step(t)
	}
	test.Equate(t, tm.mc.DelayTimer, 0)

	// timers saturate at zero
	tm.step(t)
	test.Equate(t, tm.mc.DelayTimer, 0)

	// load delay timer into a register
	tm.mc.DelayTimer = 9
	tm.putInstructions(tm.mc.PC, 0xf307)
	tm.step(t)

	// the decrement happens after the load
	test.Equate(t, tm.mc.V[3], 9)
	test.Equate(t, tm.mc.DelayTimer, 8)

	// sound timer behaves the same way
	tm.mc.V[4] = 3
	tm.putInstructions(tm.mc.PC, 0xf418)
	tm.step(t)
	test.Equate(t, tm.mc.SoundTimer, 2)
}

func TestKeySkips(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	tm.mc.V[0] = 0x05

	// skip-if-key not taken, key 5 is up
	tm.putInstructions(cpu.ResetPC, 0xe09e)
	tm.step(t)
	test.Equate(t, tm.mc.PC, cpu.ResetPC+2)

	// skip-if-not-key taken
	pc := tm.mc.PC
	tm.putInstructions(pc, 0xe0a1)
	tm.step(t)
	test.Equate(t, tm.mc.PC, pc+4)

	// press key 5 and check the complementary behaviour
	tm.keypad.Press(0x05)

	pc = tm.mc.PC
	tm.putInstructions(pc, 0xe09e)
	tm.step(t)
	test.Equate(t, tm.mc.PC, pc+4)

	pc = tm.mc.PC
	tm.putInstructions(pc, 0xe0a1)
	tm.step(t)
	test.Equate(t, tm.mc.PC, pc+2)
}

func TestWaitForKey(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	tm.putInstructions(cpu.ResetPC, 0xf20a)

	// with no key pressed the program counter does not advance: the same
	// instruction is presented again on every cycle
	for i := 0; i < 3; i++ {
		tm.step(t)
		test.Equate(t, tm.mc.PC, cpu.ResetPC)
	}

	// timers still tick while waiting
	tm.mc.DelayTimer = 2
	tm.step(t)
	test.Equate(t, tm.mc.DelayTimer, 1)

	// a pressed key is stored and the machine moves on
	tm.keypad.Press(0x0b)
	tm.step(t)
	test.Equate(t, tm.mc.V[2], 0x0b)
	test.Equate(t, tm.mc.PC, cpu.ResetPC+2)
}

func TestDrawSprite(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	// draw the font glyph for 0 at (0,0) twice. the second draw collides
	// and restores the display
	tm.mc.V[0] = 0
	tm.putInstructions(cpu.ResetPC, 0xa000, 0xd005, 0xd005)

	tm.step(t)
	tm.step(t)
	test.Equate(t, tm.mc.V[cpu.Flag], 0)
	test.Equate(t, tm.vid.Pixels[0][0], 1)
	test.ExpectedSuccess(t, tm.vid.Redraw())

	tm.step(t)
	test.Equate(t, tm.mc.V[cpu.Flag], 1)
	test.Equate(t, tm.vid.Pixels[0][0], 0)
}

func TestClearScreen(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	tm.mc.V[0] = 0
	tm.putInstructions(cpu.ResetPC, 0xa000, 0xd005, 0x00e0)

	tm.step(t)
	tm.step(t)
	test.Equate(t, tm.vid.Pixels[0][0], 1)

	tm.step(t)
	test.Equate(t, tm.vid.Pixels[0][0], 0)
	test.ExpectedSuccess(t, tm.vid.Redraw())
}

func TestIllegalOpcode(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	for _, opcode := range []uint16{0x0001, 0x5001, 0x8008, 0x9005, 0xe000, 0xf0ff} {
		tm.mc.Reset()
		tm.putInstructions(cpu.ResetPC, opcode)

		err := tm.mc.ExecuteInstruction()
		if !curated.Is(err, cpu.IllegalOpcode) {
			t.Fatalf("expected illegal opcode error for %#04x (got %v)", opcode, err)
		}

		// the error carries the offending instruction word
		test.Equate(t, err.Error(), curated.Errorf(cpu.IllegalOpcode, opcode).Error())

		// the program counter has not moved
		test.Equate(t, tm.mc.PC, cpu.ResetPC)
	}
}

func TestStackAliasing(t *testing.T) {
	tm := newTestMachine(preferences.DialectSCHIP)

	// calling beyond the stack depth is unguarded. the stack pointer
	// aliases modulo the stack depth rather than faulting
	//
	// each instruction is a call to the address immediately after itself,
	// giving an unbroken chain of calls that never returns
	addr := uint16(cpu.ResetPC)
	for i := 0; i < cpu.StackDepth+2; i++ {
		tm.putInstructions(addr, 0x2000|(addr+2))
		addr += 2
	}

	for i := 0; i < cpu.StackDepth+2; i++ {
		tm.step(t)
	}
	if tm.mc.SP >= cpu.StackDepth {
		t.Errorf("stack pointer out of range (%d)", tm.mc.SP)
	}
}
