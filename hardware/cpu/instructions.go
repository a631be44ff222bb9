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
	"github.com/billymyers/UCHIP/curated"
	"github.com/billymyers/UCHIP/hardware/memory"
	"github.com/billymyers/UCHIP/hardware/preferences"
)

// IllegalOpcode is the error pattern returned when the fetched instruction
// word matches no defined operation. The value is the offending word.
const IllegalOpcode = "cpu: illegal opcode (%#04x)"

// execute decodes and executes a single instruction word, returning how far
// the program counter should advance: 0 when the handler has set the
// program counter itself, 2 for normal fall-through, 4 for a taken skip.
func (mc *CPU) execute(opcode uint16) (uint16, error) {
	x := uint8(opcode>>8) & 0x0f
	y := uint8(opcode>>4) & 0x0f
	n := uint8(opcode) & 0x0f
	nn := uint8(opcode)
	nnn := opcode & 0x0fff

	switch opcode & 0xf000 {
	case 0x0000:
		switch opcode {
		case 0x00e0: // clear screen
			mc.vid.Clear()
			return 2, nil

		case 0x00ee: // return from subroutine
			mc.PC = mc.pop()
			return 0, nil
		}

		// the remainder of the 0x0nnn space called into native RCA 1802
		// routines on the original hardware. no modern ROM uses it
		return 0, curated.Errorf(IllegalOpcode, opcode)

	case 0x1000: // jump
		mc.PC = nnn
		return 0, nil

	case 0x2000: // call subroutine
		mc.push()
		mc.PC = nnn
		return 0, nil

	case 0x3000: // skip if VX equals immediate
		if mc.V[x] == nn {
			return 4, nil
		}
		return 2, nil

	case 0x4000: // skip if VX does not equal immediate
		if mc.V[x] != nn {
			return 4, nil
		}
		return 2, nil

	case 0x5000: // skip if VX equals VY
		if n != 0x0 {
			return 0, curated.Errorf(IllegalOpcode, opcode)
		}
		if mc.V[x] == mc.V[y] {
			return 4, nil
		}
		return 2, nil

	case 0x6000: // load immediate
		mc.V[x] = nn
		return 2, nil

	case 0x7000: // add immediate. no flag output
		mc.V[x] += nn
		return 2, nil

	case 0x8000:
		return mc.executeArithmetic(opcode, x, y)

	case 0x9000: // skip if VX does not equal VY
		if n != 0x0 {
			return 0, curated.Errorf(IllegalOpcode, opcode)
		}
		if mc.V[x] != mc.V[y] {
			return 4, nil
		}
		return 2, nil

	case 0xa000: // load index register
		mc.I = nnn
		return 2, nil

	case 0xb000: // jump with offset
		mc.PC = nnn + uint16(mc.V[0])
		return 0, nil

	case 0xc000: // random byte masked by immediate
		mc.V[x] = uint8(mc.rnd.Intn(256)) & nn
		return 2, nil

	case 0xd000: // draw sprite
		sprite := make([]uint8, n)
		for i := range sprite {
			sprite[i] = mc.mem.Read8(mc.I + uint16(i))
		}

		mc.V[Flag] = 0
		if mc.vid.DrawSprite(mc.V[x], mc.V[y], sprite) {
			mc.V[Flag] = 1
		}
		return 2, nil

	case 0xe000:
		switch nn {
		case 0x9e: // skip if key VX pressed
			if mc.keypad.IsPressed(mc.V[x]) {
				return 4, nil
			}
			return 2, nil

		case 0xa1: // skip if key VX not pressed
			if !mc.keypad.IsPressed(mc.V[x]) {
				return 4, nil
			}
			return 2, nil
		}

		return 0, curated.Errorf(IllegalOpcode, opcode)

	case 0xf000:
		return mc.executeMisc(opcode, x)
	}

	// unreachable. every value of the top nibble is handled above
	return 0, curated.Errorf(IllegalOpcode, opcode)
}

// executeArithmetic handles the 0x8xyn group: register copies, bitwise
// operations, addition/subtraction with flag output and the two
// dialect-divergent shifts.
func (mc *CPU) executeArithmetic(opcode uint16, x uint8, y uint8) (uint16, error) {
	switch opcode & 0x000f {
	case 0x0: // copy
		mc.V[x] = mc.V[y]

	case 0x1: // or
		mc.V[x] |= mc.V[y]

	case 0x2: // and
		mc.V[x] &= mc.V[y]

	case 0x3: // xor
		mc.V[x] ^= mc.V[y]

	case 0x4: // add with carry flag
		sum := uint16(mc.V[x]) + uint16(mc.V[y])
		mc.V[x] = uint8(sum)
		if sum > 0xff {
			mc.V[Flag] = 1
		} else {
			mc.V[Flag] = 0
		}

	case 0x5: // subtract with not-borrow flag
		noBorrow := mc.V[x] >= mc.V[y]
		mc.V[x] -= mc.V[y]
		if noBorrow {
			mc.V[Flag] = 1
		} else {
			mc.V[Flag] = 0
		}

	case 0x6: // shift right
		// SCHIP shifts VX in place. COSMAC shifts VY into VX, leaving VY
		// unmodified. both dialects put the shifted-out bit in the flag
		var flag uint8
		if mc.prefs.Dialect == preferences.DialectCOSMAC {
			flag = mc.V[y] & 0x01
			mc.V[x] = mc.V[y] >> 1
		} else {
			flag = mc.V[x] & 0x01
			mc.V[x] >>= 1
		}
		mc.V[Flag] = flag

	case 0x7: // reversed subtract with not-borrow flag
		noBorrow := mc.V[y] >= mc.V[x]
		mc.V[x] = mc.V[y] - mc.V[x]
		if noBorrow {
			mc.V[Flag] = 1
		} else {
			mc.V[Flag] = 0
		}

	case 0xe: // shift left
		var flag uint8
		if mc.prefs.Dialect == preferences.DialectCOSMAC {
			flag = mc.V[y] >> 7
			mc.V[x] = mc.V[y] << 1
		} else {
			flag = mc.V[x] >> 7
			mc.V[x] <<= 1
		}
		mc.V[Flag] = flag

	default:
		return 0, curated.Errorf(IllegalOpcode, opcode)
	}

	return 2, nil
}

// executeMisc handles the 0xfxnn group: timers, key-wait, index register
// arithmetic, font lookup, BCD and the dialect-divergent register
// store/load.
func (mc *CPU) executeMisc(opcode uint16, x uint8) (uint16, error) {
	switch opcode & 0x00ff {
	case 0x07: // load delay timer
		mc.V[x] = mc.DelayTimer

	case 0x0a: // wait for key
		// expressed as the program counter not advancing, meaning the same
		// instruction is fetched again next cycle. the caller must keep
		// calling ExecuteInstruction() and feeding the keypad for progress
		// to occur
		key, ok := mc.keypad.FirstPressed()
		if !ok {
			return 0, nil
		}
		mc.V[x] = key

	case 0x15: // set delay timer
		mc.DelayTimer = mc.V[x]

	case 0x18: // set sound timer
		mc.SoundTimer = mc.V[x]

	case 0x1e: // add to index register
		mc.I += uint16(mc.V[x])
		if mc.I > 0x0fff {
			mc.V[Flag] = 1
		} else {
			mc.V[Flag] = 0
		}

	case 0x29: // index register to font glyph for digit VX
		mc.I = uint16(mc.V[x]) * memory.FontGlyphSize

	case 0x33: // binary coded decimal of VX
		mc.mem.Write8(mc.I, mc.V[x]/100)
		mc.mem.Write8(mc.I+1, (mc.V[x]/10)%10)
		mc.mem.Write8(mc.I+2, mc.V[x]%10)

	case 0x55: // store registers V0 to VX
		for i := uint16(0); i <= uint16(x); i++ {
			mc.mem.Write8(mc.I+i, mc.V[i])
		}
		if mc.prefs.Dialect == preferences.DialectCOSMAC {
			mc.I += uint16(x) + 1
		}

	case 0x65: // load registers V0 to VX
		for i := uint16(0); i <= uint16(x); i++ {
			mc.V[i] = mc.mem.Read8(mc.I + i)
		}
		if mc.prefs.Dialect == preferences.DialectCOSMAC {
			mc.I += uint16(x) + 1
		}

	default:
		return 0, curated.Errorf(IllegalOpcode, opcode)
	}

	return 2, nil
}
