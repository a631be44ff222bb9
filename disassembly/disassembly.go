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

// Package disassembly decodes cartridge data into a human readable listing.
// The decoder is linear: every pair of bytes is treated as an instruction
// word. Cartridges routinely interleave sprite data with code so words that
// decode to no known instruction are listed as data rather than being
// treated as an error.
//
// Mnemonics follow Cowgod's Chip-8 Technical Reference.
package disassembly

import (
	"fmt"
	"io"

	"github.com/billymyers/UCHIP/cartridgeloader"
	"github.com/billymyers/UCHIP/curated"
	"github.com/billymyers/UCHIP/hardware/memory"
)

// Entry is a single line of the disassembly.
type Entry struct {
	Address  uint16
	Opcode   uint16
	Mnemonic string
	Operand  string

	// whether the word decoded to a known instruction
	IsInstruction bool
}

func (e Entry) String() string {
	if e.Operand == "" {
		return fmt.Sprintf("%#04x  %04x  %s", e.Address, e.Opcode, e.Mnemonic)
	}
	return fmt.Sprintf("%#04x  %04x  %s %s", e.Address, e.Opcode, e.Mnemonic, e.Operand)
}

// Disassembly is the result of disassembling a cartridge.
type Disassembly struct {
	Entries []Entry
}

// FromCartridge loads a cartridge and disassembles it in one step.
func FromCartridge(cartload cartridgeloader.Loader) (*Disassembly, error) {
	err := cartload.Load()
	if err != nil {
		return nil, curated.Errorf("disassembly: %v", err)
	}

	dsm := &Disassembly{
		Entries: make([]Entry, 0, len(cartload.Data)/2),
	}

	for i := 0; i+1 < len(cartload.Data); i += 2 {
		opcode := uint16(cartload.Data[i])<<8 | uint16(cartload.Data[i+1])
		e := Disassemble(opcode)
		e.Address = memory.OriginCart + uint16(i)
		dsm.Entries = append(dsm.Entries, e)
	}

	return dsm, nil
}

// Write the disassembly, one entry per line.
func (dsm *Disassembly) Write(output io.Writer) error {
	for _, e := range dsm.Entries {
		if _, err := fmt.Fprintln(output, e.String()); err != nil {
			return curated.Errorf("disassembly: %v", err)
		}
	}
	return nil
}

// Disassemble a single instruction word. The Address field of the returned
// Entry is left for the caller to fill in.
func Disassemble(opcode uint16) Entry {
	e := Entry{Opcode: opcode, IsInstruction: true}

	x := (opcode >> 8) & 0x0f
	y := (opcode >> 4) & 0x0f
	n := opcode & 0x0f
	nn := opcode & 0xff
	nnn := opcode & 0x0fff

	switch opcode & 0xf000 {
	case 0x0000:
		switch opcode {
		case 0x00e0:
			e.Mnemonic = "CLS"
		case 0x00ee:
			e.Mnemonic = "RET"
		default:
			// native machine call on the original hardware. not emulated but
			// worth labelling distinctly from raw data
			e.Mnemonic = "SYS"
			e.Operand = fmt.Sprintf("0x%03x", nnn)
		}
	case 0x1000:
		e.Mnemonic = "JP"
		e.Operand = fmt.Sprintf("0x%03x", nnn)
	case 0x2000:
		e.Mnemonic = "CALL"
		e.Operand = fmt.Sprintf("0x%03x", nnn)
	case 0x3000:
		e.Mnemonic = "SE"
		e.Operand = fmt.Sprintf("V%X, 0x%02x", x, nn)
	case 0x4000:
		e.Mnemonic = "SNE"
		e.Operand = fmt.Sprintf("V%X, 0x%02x", x, nn)
	case 0x5000:
		if n != 0x0 {
			return data(opcode)
		}
		e.Mnemonic = "SE"
		e.Operand = fmt.Sprintf("V%X, V%X", x, y)
	case 0x6000:
		e.Mnemonic = "LD"
		e.Operand = fmt.Sprintf("V%X, 0x%02x", x, nn)
	case 0x7000:
		e.Mnemonic = "ADD"
		e.Operand = fmt.Sprintf("V%X, 0x%02x", x, nn)
	case 0x8000:
		ops := map[uint16]string{
			0x0: "LD", 0x1: "OR", 0x2: "AND", 0x3: "XOR",
			0x4: "ADD", 0x5: "SUB", 0x6: "SHR", 0x7: "SUBN", 0xe: "SHL",
		}
		m, ok := ops[n]
		if !ok {
			return data(opcode)
		}
		e.Mnemonic = m
		e.Operand = fmt.Sprintf("V%X, V%X", x, y)
	case 0x9000:
		if n != 0x0 {
			return data(opcode)
		}
		e.Mnemonic = "SNE"
		e.Operand = fmt.Sprintf("V%X, V%X", x, y)
	case 0xa000:
		e.Mnemonic = "LD"
		e.Operand = fmt.Sprintf("I, 0x%03x", nnn)
	case 0xb000:
		e.Mnemonic = "JP"
		e.Operand = fmt.Sprintf("V0, 0x%03x", nnn)
	case 0xc000:
		e.Mnemonic = "RND"
		e.Operand = fmt.Sprintf("V%X, 0x%02x", x, nn)
	case 0xd000:
		e.Mnemonic = "DRW"
		e.Operand = fmt.Sprintf("V%X, V%X, %d", x, y, n)
	case 0xe000:
		switch nn {
		case 0x9e:
			e.Mnemonic = "SKP"
			e.Operand = fmt.Sprintf("V%X", x)
		case 0xa1:
			e.Mnemonic = "SKNP"
			e.Operand = fmt.Sprintf("V%X", x)
		default:
			return data(opcode)
		}
	case 0xf000:
		switch nn {
		case 0x07:
			e.Mnemonic = "LD"
			e.Operand = fmt.Sprintf("V%X, DT", x)
		case 0x0a:
			e.Mnemonic = "LD"
			e.Operand = fmt.Sprintf("V%X, K", x)
		case 0x15:
			e.Mnemonic = "LD"
			e.Operand = fmt.Sprintf("DT, V%X", x)
		case 0x18:
			e.Mnemonic = "LD"
			e.Operand = fmt.Sprintf("ST, V%X", x)
		case 0x1e:
			e.Mnemonic = "ADD"
			e.Operand = fmt.Sprintf("I, V%X", x)
		case 0x29:
			e.Mnemonic = "LD"
			e.Operand = fmt.Sprintf("F, V%X", x)
		case 0x33:
			e.Mnemonic = "LD"
			e.Operand = fmt.Sprintf("B, V%X", x)
		case 0x55:
			e.Mnemonic = "LD"
			e.Operand = fmt.Sprintf("[I], V%X", x)
		case 0x65:
			e.Mnemonic = "LD"
			e.Operand = fmt.Sprintf("V%X, [I]", x)
		default:
			return data(opcode)
		}
	}

	return e
}

// data returns an Entry for a word that decodes to no known instruction.
func data(opcode uint16) Entry {
	return Entry{
		Opcode:   opcode,
		Mnemonic: "DAT",
		Operand:  fmt.Sprintf("0x%04x", opcode),
	}
}
