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

package memory

import (
	"github.com/billymyers/UCHIP/curated"
)

// Memory geometry.
const (
	MemorySize = 4096

	// addresses below OriginCart are reserved for the interpreter
	OriginFont = 0x000
	OriginCart = 0x200

	// the largest cartridge that fits between the cartridge origin and the
	// top of memory
	MaxCartridge = MemorySize - OriginCart
)

// addressMask limits every access to the 12 bit address space.
const addressMask = MemorySize - 1

// CartridgeTooLarge is the error pattern returned when cartridge data will
// not fit in memory.
const CartridgeTooLarge = "memory: cartridge too large (%d bytes, maximum is %d)"

// RAM is the single block of memory in the machine.
type RAM struct {
	data [MemorySize]uint8
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM() *RAM {
	ram := &RAM{}
	ram.Reset()
	return ram
}

// Reset zeroes all of memory and reinstalls the font table at the bottom of
// the reserved area.
func (ram *RAM) Reset() {
	for i := range ram.data {
		ram.data[i] = 0
	}
	copy(ram.data[OriginFont:], fontData[:])
}

// Read8 returns the byte at the specified address. The address is masked to
// 12 bits.
func (ram *RAM) Read8(address uint16) uint8 {
	return ram.data[address&addressMask]
}

// Write8 writes a byte to the specified address. The address is masked to
// 12 bits.
func (ram *RAM) Write8(address uint16, data uint8) {
	ram.data[address&addressMask] = data
}

// Read16 returns the two bytes at the specified address combined into a
// 16bit value, high byte first. This is how instruction words are stored.
func (ram *RAM) Read16(address uint16) uint16 {
	return uint16(ram.Read8(address))<<8 | uint16(ram.Read8(address+1))
}

// WriteCart copies cartridge data into memory at the cartridge origin.
// Memory should be Reset() beforehand.
func (ram *RAM) WriteCart(data []uint8) error {
	if len(data) > MaxCartridge {
		return curated.Errorf(CartridgeTooLarge, len(data), MaxCartridge)
	}
	copy(ram.data[OriginCart:], data)
	return nil
}
