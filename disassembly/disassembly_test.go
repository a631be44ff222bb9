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

package disassembly_test

import (
	"testing"

	"github.com/billymyers/UCHIP/cartridgeloader"
	"github.com/billymyers/UCHIP/disassembly"
	"github.com/billymyers/UCHIP/test"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x00e0, "CLS"},
		{0x00ee, "RET"},
		{0x0123, "SYS 0x123"},
		{0x1234, "JP 0x234"},
		{0x2345, "CALL 0x345"},
		{0x3a42, "SE VA, 0x42"},
		{0x6b07, "LD VB, 0x07"},
		{0x8127, "SUBN V1, V2"},
		{0x812e, "SHL V1, V2"},
		{0xa123, "LD I, 0x123"},
		{0xc3f0, "RND V3, 0xf0"},
		{0xd125, "DRW V1, V2, 5"},
		{0xe09e, "SKP V0"},
		{0xe0a1, "SKNP V0"},
		{0xf00a, "LD V0, K"},
		{0xf129, "LD F, V1"},
		{0xf255, "LD [I], V2"},
	}

	for _, tst := range tests {
		e := disassembly.Disassemble(tst.opcode)
		test.ExpectedSuccess(t, e.IsInstruction)

		s := e.Mnemonic
		if e.Operand != "" {
			s += " " + e.Operand
		}
		test.Equate(t, s, tst.expected)
	}
}

func TestDataWords(t *testing.T) {
	// words with no matching instruction are listed as data
	for _, opcode := range []uint16{0x5001, 0x8009, 0x9001, 0xe0ff, 0xf0ff} {
		e := disassembly.Disassemble(opcode)
		test.ExpectedFailure(t, e.IsInstruction)
		test.Equate(t, e.Mnemonic, "DAT")
	}
}

func TestFromCartridge(t *testing.T) {
	cartload := cartridgeloader.Loader{Data: []byte{
		0x00, 0xe0,
		0xa2, 0x02,
		0x12, 0x00,
	}}

	dsm, err := disassembly.FromCartridge(cartload)
	test.DemandSuccess(t, err)
	test.Equate(t, len(dsm.Entries), 3)

	// addresses start at the cartridge origin
	test.Equate(t, dsm.Entries[0].Address, 0x200)
	test.Equate(t, dsm.Entries[2].Address, 0x204)

	w := &test.Writer{}
	test.ExpectedSuccess(t, dsm.Write(w))
	expected := "0x200  00e0  CLS\n" +
		"0x202  a202  LD I, 0x202\n" +
		"0x204  1200  JP 0x200\n"
	if !w.Compare(expected) {
		t.Errorf("unexpected disassembly output:\n%s", w.String())
	}
}
