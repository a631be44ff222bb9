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

package cartridgeloader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/billymyers/UCHIP/cartridgeloader"
	"github.com/billymyers/UCHIP/curated"
	"github.com/billymyers/UCHIP/hardware/memory"
	"github.com/billymyers/UCHIP/test"
)

func writeTestCart(t *testing.T, data []byte) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestShortName(t *testing.T) {
	cl := cartridgeloader.NewLoader("/roms/pong.ch8")
	test.Equate(t, cl.ShortName(), "pong")
}

func TestLoad(t *testing.T) {
	fn := writeTestCart(t, []byte{0x12, 0x00})

	cl := cartridgeloader.NewLoader(fn)
	test.ExpectedFailure(t, cl.HasLoaded())

	test.DemandSuccess(t, cl.Load())
	test.ExpectedSuccess(t, cl.HasLoaded())
	test.Equate(t, len(cl.Data), 2)

	// hash of the data {0x12, 0x00}
	test.Equate(t, cl.Hash, "92a5652d382a18e89c4881ec57041fc7d885ca80")
}

func TestHashMismatch(t *testing.T) {
	fn := writeTestCart(t, []byte{0x12, 0x00})

	cl := cartridgeloader.NewLoader(fn)
	cl.Hash = "0000000000000000000000000000000000000000"

	err := cl.Load()
	test.ExpectedSuccess(t, curated.Is(err, cartridgeloader.HashMismatch))
}

func TestTooLarge(t *testing.T) {
	fn := writeTestCart(t, make([]byte, memory.MaxCartridge+1))

	cl := cartridgeloader.NewLoader(fn)
	err := cl.Load()
	test.ExpectedSuccess(t, curated.Is(err, cartridgeloader.CartridgeTooLarge))
}
