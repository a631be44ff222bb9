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

// Package cartridgeloader is responsible for loading cartridge data ready
// for attaching to the emulated machine. Data can come from a local file or
// from an HTTP URL. The loader also validates that the data will fit in the
// machine's memory, a check the machine core itself does not repeat.
package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/billymyers/UCHIP/curated"
	"github.com/billymyers/UCHIP/hardware/memory"
)

// Error patterns returned by the Load() function.
const (
	CartridgeTooLarge = "cartridgeloader: cartridge too large (%d bytes, maximum is %d)"
	HashMismatch      = "cartridgeloader: unexpected hash value"
)

// Loader is used to specify the cartridge to attach to the machine.
type Loader struct {
	// filename or URL of cartridge to load
	Filename string

	// expected SHA1 hash of the loaded cartridge. the empty string
	// indicates that the hash is unknown and need not be validated. after
	// a load operation the field holds the hash of the loaded data
	Hash string

	// the loaded data. subsequent calls to Load() are no-ops once this is
	// non-empty
	Data []byte
}

// FileExtensions is the list of file extensions recognised by the
// cartridgeloader package.
var FileExtensions = [...]string{".CH8", ".C8", ".ROM", ".BIN"}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// ShortName returns a shortened version of the Loader filename, suitable
// for display.
func (cl Loader) ShortName() string {
	shortCartName := path.Base(cl.Filename)
	shortCartName = strings.TrimSuffix(shortCartName, path.Ext(cl.Filename))
	return shortCartName
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the cartridge data. Loader filenames with a valid schema will use
// that method to load the data. Currently supported schemes are HTTP and
// local files.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(cl.Filename)
	if err == nil {
		scheme = u.Scheme
	}

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}
		defer resp.Body.Close()

		cl.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}

	case "file":
		fallthrough
	case "":
		cl.Data, err = os.ReadFile(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}

	default:
		return curated.Errorf("cartridgeloader: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	// the machine core does not bounds-check cartridge data. the check
	// lives here, at the caller's side of the contract
	if len(cl.Data) > memory.MaxCartridge {
		return curated.Errorf(CartridgeTooLarge, len(cl.Data), memory.MaxCartridge)
	}

	// generate hash and check for consistency with any expected value
	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf(HashMismatch)
	}
	cl.Hash = hash

	return nil
}
