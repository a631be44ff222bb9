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

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/billymyers/UCHIP/cartridgeloader"
	"github.com/billymyers/UCHIP/disassembly"
	"github.com/billymyers/UCHIP/hardware/preferences"
	"github.com/billymyers/UCHIP/logger"
	"github.com/billymyers/UCHIP/modalflag"
	"github.com/billymyers/UCHIP/performance"
	"github.com/billymyers/UCHIP/playmode"
	"github.com/billymyers/UCHIP/statsview"
)

func init() {
	// SDL requires that the window is created and serviced from the main OS
	// thread. everything runs on the main goroutine so locking it is enough.
	runtime.LockOSThread()
}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PLAY", "DISASM", "PERFORMANCE")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		fallthrough

	case "PLAY":
		err = play(md)

	case "DISASM":
		err = disasm(md)

	case "PERFORMANCE":
		err = perform(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// addPrefsFlags adds the flags common to every mode that creates a machine.
// The returned function builds a Preferences instance once the command line
// has been parsed.
func addPrefsFlags(md *modalflag.Modes) func() (*preferences.Preferences, error) {
	dialect := md.AddString("dialect", "SCHIP", "instruction dialect: SCHIP, COSMAC")
	wrap := md.AddBool("wrap", false, "wrap sprites at the display edges rather than clip")

	return func() (*preferences.Preferences, error) {
		d, err := preferences.ParseDialect(*dialect)
		if err != nil {
			return nil, err
		}

		prefs := preferences.NewPreferences()
		prefs.Dialect = d
		prefs.SpriteWrap = *wrap

		return prefs, nil
	}
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	newPrefs := addPrefsFlags(md)
	scaling := md.AddFloat64("scale", 10.0, "display scaling")
	tick := md.AddInt("tick", 700, "instructions per second")
	wav := md.AddString("wav", "", "record audio to wav file")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if *tick < 1 {
		return fmt.Errorf("tick value must be at least 1 for %s mode", md)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("cartridge required for %s mode", md)
	case 1:
		prefs, err := newPrefs()
		if err != nil {
			return err
		}

		cartload := cartridgeloader.NewLoader(md.GetArg(0))

		return playmode.Play(cartload, prefs, float32(*scaling), *tick, *wav)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("cartridge required for %s mode", md)
	case 1:
		cartload := cartridgeloader.NewLoader(md.GetArg(0))

		dsm, err := disassembly.FromCartridge(cartload)
		if err != nil {
			return err
		}

		return dsm.Write(md.Output)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	newPrefs := addPrefsFlags(md)
	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddString("profile", "none", "run through profiler: NONE, CPU, MEM, ALL")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (available: %v)", statsview.Available()))
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("cartridge required for %s mode", md)
	case 1:
		prof, err := performance.ParseProfile(*profile)
		if err != nil {
			return err
		}

		if *stats {
			if !statsview.Available() {
				return fmt.Errorf("statsview is not available in this build")
			}
			statsview.Launch(md.Output)
		}

		prefs, err := newPrefs()
		if err != nil {
			return err
		}

		cartload := cartridgeloader.NewLoader(md.GetArg(0))

		return performance.Check(md.Output, prof, cartload, prefs, *duration)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}
