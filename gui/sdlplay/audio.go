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

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"
)

// SampleFreq is the number of samples per second sent to the audio device.
const SampleFreq = 22050

// the frequency of the beep tone in Hz
const beepFreq = 440

// the number of samples queued per call to set(). kept short so that the
// beep stops promptly when the sound timer expires.
const beepBufferLength = 512

// beeper implements the single tone sounder via SDL. the machine's sound
// is either on or off so a fixed square wave is all that is needed.
type beeper struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	// precomputed square wave and silence buffers
	tone    []uint8
	silence []uint8

	// phase of the square wave, carried over between buffers to avoid clicks
	phase int

	on bool
}

func newBeeper() (*beeper, error) {
	aud := &beeper{}

	spec := &sdl.AudioSpec{
		Freq:     SampleFreq,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  uint16(beepBufferLength),
	}

	var err error
	var actualSpec sdl.AudioSpec

	aud.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, err
	}
	aud.spec = actualSpec

	aud.tone = make([]uint8, beepBufferLength)
	aud.silence = make([]uint8, beepBufferLength)
	for i := range aud.silence {
		aud.silence[i] = aud.spec.Silence
	}

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

func (aud *beeper) destroy() {
	sdl.CloseAudioDevice(aud.id)
}

// set queues the next fragment of audio. on indicates whether the machine's
// sound timer is currently running.
func (aud *beeper) set(on bool) {
	aud.on = on

	// don't let the queue grow without bound. anything more than a couple of
	// buffers of lag is audible.
	if sdl.GetQueuedAudioSize(aud.id) > beepBufferLength*2 {
		return
	}

	if !on {
		aud.phase = 0
		_ = sdl.QueueAudio(aud.id, aud.silence)
		return
	}

	// square wave at beepFreq. the half-period in samples decides when to
	// flip between the high and low levels.
	halfPeriod := SampleFreq / (beepFreq * 2)
	for i := range aud.tone {
		if (aud.phase/halfPeriod)%2 == 0 {
			aud.tone[i] = aud.spec.Silence + 32
		} else {
			aud.tone[i] = aud.spec.Silence
		}
		aud.phase++
	}

	_ = sdl.QueueAudio(aud.id, aud.tone)
}
