// Package extract is C4 (the per-channel event-extraction state machine)
// and C5 (the track runner) of SPEC_FULL.md. Grounded on
// original_source/nsfp/extract.py's ChannelState/_update_* functions,
// restructured as one method per channel family in the style of
// musclesoft-nin64k/tools/forge/simulate's one-Tick()-per-frame player.
package extract

import (
	"github.com/sfingram/nsfnotate/internal/notation"
	"github.com/sfingram/nsfnotate/internal/pitch"
)

// Machine states, spec.md §3's ChannelState.
const (
	stopped = iota
	triggered
	released
)

// channelState is the internal-only (not persisted) per-channel scratch
// of spec.md §3.
type channelState struct {
	period    int
	note      int
	pitch     int
	volume    int
	state     int
	fmTrigger bool
	fmSustain bool

	instrument *int

	fdsModDepth int
	fdsModSpeed int
}

func newChannelState() *channelState {
	return &channelState{period: -1}
}

func (cs *channelState) emit(frame int, event string, note, pitchVal, volume, duty int) notation.NoteEvent {
	return notation.NoteEvent{
		Frame:      frame,
		Event:      event,
		Note:       note,
		Octave:     notation.NoteToOctave(note),
		Pitch:      pitchVal,
		Volume:     volume,
		DutyCycle:  duty,
		Instrument: cs.instrument,
	}
}

// updateGeneric implements spec.md §4.4.1: the shared trigger/stop state
// machine used by every tonal channel whose pitch resolves through a
// period lookup table (square, triangle, vrc6_square, vrc6_saw, fds,
// n163_wave, s5b_square, mmc5_square).
func (cs *channelState) updateGeneric(frame, period, volume, duty int, table [97]int, invalidPeriod int) *notation.NoteEvent {
	triggered_ := volume != 0 && period != invalidPeriod

	if triggered_ {
		note, pitchVal := pitch.Nearest(period, table)

		if cs.state != triggered || note != cs.note {
			cs.state = triggered
			cs.note = note
			cs.pitch = pitchVal
			cs.volume = volume
			cs.period = period
			ev := cs.emit(frame, notation.EventTrigger, note, pitchVal, volume, duty)
			return &ev
		}
		if volume != cs.volume || period != cs.period {
			cs.volume = volume
			cs.pitch = pitchVal
			cs.period = period
		}
		return nil
	}

	if cs.state == triggered {
		ev := cs.emit(frame, notation.EventStop, cs.note, cs.pitch, 0, duty)
		cs.state = stopped
		return &ev
	}
	return nil
}

// updateNoise implements spec.md §4.4.2.
func (cs *channelState) updateNoise(frame, periodIdx, volume, mode int) *notation.NoteEvent {
	if volume != 0 {
		note := (periodIdx ^ 0x0F) + 32
		if cs.state != triggered || note != cs.note {
			cs.state = triggered
			cs.note = note
			cs.pitch = 0
			cs.volume = volume
			cs.period = periodIdx
			ev := cs.emit(frame, notation.EventTrigger, note, 0, volume, mode)
			return &ev
		}
		if volume != cs.volume {
			cs.volume = volume
		}
		return nil
	}

	if cs.state == triggered {
		ev := cs.emit(frame, notation.EventStop, cs.note, 0, 0, mode)
		cs.state = stopped
		return &ev
	}
	return nil
}

// updateDPCM implements spec.md §4.4.3. pitchReg is carried verbatim into
// NoteEvent.Pitch (the raw hardware pitch register, not a fine-pitch
// offset — spec.md §9's documented inconsistency).
func (cs *channelState) updateDPCM(frame int, sampleLen int, sampleAddr int32, pitchReg, loop, counter, active int) *notation.NoteEvent {
	dmcActive := active != 0

	if dmcActive && sampleLen > 0 {
		if cs.state != triggered || int(sampleAddr) != cs.period {
			cs.state = triggered
			cs.period = int(sampleAddr)
			note := clamp(int((sampleAddr-0xC000)/64)+1, 1, 96)
			cs.note = note
			cs.pitch = pitchReg
			cs.volume = 15
			ev := cs.emit(frame, notation.EventTrigger, note, pitchReg, 15, 0)
			return &ev
		}
		return nil
	}

	if !dmcActive && cs.state == triggered {
		ev := cs.emit(frame, notation.EventStop, cs.note, cs.pitch, 0, 0)
		cs.state = stopped
		return &ev
	}
	return nil
}

// updateFM implements spec.md §4.4.4, the only family with explicit
// hardware trigger/sustain flags.
func (cs *channelState) updateFM(frame int, period, volume, patch, octave int, trigger, sustain bool, table [97]int) *notation.NoteEvent {
	prevTrigger := cs.fmTrigger
	prevPeriod := cs.period
	prevInstrument := 0
	if cs.instrument != nil {
		prevInstrument = *cs.instrument
	}
	cs.fmTrigger = trigger
	cs.fmSustain = sustain

	fullPeriod := func() int {
		if octave > 0 {
			return period << uint(octave)
		}
		return period
	}

	switch {
	case !prevTrigger && trigger:
		note, pitchVal := pitch.Nearest(fullPeriod(), table)
		cs.state = triggered
		cs.note, cs.pitch, cs.volume, cs.period = note, pitchVal, volume, period
		instr := patch
		cs.instrument = &instr
		ev := cs.emit(frame, notation.EventTrigger, note, pitchVal, volume, 0)
		return &ev

	case prevTrigger && !trigger && sustain:
		cs.state = released
		ev := cs.emit(frame, notation.EventRelease, cs.note, cs.pitch, cs.volume, 0)
		return &ev

	case !trigger && !sustain:
		if cs.state == triggered || cs.state == released {
			ev := cs.emit(frame, notation.EventStop, cs.note, cs.pitch, 0, 0)
			cs.state = stopped
			return &ev
		}

	case trigger && cs.state == triggered:
		if period != prevPeriod || patch != prevInstrument {
			note, pitchVal := pitch.Nearest(fullPeriod(), table)
			cs.note, cs.pitch, cs.period, cs.volume = note, pitchVal, period, volume
			instr := patch
			cs.instrument = &instr
			ev := cs.emit(frame, notation.EventTrigger, note, pitchVal, volume, 0)
			return &ev
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
