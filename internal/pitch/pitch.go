// Package pitch precomputes the per-chip period/frequency lookup tables
// used to resolve a raw hardware period into a note and fine-pitch
// offset. This is C3 in SPEC_FULL.md, grounded on
// original_source/nsfp/extract.py's _generate_note_tables and
// get_best_matching_note.
package pitch

import "math"

// NumNotes is the table length: index 0 is unused, 1..96 map to C1..B8.
const NumNotes = 97

const (
	freqNTSC = 1789773.0
	freqPAL  = 1662607.0
)

// Tables holds every chip family's period lookup table for one tuning
// reference, plus the N163 variants indexed by (active channel count - 1).
type Tables struct {
	NTSC    [NumNotes]int
	PAL     [NumNotes]int
	VRC6Saw [NumNotes]int
	FDS     [NumNotes]int
	VRC7    [NumNotes]int
	N163    [8][NumNotes]int
}

// Generate builds every table for the given A4 tuning reference in Hz.
func Generate(tuningHz int) Tables {
	if tuningHz <= 0 {
		tuningHz = 440
	}
	tuning := float64(tuningHz)

	// 2^(-45/12): A4 is note 46, 45 semitones above C1 (note 1).
	freqC1 := tuning * math.Pow(2, -45.0/12.0)
	clockNTSC := freqNTSC / 16.0
	clockPAL := freqPAL / 16.0

	var t Tables
	for i := 1; i < NumNotes; i++ {
		octave := (i - 1) / 12
		freq := freqC1 * math.Pow(2, float64(i-1)/12.0)

		t.NTSC[i] = int(math.Floor(clockNTSC/freq - 0.5))
		t.PAL[i] = int(math.Floor(clockPAL/freq - 0.5))
		t.VRC6Saw[i] = int(math.Floor((clockNTSC*16)/(freq*14) - 0.5))
		t.FDS[i] = int(math.Floor(freq*65536.0/clockNTSC + 0.5))

		if octave == 0 {
			t.VRC7[i] = int(math.Floor(freq*262144.0/49715.0 + 0.5))
		} else {
			base := (i-1)%12 + 1
			t.VRC7[i] = t.VRC7[base] << uint(octave)
		}

		for k := 0; k < 8; k++ {
			v := int(math.Floor(freq * float64(k+1) * 983040.0 / clockNTSC / 4.0))
			if v > 0xFFFF {
				v = 0xFFFF
			}
			t.N163[k][i] = v
		}
	}
	return t
}

// N163Table returns the table for numChannels active Namco-163 channels,
// clamped per spec.md §4.4.1 (k = clamp(num_channels-1, 0, 7)).
func (t Tables) N163Table(numChannels int) [NumNotes]int {
	k := numChannels - 1
	if k < 0 {
		k = 0
	}
	if k > 7 {
		k = 7
	}
	return t.N163[k]
}

// Nearest performs the linear nearest-note search of spec.md §4.3: a
// table, a period, scan 1..96, tie-break by lowest note index, and
// return (note, fine_pitch = period - table[note]).
func Nearest(period int, table [NumNotes]int) (note int, finePitch int) {
	best := 1
	minDiff := iabs(table[1] - period)
	for i := 2; i < NumNotes; i++ {
		diff := iabs(table[i] - period)
		if diff < minDiff {
			minDiff = diff
			best = i
		}
	}
	return best, period - table[best]
}

func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
