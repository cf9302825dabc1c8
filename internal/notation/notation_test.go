package notation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/sfingram/nsfnotate/internal/notation"
)

func TestNoteToOctaveBoundaries(t *testing.T) {
	cases := []struct {
		note, octave int
	}{
		{1, 0}, {12, 0}, {13, 1}, {24, 1}, {25, 2}, {96, 7},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.octave, notation.NoteToOctave(tc.note))
	}
}

func TestNoteToOctaveGuardsNonPositiveNote(t *testing.T) {
	assert.Equal(t, 0, notation.NoteToOctave(0))
	assert.Equal(t, 0, notation.NoteToOctave(-5))
}

func TestNoteToOctaveMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		note := rapid.IntRange(1, 96).Draw(rt, "note")
		assert.Equal(rt, (note-1)/12, notation.NoteToOctave(note))
	})
}
