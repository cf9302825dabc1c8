package nsfemu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfingram/nsfnotate/internal/nsferr"
	"github.com/sfingram/nsfnotate/internal/nsfemu"
)

func TestOpenFailsWithNsfOpenFailed(t *testing.T) {
	backend := nsfemu.NewFake()
	_, err := nsfemu.Open(backend, "missing.nsf")
	require.Error(t, err)
	var target *nsferr.NsfOpenFailed
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "missing.nsf", target.Path)
}

func TestOpenSucceedsAndWrapsBackend(t *testing.T) {
	backend := nsfemu.NewFake()
	backend.Register("song.nsf", &nsfemu.FakeNSF{
		Title: "T", Artist: "A", Copyright: "C", Pal: true,
		Tracks: []nsfemu.FakeTrack{{Name: "one", NumFrames: 3}},
	})
	emu, err := nsfemu.Open(backend, "song.nsf")
	require.NoError(t, err)
	defer emu.Close()

	assert.Equal(t, "T", emu.Title())
	assert.Equal(t, "A", emu.Artist())
	assert.Equal(t, "C", emu.Copyright())
	assert.True(t, emu.IsPal())
	assert.Equal(t, 50, emu.FrameRate())
	assert.Equal(t, 1, emu.TrackCount())
	assert.Equal(t, "one", emu.TrackName(0))
}

func TestFrameRateNtscDefault(t *testing.T) {
	backend := nsfemu.NewFake()
	backend.Register("ntsc.nsf", &nsfemu.FakeNSF{Tracks: []nsfemu.FakeTrack{{NumFrames: 1}}})
	emu, err := nsfemu.Open(backend, "ntsc.nsf")
	require.NoError(t, err)
	assert.Equal(t, 60, emu.FrameRate())
}

func TestRunFrameReportsPlayInvocationAndGetStateReadsFixture(t *testing.T) {
	backend := nsfemu.NewFake()
	backend.Register("song.nsf", &nsfemu.FakeNSF{
		Tracks: []nsfemu.FakeTrack{{
			NumFrames: 2,
			States: []map[int]map[int]int{
				{0: {nsfemu.StatePeriod: 123, nsfemu.StateVolume: 9}},
				{0: {nsfemu.StatePeriod: 456}},
			},
		}},
	})
	emu, err := nsfemu.Open(backend, "song.nsf")
	require.NoError(t, err)

	assert.True(t, emu.RunFrame())
	assert.Equal(t, 123, emu.GetState(0, nsfemu.StatePeriod, 0))
	assert.Equal(t, 9, emu.GetState(0, nsfemu.StateVolume, 0))

	assert.True(t, emu.RunFrame())
	assert.Equal(t, 456, emu.GetState(0, nsfemu.StatePeriod, 0))
	assert.Equal(t, 0, emu.GetState(0, nsfemu.StateVolume, 0))

	assert.False(t, emu.RunFrame()) // past NumFrames
}

func TestSetTrackRewindsFrameCounter(t *testing.T) {
	backend := nsfemu.NewFake()
	backend.Register("song.nsf", &nsfemu.FakeNSF{
		Tracks: []nsfemu.FakeTrack{
			{NumFrames: 5},
			{NumFrames: 5},
		},
	})
	emu, err := nsfemu.Open(backend, "song.nsf")
	require.NoError(t, err)

	emu.RunFrame()
	emu.RunFrame()
	emu.SetTrack(1)
	assert.True(t, emu.RunFrame()) // frame counter reset to 0 on the new track
}
