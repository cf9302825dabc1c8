package nsfemu

import "fmt"

// FakeTrack scripts one track's frame-by-frame register state for the
// Fake backend. States[frame][channelID][stateCode] gives the value
// GetState returns for that (channel, state) pair on that frame; any
// combination absent from the map reads as zero, matching a silent/idle
// register.
type FakeTrack struct {
	Name      string
	NumFrames int
	States    []map[int]map[int]int
}

// FakeNSF is a complete synthetic NSF file for the Fake backend.
type FakeNSF struct {
	Title, Artist, Copyright string
	Pal                      bool
	Expansion                uint32
	Tracks                   []FakeTrack
}

// Fake is a deterministic, pure-Go Backend implementation used by this
// module's test suite in place of a real cycle-accurate emulator. It is
// the in-module analogue of musclesoft-nin64k's
// forge/simulate.MinimalPlayer: a script-driven stand-in that produces
// the same shape of per-frame output a real player would.
type Fake struct {
	fixtures map[string]*FakeNSF
}

// NewFake constructs an empty Fake backend.
func NewFake() *Fake {
	return &Fake{fixtures: make(map[string]*FakeNSF)}
}

// Register makes nsf openable at path.
func (f *Fake) Register(path string, nsf *FakeNSF) {
	f.fixtures[path] = nsf
}

type fakeHandle struct {
	nsf   *FakeNSF
	track int
	frame int // index of the last frame returned by RunFrame; -1 before first call
}

func (f *Fake) Open(path string) (Handle, error) {
	nsf, ok := f.fixtures[path]
	if !ok {
		return nil, fmt.Errorf("nsfemu: fake: no fixture registered for %q", path)
	}
	return &fakeHandle{nsf: nsf, track: 0, frame: -1}, nil
}

func (f *Fake) TrackCount(h Handle) int       { return len(h.(*fakeHandle).nsf.Tracks) }
func (f *Fake) IsPal(h Handle) bool           { return h.(*fakeHandle).nsf.Pal }
func (f *Fake) ExpansionMask(h Handle) uint32 { return h.(*fakeHandle).nsf.Expansion }
func (f *Fake) Title(h Handle) string         { return h.(*fakeHandle).nsf.Title }
func (f *Fake) Artist(h Handle) string        { return h.(*fakeHandle).nsf.Artist }
func (f *Fake) Copyright(h Handle) string     { return h.(*fakeHandle).nsf.Copyright }

func (f *Fake) TrackName(h Handle, track int) string {
	fh := h.(*fakeHandle)
	if track < 0 || track >= len(fh.nsf.Tracks) {
		return ""
	}
	return fh.nsf.Tracks[track].Name
}

func (f *Fake) SetTrack(h Handle, track int) {
	fh := h.(*fakeHandle)
	fh.track = track
	fh.frame = -1
}

func (f *Fake) RunFrame(h Handle) bool {
	fh := h.(*fakeHandle)
	fh.frame++
	return fh.frame < fh.nsf.Tracks[fh.track].NumFrames
}

func (f *Fake) GetState(h Handle, channelID, state, sub int) int {
	fh := h.(*fakeHandle)
	t := fh.nsf.Tracks[fh.track]
	if fh.frame < 0 || fh.frame >= len(t.States) {
		return 0
	}
	ch, ok := t.States[fh.frame][channelID]
	if !ok {
		return 0
	}
	return ch[state]
}

func (f *Fake) Close(h Handle) {}
