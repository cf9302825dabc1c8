// Package nsfemu is C1, the Emulator Adapter: a thin surface over the
// foreign NSF emulator described in spec.md §6.3. The emulator itself is
// an external collaborator (spec.md §1) — this package defines the
// contract (Backend) the same way the 6502 hardware boundary is modeled
// in the rest of the retrieval pack (e.g. the opaque cgo handle in
// doismellburning/samoyed's direwolf package, or the register-write
// stream returned by musclesoft-nin64k's forge/simulate.MinimalPlayer.Tick),
// plus a deterministic in-memory Backend (Fake) used by this module's own
// test suite in place of a real NotSoFatSo binding.
package nsfemu

import "github.com/sfingram/nsfnotate/internal/nsferr"

// State codes, per spec.md §6.3's get_state sub-index contract and
// original_source/nsfp/constants (STATE_* names referenced from
// original_source/nsfp/extract.py).
const (
	StatePeriod = iota
	StateVolume
	StateDutyCycle

	StateDpcmSampleLength
	StateDpcmSampleAddr
	StateDpcmPitch
	StateDpcmLoop
	StateDpcmCounter
	StateDpcmActive

	StateVrc7Patch
	StateFmOctave
	StateFmTrigger
	StateFmSustain
	StateFmTriggerChange

	StateFdsMasterVolume
	StateFdsModulationSpeed
	StateFdsModulationDepth

	StateN163WavePos
	StateN163WaveSize
	StateN163NumChannels

	StateS5bMixer
	StateS5bNoiseFrequency
	StateS5bEnvEnabled
	StateS5bEnvFrequency
	StateS5bEnvShape
	StateS5bEnvTrigger
)

// Handle is an opaque reference to an open NSF file, owned exclusively
// by the Backend that produced it.
type Handle interface{}

// Backend is the foreign function table spec.md §6.3 describes. A real
// implementation wraps a cycle-accurate NSF/APU emulator; Fake below is
// a self-contained stand-in used for tests.
type Backend interface {
	Open(path string) (Handle, error)
	TrackCount(h Handle) int
	IsPal(h Handle) bool
	ExpansionMask(h Handle) uint32
	Title(h Handle) string
	Artist(h Handle) string
	Copyright(h Handle) string
	TrackName(h Handle, track int) string
	SetTrack(h Handle, track int)
	RunFrame(h Handle) bool
	GetState(h Handle, channelID, state, sub int) int
	Close(h Handle)
}

// Emulator is the ergonomic Go-side adapter over a Backend + Handle: the
// only type the rest of this module talks to. All returned strings are
// ASCII with trailing NULs trimmed by the Backend.
type Emulator struct {
	backend Backend
	handle  Handle
	path    string
}

// Open acquires a handle for path via backend. It fails with
// *nsferr.NsfOpenFailed if the backend returns a nil handle or an error.
func Open(backend Backend, path string) (*Emulator, error) {
	h, err := backend.Open(path)
	if err != nil || h == nil {
		return nil, &nsferr.NsfOpenFailed{Path: path}
	}
	return &Emulator{backend: backend, handle: h, path: path}, nil
}

// Close releases the underlying handle. Safe to call on a nil Emulator.
func (e *Emulator) Close() {
	if e == nil {
		return
	}
	e.backend.Close(e.handle)
}

func (e *Emulator) TrackCount() int      { return e.backend.TrackCount(e.handle) }
func (e *Emulator) IsPal() bool          { return e.backend.IsPal(e.handle) }
func (e *Emulator) ExpansionMask() uint32 { return e.backend.ExpansionMask(e.handle) }
func (e *Emulator) Title() string        { return e.backend.Title(e.handle) }
func (e *Emulator) Artist() string       { return e.backend.Artist(e.handle) }
func (e *Emulator) Copyright() string    { return e.backend.Copyright(e.handle) }

func (e *Emulator) TrackName(track int) string { return e.backend.TrackName(e.handle, track) }
func (e *Emulator) SetTrack(track int)         { e.backend.SetTrack(e.handle, track) }

// RunFrame advances emulation by one video frame and reports whether the
// play routine was invoked this frame.
func (e *Emulator) RunFrame() bool { return e.backend.RunFrame(e.handle) }

// GetState reads one piece of a channel's raw register state.
func (e *Emulator) GetState(channelID, state, sub int) int {
	return e.backend.GetState(e.handle, channelID, state, sub)
}

// FrameRate returns 50 for PAL tracks, 60 otherwise (spec.md §4.5).
func (e *Emulator) FrameRate() int {
	if e.IsPal() {
		return 50
	}
	return 60
}
