// Package nsferr defines the closed error taxonomy for NSF notation
// extraction and container I/O. Failures detected by extraction and by
// the container codec are one of the types below. Errors from the file
// system and the YAML decoder (container.ReadFile, nsfconfig.Load) are
// returned unchanged, and the test backend nsfemu.Fake reports a missing
// fixture with a plain error that nsfemu.Open turns into NsfOpenFailed.
package nsferr

import "fmt"

// NsfOpenFailed is returned when the emulator adapter cannot parse or
// open an NSF file.
type NsfOpenFailed struct {
	Path string
}

func (e *NsfOpenFailed) Error() string {
	return fmt.Sprintf("nsf: failed to open %q", e.Path)
}

// InvalidMagic is returned when a container file's header does not begin
// with the expected 4-byte magic.
type InvalidMagic struct {
	Seen [4]byte
}

func (e *InvalidMagic) Error() string {
	return fmt.Sprintf("nsfn: invalid magic %q", e.Seen[:])
}

// UnsupportedVersion is returned when a container's version field is not
// a version this codec understands.
type UnsupportedVersion struct {
	Seen uint32
}

func (e *UnsupportedVersion) Error() string {
	return fmt.Sprintf("nsfn: unsupported version %d", e.Seen)
}

// Truncated is returned when one of the container's three framed regions
// (header, JSON chunk, binary chunk) overruns the bytes actually present.
type Truncated struct {
	Where string
	Need  int
	Have  int
}

func (e *Truncated) Error() string {
	return fmt.Sprintf("nsfn: truncated at %s: need %d bytes, have %d", e.Where, e.Need, e.Have)
}

// UnknownChannelType is returned when a container's JSON names a
// channel_type this codec has no packed binary layout for.
type UnknownChannelType struct {
	Tag string
}

func (e *UnknownChannelType) Error() string {
	return fmt.Sprintf("nsfn: unknown channel type %q", e.Tag)
}

// EncodingError covers UTF-8/struct-packing failures on write and JSON
// syntax failures on read, plus the expansion-mask sanity check in
// spec.md §7.
type EncodingError struct {
	Detail string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("nsfn: encoding error: %s", e.Detail)
}

// PlayNotInvoked is returned when a track's entire configured duration
// elapses without the emulator ever reporting that its play routine ran.
// See SPEC_FULL.md §B.2 item 4 for the resolved Open Question this
// implements.
type PlayNotInvoked struct {
	TrackIndex int
	Frames     int
}

func (e *PlayNotInvoked) Error() string {
	return fmt.Sprintf("nsf: track %d: play routine never invoked in %d frames", e.TrackIndex, e.Frames)
}
