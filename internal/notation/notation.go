// Package notation holds the data model described in spec.md §3: the
// NotationFile aggregate and everything it owns. It is deliberately free
// of codec and extraction logic — see internal/container for the wire
// format and internal/extract for how these values get populated.
package notation

// Metadata is the NSF-level metadata for one extraction, spec.md §3.
type Metadata struct {
	Title          string   `json:"title"`
	Artist         string   `json:"artist"`
	Copyright      string   `json:"copyright"`
	Region         string   `json:"region"` // "ntsc" | "pal"
	FrameRate      int      `json:"frame_rate"`
	Expansion      uint32   `json:"expansion"`
	ExpansionChips []string `json:"expansion_chips,omitempty"`
}

// NoteEvent is one inferred musical event on a channel, spec.md §3.
type NoteEvent struct {
	Frame      int    `json:"frame"`
	Event      string `json:"event"` // "trigger" | "release" | "stop"
	Note       int    `json:"note"`
	Octave     int    `json:"octave"`
	Pitch      int    `json:"pitch"`
	Volume     int    `json:"volume"`
	DutyCycle  int    `json:"duty_cycle"`
	Instrument *int   `json:"instrument"`
}

// Event names, spec.md §3.
const (
	EventTrigger = "trigger"
	EventRelease = "release"
	EventStop    = "stop"
)

// NoteToOctave derives octave from a 1-based note index, spec.md §3:
// octave = (note-1) div 12. Defined once here so every producer and every
// test uses the identical derivation.
func NoteToOctave(note int) int {
	if note < 1 {
		return 0
	}
	return (note - 1) / 12
}

// RawDataRef locates one channel's packed raw-frame region inside a
// container's binary chunk, spec.md §3.
type RawDataRef struct {
	ByteOffset   int    `json:"byte_offset"`
	ByteLength   int    `json:"byte_length"`
	FrameSize    int    `json:"frame_size"`
	StructFormat string `json:"struct_format"`
}

// RawFrame is the decoded form of one frame of a channel's packed raw
// register state (spec.md §6.2). Not every field is meaningful for every
// channel_type; internal/container's struct formats say which fields of
// RawFrame a given channel_type packs, and in what order.
type RawFrame struct {
	Period    int32 // generic tonal period; signed to also carry n163_wave's period
	PeriodIdx int   // noise
	Volume    int
	Duty      int // square / vrc6_square / mmc5_square
	Mode      int // noise

	SampleLen  int   // dpcm
	SampleAddr int32 // dpcm, signed per spec.md §9
	Pitch      int   // dpcm
	Loop       int   // dpcm
	Counter    int   // dpcm
	Active     int   // dpcm

	Patch         int // vrc7_fm
	Octave        int // vrc7_fm
	Trigger       int // vrc7_fm
	Sustain       int // vrc7_fm
	TriggerChange int // vrc7_fm, signed on the wire

	MasterVol int // fds
	ModSpeed  int // fds
	ModDepth  int // fds
	Pad       int // fds

	WavePos     int // n163_wave
	WaveSize    int // n163_wave
	NumChannels int // n163_wave

	Mixer      int // s5b_square
	NoiseFreq  int // s5b_square
	EnvEnabled int // s5b_square
	EnvFreq    int // s5b_square
	EnvShape   int // s5b_square
	EnvTrigger int // s5b_square

	Reserved int // mmc5_dpcm
}

// ChannelData is one channel's extracted notes and raw trace, spec.md §3.
type ChannelData struct {
	ChannelID   int          `json:"channel_id"`
	ChannelType string       `json:"channel_type"`
	ChannelName string       `json:"channel_name"`
	Notes       []NoteEvent  `json:"notes"`
	RawDataRef  *RawDataRef  `json:"raw_data_ref"`
	RawFrames   []RawFrame   `json:"-"`
}

// SongData is one NSF track's extraction result, spec.md §3.
type SongData struct {
	Index         int           `json:"index"`
	Name          string        `json:"name"`
	NumFrames     int           `json:"num_frames"`
	PatternLength int           `json:"pattern_length"`
	Channels      []ChannelData `json:"channels"`
}

// NotationFile is the root aggregate of a single extraction, spec.md §3.
type NotationFile struct {
	Metadata Metadata   `json:"metadata"`
	Songs    []SongData `json:"songs"`
}
