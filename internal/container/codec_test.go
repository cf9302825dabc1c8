package container_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfingram/nsfnotate/internal/channel"
	"github.com/sfingram/nsfnotate/internal/container"
	"github.com/sfingram/nsfnotate/internal/nsferr"
	"github.com/sfingram/nsfnotate/internal/notation"
)

func sampleFile() notation.NotationFile {
	return notation.NotationFile{
		Metadata: notation.Metadata{
			Title: "Song", Artist: "Artist", Copyright: "(c) 2026",
			Region: "ntsc", FrameRate: 60, Expansion: channel.MaskVRC6,
		},
		Songs: []notation.SongData{
			{
				Index: 0, Name: "Track 0", NumFrames: 2, PatternLength: 256,
				Channels: []notation.ChannelData{
					{
						ChannelID: channel.Square1, ChannelType: "square", ChannelName: "Square 1",
						Notes: []notation.NoteEvent{
							{Frame: 0, Event: notation.EventTrigger, Note: 40, Octave: 3, Volume: 12},
						},
						RawFrames: []notation.RawFrame{
							{Period: 100, Volume: 12, Duty: 2},
							{Period: 100, Volume: 0},
						},
					},
					{
						ChannelID: channel.VRC6Square1, ChannelType: "vrc6_square", ChannelName: "VRC6 Square 1",
						RawFrames: []notation.RawFrame{{}, {}},
					},
				},
			},
		},
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := sampleFile()
	raw, err := container.Marshal(in)
	require.NoError(t, err)

	assert.Equal(t, container.Magic, string(raw[0:4]))

	out, err := container.Unmarshal(raw)
	require.NoError(t, err)

	assert.Equal(t, in.Metadata.Title, out.Metadata.Title)
	assert.Equal(t, []string{"VRC6"}, out.Metadata.ExpansionChips)
	require.Len(t, out.Songs, 1)
	require.Len(t, out.Songs[0].Channels, 2)
	assert.Equal(t, in.Songs[0].Channels[0].RawFrames, out.Songs[0].Channels[0].RawFrames)
	assert.Equal(t, in.Songs[0].Channels[0].Notes, out.Songs[0].Channels[0].Notes)
}

func TestMarshalDoesNotMutateCallerValue(t *testing.T) {
	in := sampleFile()
	require.Nil(t, in.Songs[0].Channels[0].RawDataRef)

	_, err := container.Marshal(in)
	require.NoError(t, err)

	assert.Nil(t, in.Songs[0].Channels[0].RawDataRef)
}

func TestMarshalRejectsUnsupportedExpansionBits(t *testing.T) {
	in := sampleFile()
	in.Metadata.Expansion = channel.MaskVT02
	_, err := container.Marshal(in)
	require.Error(t, err)
	var target *nsferr.EncodingError
	require.ErrorAs(t, err, &target)
}

func TestUnmarshalRejectsShortHeader(t *testing.T) {
	_, err := container.Unmarshal([]byte{'N', 'S', 'F'})
	require.Error(t, err)
	var target *nsferr.Truncated
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "header", target.Where)
	assert.Equal(t, 12, target.Need)
	assert.Equal(t, 3, target.Have)
}

func TestUnmarshalRejectsBadMagic(t *testing.T) {
	raw, err := container.Marshal(sampleFile())
	require.NoError(t, err)
	raw[0] = 'X'
	_, err = container.Unmarshal(raw)
	require.Error(t, err)
	var target *nsferr.InvalidMagic
	require.ErrorAs(t, err, &target)
}

func TestUnmarshalRejectsUnsupportedVersion(t *testing.T) {
	raw, err := container.Marshal(sampleFile())
	require.NoError(t, err)
	binary.LittleEndian.PutUint32(raw[4:8], 99)
	_, err = container.Unmarshal(raw)
	require.Error(t, err)
	var target *nsferr.UnsupportedVersion
	require.ErrorAs(t, err, &target)
	assert.Equal(t, uint32(99), target.Seen)
}

func TestUnmarshalRejectsTruncatedJSON(t *testing.T) {
	raw, err := container.Marshal(sampleFile())
	require.NoError(t, err)
	have := len(raw)
	claimedJSONLen := uint32(have)
	binary.LittleEndian.PutUint32(raw[8:12], claimedJSONLen) // claim json runs past EOF
	_, err = container.Unmarshal(raw)
	require.Error(t, err)
	var target *nsferr.Truncated
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "json", target.Where)
	assert.Equal(t, container.HeaderSize+int(claimedJSONLen), target.Need)
	assert.Equal(t, have, target.Have)
}

func TestUnmarshalRejectsTruncatedBinaryChunk(t *testing.T) {
	raw, err := container.Marshal(sampleFile())
	require.NoError(t, err)
	// Truncate the file one byte past the binary-length field so the
	// declared binary chunk runs past what's actually present.
	jsonLen := binary.LittleEndian.Uint32(raw[8:12])
	binLenOffset := container.HeaderSize + int(jsonLen)
	binLen := binary.LittleEndian.Uint32(raw[binLenOffset : binLenOffset+4])
	truncated := raw[:binLenOffset+4+1]
	_, err = container.Unmarshal(truncated)
	require.Error(t, err)
	var target *nsferr.Truncated
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "binary", target.Where)
	assert.Equal(t, binLenOffset+4+int(binLen), target.Need)
	assert.Equal(t, len(truncated), target.Have)
}

func TestUnmarshalRejectsMalformedJSON(t *testing.T) {
	var raw []byte
	raw = append(raw, []byte(container.Magic)...)
	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], container.Version)
	raw = append(raw, v[:]...)
	bad := []byte("{not valid json")
	var jl [4]byte
	binary.LittleEndian.PutUint32(jl[:], uint32(len(bad)))
	raw = append(raw, jl[:]...)
	raw = append(raw, bad...)
	var bl [4]byte
	binary.LittleEndian.PutUint32(bl[:], 0)
	raw = append(raw, bl[:]...)

	_, err := container.Unmarshal(raw)
	require.Error(t, err)
	var target *nsferr.EncodingError
	require.ErrorAs(t, err, &target)
}
