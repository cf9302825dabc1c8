// Package container is C6, the binary notation container codec: the
// `.nsfn` wire format of spec.md §6.1 and the packed raw-frame layouts
// of spec.md §6.2. Grounded on original_source/nsfp/notation.py's
// write/read pair and on musclesoft-nin64k/tools/forge/serialize's
// offset-table-then-blob approach to laying out packed binary regions.
package container

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/sfingram/nsfnotate/internal/channel"
	"github.com/sfingram/nsfnotate/internal/nsferr"
	"github.com/sfingram/nsfnotate/internal/nsflog"
	"github.com/sfingram/nsfnotate/internal/notation"
)

// Magic, Version and HeaderSize are the container's fixed framing
// constants, spec.md §6.1.
const (
	Magic      = "NSFN"
	Version    = 1
	HeaderSize = 12 // magic(4) + version(4) + json_len(4)
)

type jsonDoc struct {
	Format   string            `json:"format"`
	Version  int               `json:"version"`
	Metadata notation.Metadata `json:"metadata"`
	Songs    []notation.SongData `json:"songs"`
}

// computeBinaryLayout walks data's songs and channels in declaration
// order, assigning each channel with packable, non-empty raw frames a
// contiguous region of the output blob. It mutates RawDataRef on the
// ChannelData values it touches and returns the concatenated blob.
func computeBinaryLayout(data *notation.NotationFile) ([]byte, error) {
	var blob bytes.Buffer
	offset := 0
	for si := range data.Songs {
		song := &data.Songs[si]
		for ci := range song.Channels {
			ch := &song.Channels[ci]
			ch.RawDataRef = nil
			if len(ch.RawFrames) == 0 || !HasBinaryFormat(ch.ChannelType) {
				continue
			}
			packed, err := PackFrames(ch.ChannelType, ch.RawFrames)
			if err != nil {
				return nil, err
			}
			ch.RawDataRef = &notation.RawDataRef{
				ByteOffset:   offset,
				ByteLength:   len(packed),
				FrameSize:    FrameSizes[ch.ChannelType],
				StructFormat: ch.ChannelType,
			}
			blob.Write(packed)
			offset += len(packed)
		}
	}
	return blob.Bytes(), nil
}

// Marshal serializes data into the complete `.nsfn` byte layout.
func Marshal(data notation.NotationFile) ([]byte, error) {
	// Work on a copy so callers keep their own RawDataRef state (nil)
	// untouched regardless of how Marshal lays things out.
	cp := data
	cp.Songs = append([]notation.SongData(nil), data.Songs...)
	for i := range cp.Songs {
		cp.Songs[i].Channels = append([]notation.ChannelData(nil), data.Songs[i].Channels...)
	}

	binBlob, err := computeBinaryLayout(&cp)
	if err != nil {
		return nil, err
	}

	if cp.Metadata.Expansion&^channel.AllSupportedMask != 0 {
		return nil, &nsferr.EncodingError{Detail: fmt.Sprintf("expansion mask 0x%x has unsupported bits set", cp.Metadata.Expansion)}
	}
	if cp.Metadata.ExpansionChips == nil {
		cp.Metadata.ExpansionChips = channel.ExpansionChips(cp.Metadata.Expansion)
	}

	doc := jsonDoc{
		Format:   "nsfn",
		Version:  Version,
		Metadata: cp.Metadata,
		Songs:    cp.Songs,
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, &nsferr.EncodingError{Detail: err.Error()}
	}

	out := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(jsonBytes)+4+len(binBlob)))
	out.WriteString(Magic)
	writeU32(out, Version)
	writeU32(out, uint32(len(jsonBytes)))
	out.Write(jsonBytes)
	writeU32(out, uint32(len(binBlob)))
	out.Write(binBlob)

	nsflog.Logger.Debug("marshaled container", "json_bytes", len(jsonBytes), "bin_bytes", len(binBlob))
	return out.Bytes(), nil
}

// Unmarshal parses a complete `.nsfn` byte layout back into a
// NotationFile, reconstructing every channel's RawFrames from the
// binary chunk via its RawDataRef.
func Unmarshal(raw []byte) (notation.NotationFile, error) {
	if len(raw) < HeaderSize {
		return notation.NotationFile{}, &nsferr.Truncated{Where: "header", Need: HeaderSize, Have: len(raw)}
	}
	var seen [4]byte
	copy(seen[:], raw[0:4])
	if string(seen[:]) != Magic {
		return notation.NotationFile{}, &nsferr.InvalidMagic{Seen: seen}
	}
	version := binary.LittleEndian.Uint32(raw[4:8])
	if version != Version {
		return notation.NotationFile{}, &nsferr.UnsupportedVersion{Seen: version}
	}

	jsonLen := binary.LittleEndian.Uint32(raw[8:12])
	jsonEnd := HeaderSize + int(jsonLen)
	if jsonEnd > len(raw) {
		return notation.NotationFile{}, &nsferr.Truncated{Where: "json", Need: jsonEnd, Have: len(raw)}
	}
	jsonBytes := raw[HeaderSize:jsonEnd]

	var doc jsonDoc
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return notation.NotationFile{}, &nsferr.EncodingError{Detail: err.Error()}
	}

	binHeaderEnd := jsonEnd + 4
	if binHeaderEnd > len(raw) {
		return notation.NotationFile{}, &nsferr.Truncated{Where: "binary_length", Need: binHeaderEnd, Have: len(raw)}
	}
	binLen := binary.LittleEndian.Uint32(raw[jsonEnd:binHeaderEnd])
	binEnd := binHeaderEnd + int(binLen)
	if binEnd > len(raw) {
		return notation.NotationFile{}, &nsferr.Truncated{Where: "binary", Need: binEnd, Have: len(raw)}
	}
	binData := raw[binHeaderEnd:binEnd]

	out := notation.NotationFile{Metadata: doc.Metadata, Songs: doc.Songs}
	if out.Metadata.ExpansionChips == nil {
		out.Metadata.ExpansionChips = channel.ExpansionChips(out.Metadata.Expansion)
	}

	for si := range out.Songs {
		for ci := range out.Songs[si].Channels {
			ch := &out.Songs[si].Channels[ci]
			if ch.RawDataRef == nil {
				continue
			}
			ref := ch.RawDataRef
			if ref.ByteOffset < 0 || ref.ByteOffset+ref.ByteLength > len(binData) {
				return notation.NotationFile{}, &nsferr.Truncated{
					Where: "channel_raw_data",
					Need:  ref.ByteOffset + ref.ByteLength,
					Have:  len(binData),
				}
			}
			frames, err := UnpackFrames(ref.StructFormat, binData[ref.ByteOffset:ref.ByteOffset+ref.ByteLength])
			if err != nil {
				return notation.NotationFile{}, err
			}
			ch.RawFrames = frames
		}
	}
	return out, nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
