package container

import (
	"bytes"
	"encoding/binary"

	"github.com/sfingram/nsfnotate/internal/nsferr"
	"github.com/sfingram/nsfnotate/internal/notation"
)

// FrameSizes is the packed byte size of one frame for each channel_type,
// spec.md §6.2.
var FrameSizes = map[string]int{
	"square":      4,
	"triangle":    3,
	"noise":       3,
	"dpcm":        10,
	"vrc6_square": 4,
	"vrc6_saw":    3,
	"vrc7_fm":     8,
	"fds":         8,
	"mmc5_square": 4,
	"mmc5_dpcm":   1,
	"n163_wave":   8,
	"s5b_square":  10,
}

// HasBinaryFormat reports whether channelType has a packed binary layout
// (all twelve channel_type values do; spec.md §4.6).
func HasBinaryFormat(channelType string) bool {
	_, ok := FrameSizes[channelType]
	return ok
}

// PackFrames packs frames into their wire layout for channelType.
func PackFrames(channelType string, frames []notation.RawFrame) ([]byte, error) {
	size, ok := FrameSizes[channelType]
	if !ok {
		return nil, &nsferr.UnknownChannelType{Tag: channelType}
	}
	buf := bytes.NewBuffer(make([]byte, 0, size*len(frames)))
	for _, f := range frames {
		if err := packOne(buf, channelType, f); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnpackFrames unpacks a contiguous byte region into frame tuples for
// channelType.
func UnpackFrames(channelType string, data []byte) ([]notation.RawFrame, error) {
	size, ok := FrameSizes[channelType]
	if !ok {
		return nil, &nsferr.UnknownChannelType{Tag: channelType}
	}
	if size == 0 || len(data)%size != 0 {
		return nil, &nsferr.EncodingError{Detail: "raw frame data is not a multiple of the frame size"}
	}
	n := len(data) / size
	out := make([]notation.RawFrame, 0, n)
	for i := 0; i < n; i++ {
		f, err := unpackOne(channelType, data[i*size:(i+1)*size])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func packOne(buf *bytes.Buffer, channelType string, f notation.RawFrame) error {
	w := func(v interface{}) { binary.Write(buf, binary.LittleEndian, v) } //nolint:errcheck
	switch channelType {
	case "square", "vrc6_square", "mmc5_square":
		w(uint16(f.Period))
		w(uint8(f.Volume))
		w(uint8(f.Duty))
	case "triangle", "vrc6_saw":
		w(uint16(f.Period))
		w(uint8(f.Volume))
	case "noise":
		w(uint8(f.PeriodIdx))
		w(uint8(f.Volume))
		w(uint8(f.Mode))
	case "dpcm":
		w(uint16(f.SampleLen))
		w(f.SampleAddr)
		w(uint8(f.Pitch))
		w(uint8(f.Loop))
		w(uint8(f.Counter))
		w(uint8(f.Active))
	case "vrc7_fm":
		w(uint16(f.Period))
		w(uint8(f.Volume))
		w(uint8(f.Patch))
		w(uint8(f.Octave))
		w(uint8(f.Trigger))
		w(uint8(f.Sustain))
		w(int8(f.TriggerChange))
	case "fds":
		w(uint16(f.Period))
		w(uint8(f.Volume))
		w(uint8(f.MasterVol))
		w(uint16(f.ModSpeed))
		w(uint8(f.ModDepth))
		w(uint8(f.Pad))
	case "mmc5_dpcm":
		w(uint8(f.Reserved))
	case "n163_wave":
		w(f.Period)
		w(uint8(f.Volume))
		w(uint8(f.WavePos))
		w(uint8(f.WaveSize))
		w(uint8(f.NumChannels))
	case "s5b_square":
		w(uint16(f.Period))
		w(uint8(f.Volume))
		w(uint8(f.Mixer))
		w(uint8(f.NoiseFreq))
		w(uint8(f.EnvEnabled))
		w(uint16(f.EnvFreq))
		w(uint8(f.EnvShape))
		w(uint8(f.EnvTrigger))
	default:
		return &nsferr.UnknownChannelType{Tag: channelType}
	}
	return nil
}

func unpackOne(channelType string, data []byte) (notation.RawFrame, error) {
	r := bytes.NewReader(data)
	var f notation.RawFrame
	switch channelType {
	case "square", "vrc6_square", "mmc5_square":
		var period uint16
		var vol, duty uint8
		binary.Read(r, binary.LittleEndian, &period) //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &vol)     //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &duty)    //nolint:errcheck
		f.Period, f.Volume, f.Duty = int32(period), int(vol), int(duty)
	case "triangle", "vrc6_saw":
		var period uint16
		var vol uint8
		binary.Read(r, binary.LittleEndian, &period) //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &vol)     //nolint:errcheck
		f.Period, f.Volume = int32(period), int(vol)
	case "noise":
		var idx, vol, mode uint8
		binary.Read(r, binary.LittleEndian, &idx)  //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &vol)  //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &mode) //nolint:errcheck
		f.PeriodIdx, f.Volume, f.Mode = int(idx), int(vol), int(mode)
	case "dpcm":
		var sampleLen uint16
		var addr int32
		var pitch, loop, counter, active uint8
		binary.Read(r, binary.LittleEndian, &sampleLen) //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &addr)      //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &pitch)     //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &loop)      //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &counter)   //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &active)    //nolint:errcheck
		f.SampleLen, f.SampleAddr = int(sampleLen), addr
		f.Pitch, f.Loop, f.Counter, f.Active = int(pitch), int(loop), int(counter), int(active)
	case "vrc7_fm":
		var period uint16
		var vol, patch, octave, trigger, sustain uint8
		var trigChange int8
		binary.Read(r, binary.LittleEndian, &period)     //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &vol)        //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &patch)      //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &octave)     //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &trigger)    //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &sustain)    //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &trigChange) //nolint:errcheck
		f.Period, f.Volume, f.Patch, f.Octave = int32(period), int(vol), int(patch), int(octave)
		f.Trigger, f.Sustain, f.TriggerChange = int(trigger), int(sustain), int(trigChange)
	case "fds":
		var period uint16
		var vol, masterVol uint8
		var modSpeed uint16
		var modDepth, pad uint8
		binary.Read(r, binary.LittleEndian, &period)    //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &vol)       //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &masterVol) //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &modSpeed)  //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &modDepth)  //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &pad)       //nolint:errcheck
		f.Period, f.Volume, f.MasterVol = int32(period), int(vol), int(masterVol)
		f.ModSpeed, f.ModDepth, f.Pad = int(modSpeed), int(modDepth), int(pad)
	case "mmc5_dpcm":
		var reserved uint8
		binary.Read(r, binary.LittleEndian, &reserved) //nolint:errcheck
		f.Reserved = int(reserved)
	case "n163_wave":
		var period int32
		var vol, wavePos, waveSize, numCh uint8
		binary.Read(r, binary.LittleEndian, &period)   //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &vol)      //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &wavePos)  //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &waveSize) //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &numCh)    //nolint:errcheck
		f.Period, f.Volume = period, int(vol)
		f.WavePos, f.WaveSize, f.NumChannels = int(wavePos), int(waveSize), int(numCh)
	case "s5b_square":
		var period uint16
		var vol, mixer, noiseFreq, envEnabled uint8
		var envFreq uint16
		var envShape, envTrigger uint8
		binary.Read(r, binary.LittleEndian, &period)     //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &vol)        //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &mixer)      //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &noiseFreq)  //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &envEnabled) //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &envFreq)    //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &envShape)   //nolint:errcheck
		binary.Read(r, binary.LittleEndian, &envTrigger) //nolint:errcheck
		f.Period, f.Volume, f.Mixer = int32(period), int(vol), int(mixer)
		f.NoiseFreq, f.EnvEnabled, f.EnvFreq = int(noiseFreq), int(envEnabled), int(envFreq)
		f.EnvShape, f.EnvTrigger = int(envShape), int(envTrigger)
	default:
		return f, &nsferr.UnknownChannelType{Tag: channelType}
	}
	return f, nil
}
