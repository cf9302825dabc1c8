package extract

import (
	"fmt"

	"github.com/sfingram/nsfnotate/internal/channel"
	"github.com/sfingram/nsfnotate/internal/nsfconfig"
	"github.com/sfingram/nsfnotate/internal/nsferr"
	"github.com/sfingram/nsfnotate/internal/nsflog"
	"github.com/sfingram/nsfnotate/internal/nsfemu"
	"github.com/sfingram/nsfnotate/internal/notation"
	"github.com/sfingram/nsfnotate/internal/pitch"
)

// Run drives emu through every track and returns the full notation for the
// loaded NSF, per spec.md §4.5 (the Track Runner, C5).
func Run(emu *nsfemu.Emulator, cfg nsfconfig.ExtractionConfig) (notation.NotationFile, error) {
	cfg = cfg.Resolve()

	expansion := emu.ExpansionMask()
	if expansion&^channel.AllSupportedMask != 0 {
		return notation.NotationFile{}, &nsferr.EncodingError{
			Detail: fmt.Sprintf("expansion mask 0x%x has unsupported bits set", expansion),
		}
	}

	tables := pitch.Generate(cfg.Tuning)
	isPal := emu.IsPal()
	frameRate := emu.FrameRate()
	numFrames := cfg.Duration * frameRate
	region := "ntsc"
	if isPal {
		region = "pal"
	}

	nsflog.Logger.Info("starting extraction",
		"run_id", cfg.RunID, "tracks", emu.TrackCount(), "region", region)

	var songs []notation.SongData
	for t := 0; t < emu.TrackCount(); t++ {
		namcoCount := 1
		if expansion&channel.MaskN163 != 0 {
			namcoCount = namcoCountPrepass(emu, t, numFrames)
		}
		emu.SetTrack(t)

		song, err := runTrack(emu, t, numFrames, cfg.PatternLength, expansion, namcoCount, tables, isPal)
		if err != nil {
			return notation.NotationFile{}, err
		}
		nsflog.Logger.Info("extracted track",
			"track", t, "frames", song.NumFrames, "channels", len(song.Channels))
		songs = append(songs, song)
	}

	md := notation.Metadata{
		Title:          emu.Title(),
		Artist:         emu.Artist(),
		Copyright:      emu.Copyright(),
		Region:         region,
		FrameRate:      frameRate,
		Expansion:      expansion,
		ExpansionChips: channel.ExpansionChips(expansion),
	}
	return notation.NotationFile{Metadata: md, Songs: songs}, nil
}

// namcoCountPrepass runs a full look-ahead pass over track to discover the
// Namco-163 active channel count (spec.md §4.2): the value isn't known
// until the play routine has set it, so the only way to learn it is to
// run the whole track once, then rewind via SetTrack before the real
// extraction pass begins.
func namcoCountPrepass(emu *nsfemu.Emulator, track, numFrames int) int {
	emu.SetTrack(track)
	count := 1
	for frame := 0; frame < numFrames; frame++ {
		emu.RunFrame()
		v := emu.GetState(channel.N163Wave1, nsfemu.StateN163NumChannels, 0)
		if v > count {
			count = v
		}
	}
	if count < 1 {
		count = 1
	}
	if count > 8 {
		count = 8
	}
	nsflog.Logger.Debug("namco prepass complete", "track", track, "namco_count", count)
	return count
}

func runTrack(emu *nsfemu.Emulator, track, numFrames, patternLength int, expansion uint32, namcoCount int, tables pitch.Tables, isPal bool) (notation.SongData, error) {
	activeIDs := channel.ActiveChannels(expansion, namcoCount)

	states := make(map[int]*channelState, len(activeIDs))
	rawFrames := make(map[int][]notation.RawFrame, len(activeIDs))
	notes := make(map[int][]notation.NoteEvent, len(activeIDs))
	for _, id := range activeIDs {
		states[id] = newChannelState()
	}

	playInvoked := false
	for frame := 0; frame < numFrames; frame++ {
		if emu.RunFrame() {
			playInvoked = true
		}
		for _, id := range activeIDs {
			ctype := channel.Table[id].Type
			snap := readSnapshot(emu, id, ctype)
			rawFrames[id] = append(rawFrames[id], snap)
			if ev := updateChannel(ctype, frame, snap, states[id], tables, isPal); ev != nil {
				notes[id] = append(notes[id], *ev)
			}
		}
	}

	if numFrames > 0 && !playInvoked {
		nsflog.Logger.Warn("play routine never invoked", "track", track, "frames", numFrames)
		return notation.SongData{}, &nsferr.PlayNotInvoked{TrackIndex: track, Frames: numFrames}
	}

	name := emu.TrackName(track)
	if name == "" {
		name = fmt.Sprintf("Track %d", track)
	}

	channels := make([]notation.ChannelData, 0, len(activeIDs))
	for _, id := range activeIDs {
		info := channel.Table[id]
		channels = append(channels, notation.ChannelData{
			ChannelID:   id,
			ChannelType: info.Type,
			ChannelName: info.Name,
			Notes:       notes[id],
			RawFrames:   rawFrames[id],
		})
	}

	return notation.SongData{
		Index:         track,
		Name:          name,
		NumFrames:     numFrames,
		PatternLength: patternLength,
		Channels:      channels,
	}, nil
}

// readSnapshot pulls one frame's worth of raw register state for a
// channel, per the get_state sub-index contract of spec.md §6.3 and the
// per-channel-type field layout of spec.md §6.2. mmc5_dpcm reads nothing:
// it is observationally inert (spec.md §4.4.5).
func readSnapshot(emu *nsfemu.Emulator, id int, ctype string) notation.RawFrame {
	g := func(state int) int { return emu.GetState(id, state, 0) }

	switch ctype {
	case "square", "vrc6_square", "mmc5_square":
		return notation.RawFrame{
			Period: int32(g(nsfemu.StatePeriod)),
			Volume: g(nsfemu.StateVolume),
			Duty:   g(nsfemu.StateDutyCycle),
		}
	case "triangle", "vrc6_saw":
		return notation.RawFrame{
			Period: int32(g(nsfemu.StatePeriod)),
			Volume: g(nsfemu.StateVolume),
		}
	case "noise":
		return notation.RawFrame{
			PeriodIdx: g(nsfemu.StatePeriod),
			Volume:    g(nsfemu.StateVolume),
			Mode:      g(nsfemu.StateDutyCycle),
		}
	case "dpcm":
		return notation.RawFrame{
			SampleLen:  g(nsfemu.StateDpcmSampleLength),
			SampleAddr: int32(g(nsfemu.StateDpcmSampleAddr)),
			Pitch:      g(nsfemu.StateDpcmPitch),
			Loop:       g(nsfemu.StateDpcmLoop),
			Counter:    g(nsfemu.StateDpcmCounter),
			Active:     g(nsfemu.StateDpcmActive),
		}
	case "vrc7_fm":
		return notation.RawFrame{
			Period:        int32(g(nsfemu.StatePeriod)),
			Volume:        g(nsfemu.StateVolume),
			Patch:         g(nsfemu.StateVrc7Patch),
			Octave:        g(nsfemu.StateFmOctave),
			Trigger:       g(nsfemu.StateFmTrigger),
			Sustain:       g(nsfemu.StateFmSustain),
			TriggerChange: g(nsfemu.StateFmTriggerChange),
		}
	case "fds":
		return notation.RawFrame{
			Period:    int32(g(nsfemu.StatePeriod)),
			Volume:    g(nsfemu.StateVolume),
			MasterVol: g(nsfemu.StateFdsMasterVolume),
			ModSpeed:  g(nsfemu.StateFdsModulationSpeed),
			ModDepth:  g(nsfemu.StateFdsModulationDepth),
		}
	case "n163_wave":
		return notation.RawFrame{
			Period:      int32(g(nsfemu.StatePeriod)),
			Volume:      g(nsfemu.StateVolume),
			WavePos:     g(nsfemu.StateN163WavePos),
			WaveSize:    g(nsfemu.StateN163WaveSize),
			NumChannels: g(nsfemu.StateN163NumChannels),
		}
	case "s5b_square":
		return notation.RawFrame{
			Period:     int32(g(nsfemu.StatePeriod)),
			Volume:     g(nsfemu.StateVolume),
			Mixer:      g(nsfemu.StateS5bMixer),
			NoiseFreq:  g(nsfemu.StateS5bNoiseFrequency),
			EnvEnabled: g(nsfemu.StateS5bEnvEnabled),
			EnvFreq:    g(nsfemu.StateS5bEnvFrequency),
			EnvShape:   g(nsfemu.StateS5bEnvShape),
			EnvTrigger: g(nsfemu.StateS5bEnvTrigger),
		}
	default: // mmc5_dpcm
		return notation.RawFrame{}
	}
}

// updateChannel dispatches one frame's snapshot to the state-machine
// method for its channel family (spec.md §4.4).
func updateChannel(ctype string, frame int, snap notation.RawFrame, cs *channelState, tables pitch.Tables, isPal bool) *notation.NoteEvent {
	apuTable := tables.NTSC
	if isPal {
		apuTable = tables.PAL
	}

	switch ctype {
	case "square", "mmc5_square":
		return cs.updateGeneric(frame, int(snap.Period), snap.Volume, snap.Duty, apuTable, 0)
	case "vrc6_square":
		return cs.updateGeneric(frame, int(snap.Period), snap.Volume, snap.Duty, apuTable, 0)
	case "triangle":
		return cs.updateGeneric(frame, int(snap.Period), snap.Volume, 0, apuTable, 0)
	case "vrc6_saw":
		return cs.updateGeneric(frame, int(snap.Period), snap.Volume, 0, tables.VRC6Saw, 0)
	case "fds":
		ev := cs.updateGeneric(frame, int(snap.Period), snap.Volume, 0, tables.FDS, 0)
		cs.fdsModSpeed = snap.ModSpeed
		cs.fdsModDepth = snap.ModDepth
		return ev
	case "n163_wave":
		table := tables.N163Table(snap.NumChannels)
		return cs.updateGeneric(frame, int(snap.Period), snap.Volume, 0, table, 0)
	case "s5b_square":
		return cs.updateGeneric(frame, int(snap.Period), snap.Volume, 0, apuTable, -1)
	case "noise":
		return cs.updateNoise(frame, snap.PeriodIdx, snap.Volume, snap.Mode)
	case "dpcm":
		return cs.updateDPCM(frame, snap.SampleLen, snap.SampleAddr, snap.Pitch, snap.Loop, snap.Counter, snap.Active)
	case "vrc7_fm":
		return cs.updateFM(frame, int(snap.Period), snap.Volume, snap.Patch, snap.Octave, snap.Trigger != 0, snap.Sustain != 0, tables.VRC7)
	default: // mmc5_dpcm
		return nil
	}
}
