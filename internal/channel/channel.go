// Package channel enumerates the 29 possible NSF audio channels and
// decides, for a given expansion mask and Namco-163 channel count, which
// of them are active on a track. This is C2 in SPEC_FULL.md.
package channel

// Channel ids, per spec.md §4.1/§6.2's CHANNEL_INFO table (also ported
// from original_source/nsfp/extract.py's CHANNEL_INFO and
// original_source/nsfp/nsfp.py's CHANNEL_* constants).
const (
	Square1 = iota
	Square2
	Triangle
	Noise
	DPCM
	VRC6Square1
	VRC6Square2
	VRC6Saw
	VRC7FM1
	VRC7FM2
	VRC7FM3
	VRC7FM4
	VRC7FM5
	VRC7FM6
	FDSWave
	MMC5Square1
	MMC5Square2
	MMC5DPCM
	N163Wave1
	N163Wave2
	N163Wave3
	N163Wave4
	N163Wave5
	N163Wave6
	N163Wave7
	N163Wave8
	S5BSquare1
	S5BSquare2
	S5BSquare3

	Count // 29
)

// ExpansionAudioStart is the first channel id belonging to an expansion
// chip rather than the base APU.
const ExpansionAudioStart = VRC6Square1

// Expansion bitmask bits, per spec.md §6.3.
const (
	MaskVRC6 uint32 = 1 << 0
	MaskVRC7 uint32 = 1 << 1
	MaskFDS  uint32 = 1 << 2
	MaskMMC5 uint32 = 1 << 3
	MaskN163 uint32 = 1 << 4
	MaskS5B  uint32 = 1 << 5
	MaskVT02 uint32 = 1 << 6 // out of scope; ignored per spec.md §1
	// bit 7 reserved
)

// AllSupportedMask is every expansion bit this extractor understands.
// VT02 (bit 6) and the reserved bit (7) are intentionally excluded: a
// mask using either must fail fast (spec.md §7) rather than silently
// drop the feature.
const AllSupportedMask = MaskVRC6 | MaskVRC7 | MaskFDS | MaskMMC5 | MaskN163 | MaskS5B

// Info describes a channel's fixed identity.
type Info struct {
	Type string
	Name string
}

// Table is the canonical channel_id -> (channel_type, channel_name)
// mapping from spec.md §4.1.
var Table = [Count]Info{
	Square1:     {"square", "Square 1"},
	Square2:     {"square", "Square 2"},
	Triangle:    {"triangle", "Triangle"},
	Noise:       {"noise", "Noise"},
	DPCM:        {"dpcm", "DPCM"},
	VRC6Square1: {"vrc6_square", "VRC6 Square 1"},
	VRC6Square2: {"vrc6_square", "VRC6 Square 2"},
	VRC6Saw:     {"vrc6_saw", "VRC6 Saw"},
	VRC7FM1:     {"vrc7_fm", "VRC7 FM 1"},
	VRC7FM2:     {"vrc7_fm", "VRC7 FM 2"},
	VRC7FM3:     {"vrc7_fm", "VRC7 FM 3"},
	VRC7FM4:     {"vrc7_fm", "VRC7 FM 4"},
	VRC7FM5:     {"vrc7_fm", "VRC7 FM 5"},
	VRC7FM6:     {"vrc7_fm", "VRC7 FM 6"},
	FDSWave:     {"fds", "FDS"},
	MMC5Square1: {"mmc5_square", "MMC5 Square 1"},
	MMC5Square2: {"mmc5_square", "MMC5 Square 2"},
	MMC5DPCM:    {"mmc5_dpcm", "MMC5 DPCM"},
	N163Wave1:   {"n163_wave", "N163 Wave 1"},
	N163Wave2:   {"n163_wave", "N163 Wave 2"},
	N163Wave3:   {"n163_wave", "N163 Wave 3"},
	N163Wave4:   {"n163_wave", "N163 Wave 4"},
	N163Wave5:   {"n163_wave", "N163 Wave 5"},
	N163Wave6:   {"n163_wave", "N163 Wave 6"},
	N163Wave7:   {"n163_wave", "N163 Wave 7"},
	N163Wave8:   {"n163_wave", "N163 Wave 8"},
	S5BSquare1:  {"s5b_square", "S5B Square 1"},
	S5BSquare2:  {"s5b_square", "S5B Square 2"},
	S5BSquare3:  {"s5b_square", "S5B Square 3"},
}

// ExpansionChips decodes an expansion bitmask into its canonical ordered
// chip-name list, per spec.md §3's fixed bit order.
func ExpansionChips(expansion uint32) []string {
	var chips []string
	order := []struct {
		bit  uint32
		name string
	}{
		{MaskVRC6, "VRC6"},
		{MaskVRC7, "VRC7"},
		{MaskFDS, "FDS"},
		{MaskMMC5, "MMC5"},
		{MaskN163, "N163"},
		{MaskS5B, "S5B"},
	}
	for _, o := range order {
		if expansion&o.bit != 0 {
			chips = append(chips, o.name)
		}
	}
	return chips
}

// IsActive reports whether channelID is active for the given expansion
// mask and Namco-163 channel count, per spec.md §4.2. namcoCount is
// ignored for channels outside the N163 range.
func IsActive(channelID int, expansion uint32, namcoCount int) bool {
	switch {
	case channelID < ExpansionAudioStart:
		return true
	case channelID >= VRC6Square1 && channelID <= VRC6Saw:
		return expansion&MaskVRC6 != 0
	case channelID >= VRC7FM1 && channelID <= VRC7FM6:
		return expansion&MaskVRC7 != 0
	case channelID == FDSWave:
		return expansion&MaskFDS != 0
	case channelID >= MMC5Square1 && channelID <= MMC5DPCM:
		return expansion&MaskMMC5 != 0
	case channelID >= N163Wave1 && channelID <= N163Wave8:
		return expansion&MaskN163 != 0 && channelID-N163Wave1 < clampNamco(namcoCount)
	case channelID >= S5BSquare1 && channelID <= S5BSquare3:
		return expansion&MaskS5B != 0
	default:
		return false
	}
}

func clampNamco(n int) int {
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// ActiveChannels returns the ordered list of channel ids active for the
// given expansion mask and Namco-163 channel count.
func ActiveChannels(expansion uint32, namcoCount int) []int {
	var ids []int
	for i := 0; i < Count; i++ {
		if IsActive(i, expansion, namcoCount) {
			ids = append(ids, i)
		}
	}
	return ids
}
