package channel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/sfingram/nsfnotate/internal/channel"
)

func TestIsActiveBaseChannelsAlwaysOn(t *testing.T) {
	for id := channel.Square1; id < channel.ExpansionAudioStart; id++ {
		assert.True(t, channel.IsActive(id, 0, 1))
	}
}

func TestIsActiveExpansionGating(t *testing.T) {
	cases := []struct {
		name      string
		id        int
		expansion uint32
		want      bool
	}{
		{"vrc6 off", channel.VRC6Square1, 0, false},
		{"vrc6 on", channel.VRC6Square1, channel.MaskVRC6, true},
		{"vrc7 off", channel.VRC7FM1, channel.MaskVRC6, false},
		{"vrc7 on", channel.VRC7FM6, channel.MaskVRC7, true},
		{"fds on", channel.FDSWave, channel.MaskFDS, true},
		{"mmc5 on", channel.MMC5DPCM, channel.MaskMMC5, true},
		{"s5b on", channel.S5BSquare3, channel.MaskS5B, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, channel.IsActive(tc.id, tc.expansion, 1))
		})
	}
}

func TestIsActiveNamcoCountGating(t *testing.T) {
	assert.True(t, channel.IsActive(channel.N163Wave1, channel.MaskN163, 1))
	assert.False(t, channel.IsActive(channel.N163Wave2, channel.MaskN163, 1))
	assert.True(t, channel.IsActive(channel.N163Wave4, channel.MaskN163, 4))
	assert.False(t, channel.IsActive(channel.N163Wave5, channel.MaskN163, 4))
	assert.True(t, channel.IsActive(channel.N163Wave8, channel.MaskN163, 8))
}

func TestIsActiveNamcoCountClampedToValidRange(t *testing.T) {
	// namco_count <= 0 still behaves as 1
	assert.True(t, channel.IsActive(channel.N163Wave1, channel.MaskN163, 0))
	assert.False(t, channel.IsActive(channel.N163Wave2, channel.MaskN163, 0))
	// namco_count > 8 still clamps to 8
	assert.True(t, channel.IsActive(channel.N163Wave8, channel.MaskN163, 99))
}

func TestExpansionChipsFixedBitOrder(t *testing.T) {
	mask := channel.MaskS5B | channel.MaskVRC6 | channel.MaskN163
	assert.Equal(t, []string{"VRC6", "N163", "S5B"}, channel.ExpansionChips(mask))
}

func TestExpansionChipsEmptyForZeroMask(t *testing.T) {
	assert.Empty(t, channel.ExpansionChips(0))
}

func TestActiveChannelsProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		expansion := rapid.Uint32Range(0, channel.AllSupportedMask).Draw(rt, "expansion")
		namcoCount := rapid.IntRange(-5, 20).Draw(rt, "namcoCount")

		ids := channel.ActiveChannels(expansion, namcoCount)

		// every base channel is always present
		for id := channel.Square1; id < channel.ExpansionAudioStart; id++ {
			assert.Contains(rt, ids, id)
		}
		// result is sorted ascending and agrees with IsActive
		for i, id := range ids {
			if i > 0 {
				assert.Greater(rt, id, ids[i-1])
			}
			assert.True(rt, channel.IsActive(id, expansion, namcoCount))
		}
	})
}
