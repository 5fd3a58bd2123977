package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWearFromFloat(t *testing.T) {
	t.Run("maps canonical boundaries", func(t *testing.T) {
		cases := []struct {
			f    float64
			want Wear
		}{
			{0.0, WearFactoryNew},
			{0.0699, WearFactoryNew},
			{0.07, WearMinimalWear},
			{0.1499, WearMinimalWear},
			{0.15, WearFieldTested},
			{0.3799, WearFieldTested},
			{0.38, WearWellWorn},
			{0.4499, WearWellWorn},
			{0.45, WearBattleScarred},
			{0.50, WearBattleScarred},
			{0.9999, WearBattleScarred},
		}
		for _, tc := range cases {
			assert.Equal(t, tc.want, WearFromFloat(tc.f), "float %v", tc.f)
		}
	})

	t.Run("partition is total over [0,1)", func(t *testing.T) {
		// Every float maps to exactly one of the five tiers.
		valid := map[Wear]bool{
			WearFactoryNew:    true,
			WearMinimalWear:   true,
			WearFieldTested:   true,
			WearWellWorn:      true,
			WearBattleScarred: true,
		}
		for f := 0.0; f < 1.0; f += 0.0001 {
			assert.True(t, valid[WearFromFloat(f)], "float %v mapped outside the five tiers", f)
		}
	})
}

func TestValueForFloat(t *testing.T) {
	skin := &Skin{MinValue: 1000, MaxValue: 5000}

	t.Run("float zero yields maximum value", func(t *testing.T) {
		assert.Equal(t, int64(5000), skin.ValueForFloat(0))
	})

	t.Run("lower float yields higher value", func(t *testing.T) {
		assert.Greater(t, skin.ValueForFloat(0.1), skin.ValueForFloat(0.9))
	})

	t.Run("interpolates linearly", func(t *testing.T) {
		assert.Equal(t, int64(3000), skin.ValueForFloat(0.5))
	})

	t.Run("never drops below minimum inside range", func(t *testing.T) {
		assert.GreaterOrEqual(t, skin.ValueForFloat(0.9999), skin.MinValue)
	})
}

func TestRarityOrder(t *testing.T) {
	ladder := []Rarity{
		RarityConsumer,
		RarityIndustrial,
		RarityMilSpec,
		RarityRestricted,
		RarityClassified,
		RarityCovert,
		RarityRareSpecial,
	}

	for i := 1; i < len(ladder); i++ {
		assert.Greater(t, ladder[i].Order(), ladder[i-1].Order())
		assert.True(t, ladder[i].IsAtLeast(ladder[i-1]))
		assert.False(t, ladder[i-1].IsAtLeast(ladder[i]))
	}

	assert.Equal(t, -1, Rarity("Shiny").Order())
}
