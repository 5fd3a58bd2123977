package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Skin represents a collectible weapon skin. Reference data, immutable once
// seeded.
type Skin struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	WeaponType  string    `json:"weapon_type"`
	Rarity      Rarity    `json:"rarity"`
	MinValue    int64     `json:"min_value"` // cents, value at float -> 1
	MaxValue    int64     `json:"max_value"` // cents, value at float -> 0
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Rarity is the ordered drop-rarity tier of a skin
type Rarity string

const (
	RarityConsumer    Rarity = "Consumer Grade"
	RarityIndustrial  Rarity = "Industrial Grade"
	RarityMilSpec     Rarity = "Mil-Spec"
	RarityRestricted  Rarity = "Restricted"
	RarityClassified  Rarity = "Classified"
	RarityCovert      Rarity = "Covert"
	RarityRareSpecial Rarity = "Rare Special"
)

// Order returns the position of the rarity in the tier ladder, lowest first.
// Unknown rarities sort below Consumer Grade.
func (r Rarity) Order() int {
	switch r {
	case RarityConsumer:
		return 0
	case RarityIndustrial:
		return 1
	case RarityMilSpec:
		return 2
	case RarityRestricted:
		return 3
	case RarityClassified:
		return 4
	case RarityCovert:
		return 5
	case RarityRareSpecial:
		return 6
	default:
		return -1
	}
}

// IsAtLeast reports whether r is the same tier as other or rarer.
func (r Rarity) IsAtLeast(other Rarity) bool {
	return r.Order() >= other.Order()
}

// Wear is the discrete condition tier derived from a skin's wear float
type Wear string

const (
	WearFactoryNew    Wear = "Factory New"
	WearMinimalWear   Wear = "Minimal Wear"
	WearFieldTested   Wear = "Field-Tested"
	WearWellWorn      Wear = "Well-Worn"
	WearBattleScarred Wear = "Battle-Scarred"
)

// Wear float partition boundaries. The canonical table: each tier owns the
// half-open interval [previous boundary, its boundary).
const (
	WearBoundFactoryNew  = 0.07
	WearBoundMinimalWear = 0.15
	WearBoundFieldTested = 0.38
	WearBoundWellWorn    = 0.45
)

// WearFromFloat maps a wear float in [0,1) to its condition tier. The
// partition is total: every float maps to exactly one tier, with values
// outside [0,1) clamping to the outermost tiers.
func WearFromFloat(f float64) Wear {
	switch {
	case f < WearBoundFactoryNew:
		return WearFactoryNew
	case f < WearBoundMinimalWear:
		return WearMinimalWear
	case f < WearBoundFieldTested:
		return WearFieldTested
	case f < WearBoundWellWorn:
		return WearWellWorn
	default:
		return WearBattleScarred
	}
}

// ValueForFloat interpolates a skin's value from its wear float: a lower
// float means a better condition and a value nearer the maximum.
func (s *Skin) ValueForFloat(f float64) int64 {
	spread := float64(s.MaxValue - s.MinValue)
	return s.MaxValue - int64(math.Round(f*spread))
}
