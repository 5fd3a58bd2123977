// Package reel builds and drives the purely cosmetic case-opening reel:
// a strip of decoy skins that always lands on the authoritative draw
// result. Nothing here feeds back into the draw.
package reel

import (
	"time"

	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/droptable"
)

const (
	// StripLength is the number of skins rendered on the reel.
	StripLength = 56
	// WinnerIndex is the fixed position the authoritative result is spliced
	// into, near the end so the reel scrolls past plenty of decoys first.
	WinnerIndex = 42

	// Layout constants for offset math. ItemWidth and ItemGap are the
	// rendered card dimensions in px; DefaultViewportWidth is the fallback
	// when the client cannot measure its viewport.
	ItemWidth            = 140
	ItemGap              = 12
	DefaultViewportWidth = 720

	// RevealDuration is how long the reel scrolls before the result screen.
	RevealDuration = 4500 * time.Millisecond
)

// Strip is a fully-built reel: cosmetic decoys with the authoritative
// winner at WinnerIndex.
type Strip struct {
	Skins       []*domain.Skin `json:"skins"`
	WinnerIndex int            `json:"winner_index"`
}

// BuildStrip samples StripLength decoys from the case's drop table and
// splices the authoritative winner into WinnerIndex. Decoy sampling reuses
// the table's weighted selection so the strip looks like the real odds,
// but every decoy roll is discarded: only the winner passed in is real.
// A nil table fills the strip with the winner.
func BuildStrip(table *droptable.Table, winner *domain.Skin, rnd func() float64) Strip {
	skins := make([]*domain.Skin, StripLength)
	for i := range skins {
		if table != nil {
			skins[i] = table.Sample(rnd)
		} else {
			skins[i] = winner
		}
	}
	skins[WinnerIndex] = winner

	return Strip{Skins: skins, WinnerIndex: WinnerIndex}
}

// Winner returns the authoritative skin the reel lands on.
func (s Strip) Winner() *domain.Skin {
	return s.Skins[s.WinnerIndex]
}

// TargetOffset computes the scroll offset (px, negative leftward) that
// centers the winner card under the viewport marker. Centering is always
// recomputed from the measured viewport width; a non-positive width falls
// back to DefaultViewportWidth.
func (s Strip) TargetOffset(viewportWidth int) int {
	if viewportWidth <= 0 {
		viewportWidth = DefaultViewportWidth
	}
	centerOffset := viewportWidth/2 - ItemWidth/2
	return -(s.WinnerIndex*(ItemWidth+ItemGap) - centerOffset)
}
