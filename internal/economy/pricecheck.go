package economy

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/utils"
)

// PriceQuote is a simulated market quote for an inventory item. There is no
// real market behind it; the quote is the item's recorded value nudged by a
// deterministic offset so the same item always quotes the same.
type PriceQuote struct {
	ItemID         uuid.UUID   `json:"item_id"`
	SkinName       string      `json:"skin_name"`
	Wear           domain.Wear `json:"wear"`
	BaseValue      int64       `json:"base_value"`
	QuotedValue    int64       `json:"quoted_value"`
	FormattedQuote string      `json:"formatted_quote"`
}

// PriceCheck quotes a price for one of the session user's items
func (s *service) PriceCheck(ctx context.Context, session auth.Session, itemID uuid.UUID) (*PriceQuote, error) {
	item, err := s.repo.GetInventoryItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != session.UserID {
		return nil, domain.ErrItemNotFound
	}

	wear := item.Wear()
	quoted := quoteValue(item.Skin.Name, wear, item.Value)

	return &PriceQuote{
		ItemID:         item.ID,
		SkinName:       item.Skin.Name,
		Wear:           wear,
		BaseValue:      item.Value,
		QuotedValue:    quoted,
		FormattedQuote: utils.FormatCents(quoted),
	}, nil
}

// quoteValue offsets base by up to quoteJitterBasisPoints either way, keyed
// on the skin and wear so quotes are stable across calls.
func quoteValue(skinName string, wear domain.Wear, base int64) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s", skinName, wear)

	span := int64(2*quoteJitterBasisPoints + 1)
	offset := int64(h.Sum64()%uint64(span)) - quoteJitterBasisPoints

	quoted := base + base*offset/10000
	if quoted < 0 {
		quoted = 0
	}
	return quoted
}
