package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/casefall/casefall/internal/domain"
)

// Catalog defines the interface for seeding reference data
type Catalog interface {
	UpsertSkin(ctx context.Context, skin *domain.Skin) error
	UpsertCase(ctx context.Context, c *domain.Case) error
	ReplaceCaseSlots(ctx context.Context, caseID uuid.UUID, slots []domain.CaseSlot) error
}
