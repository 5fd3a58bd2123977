package catalog

import (
	"context"
	"fmt"

	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/logger"
	"github.com/casefall/casefall/internal/repository"
)

// Seeder writes a validated catalog into the database.
type Seeder struct {
	repo repository.Catalog
}

// NewSeeder creates a new catalog seeder
func NewSeeder(repo repository.Catalog) *Seeder {
	return &Seeder{repo: repo}
}

// Seed upserts every skin and case, replacing each case's drop table.
// Re-seeding the same catalog is a no-op apart from timestamps.
func (s *Seeder) Seed(ctx context.Context, f *File) error {
	log := logger.FromContext(ctx)

	skinIDs := make(map[string]*domain.Skin, len(f.Skins))
	for _, def := range f.Skins {
		skin := &domain.Skin{
			Name:        def.Name,
			WeaponType:  def.WeaponType,
			Rarity:      domain.Rarity(def.Rarity),
			MinValue:    def.MinValue,
			MaxValue:    def.MaxValue,
			ImageURL:    def.ImageURL,
			Description: def.Description,
		}
		if err := s.repo.UpsertSkin(ctx, skin); err != nil {
			return err
		}
		skinIDs[def.Name] = skin
	}

	for _, def := range f.Cases {
		c := &domain.Case{
			Name:        def.Name,
			Description: def.Description,
			Price:       def.Price,
			ImageURL:    def.ImageURL,
			IsActive:    def.Active,
		}
		if err := s.repo.UpsertCase(ctx, c); err != nil {
			return err
		}

		slots := make([]domain.CaseSlot, 0, len(def.Slots))
		for _, slot := range def.Slots {
			skin, ok := skinIDs[slot.Skin]
			if !ok {
				return fmt.Errorf("case %q: unknown skin %q", def.Name, slot.Skin)
			}
			slots = append(slots, domain.CaseSlot{
				CaseID:     c.ID,
				SkinID:     skin.ID,
				DropWeight: slot.Weight,
			})
		}
		if err := s.repo.ReplaceCaseSlots(ctx, c.ID, slots); err != nil {
			return err
		}
	}

	log.Info("Catalog seeded", "skins", len(f.Skins), "cases", len(f.Cases))
	return nil
}
