package caseopening

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/droptable"
	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/reel"
	"github.com/casefall/casefall/internal/repository"
	"github.com/casefall/casefall/internal/utils"
)

// Service defines the interface for case opening operations
type Service interface {
	ListCases(ctx context.Context) ([]domain.Case, error)
	GetCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error)
	GetDropTable(ctx context.Context, caseID uuid.UUID) ([]domain.CaseSlot, error)
	PurchaseCase(ctx context.Context, session auth.Session, caseID uuid.UUID) (*domain.PurchasedCase, int64, error)
	ListPurchases(ctx context.Context, session auth.Session, unopenedOnly bool) ([]domain.PurchasedCase, error)
	OpenCase(ctx context.Context, session auth.Session, purchaseID uuid.UUID) (*domain.OpenResult, reel.Strip, error)
}

type service struct {
	repo   repository.CaseOpening
	bus    event.Bus
	rnd    func() float64
	tables *lru.Cache[uuid.UUID, *droptable.Table]
}

// NewService creates a new case opening service. rnd may be nil, in which
// case the shared PRNG is used; tests inject a deterministic stream.
func NewService(repo repository.CaseOpening, bus event.Bus, rnd func() float64) Service {
	if rnd == nil {
		rnd = utils.RandomFloat
	}
	tables, _ := lru.New[uuid.UUID, *droptable.Table](compiledTableCacheSize)
	return &service{
		repo:   repo,
		bus:    bus,
		rnd:    rnd,
		tables: tables,
	}
}

// ListCases returns all cases available for purchase
func (s *service) ListCases(ctx context.Context) ([]domain.Case, error) {
	cases, err := s.repo.ListActiveCases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

// GetCase returns a single active case
func (s *service) GetCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	c, err := s.repo.GetCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, domain.ErrCaseNotFound
	}
	return c, nil
}

// GetDropTable returns the case's drop table rows with skins attached
func (s *service) GetDropTable(ctx context.Context, caseID uuid.UUID) ([]domain.CaseSlot, error) {
	if _, err := s.GetCase(ctx, caseID); err != nil {
		return nil, err
	}
	slots, err := s.repo.GetCaseSlots(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get drop table: %w", err)
	}
	return slots, nil
}

// ListPurchases returns the session user's purchased cases
func (s *service) ListPurchases(ctx context.Context, session auth.Session, unopenedOnly bool) ([]domain.PurchasedCase, error) {
	purchases, err := s.repo.ListPurchasedCases(ctx, session.UserID, unopenedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

// compiledTable returns the case's compiled probability table, building and
// caching it on first use. Tables are immutable so the cache never needs
// invalidation between catalog seeds.
func (s *service) compiledTable(ctx context.Context, caseID uuid.UUID) (*droptable.Table, error) {
	if table, ok := s.tables.Get(caseID); ok {
		return table, nil
	}

	slots, err := s.repo.GetCaseSlots(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCompileTable, err)
	}

	entries := make([]droptable.Entry, 0, len(slots))
	for _, slot := range slots {
		entries = append(entries, droptable.Entry{Skin: slot.Skin, Weight: slot.DropWeight})
	}

	table, err := droptable.New(entries)
	if err != nil {
		return nil, err
	}

	s.tables.Add(caseID, table)
	return table, nil
}
