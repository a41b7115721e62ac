package commission

import (
	"context"

	"github.com/cartrade/backend/internal/domain/commission"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TierService handles commission tier configuration
type TierService struct {
	tierRepo commission.TierRepository
}

// NewTierService creates a new TierService
func NewTierService(tierRepo commission.TierRepository) *TierService {
	return &TierService{tierRepo: tierRepo}
}

// Create configures a new commission tier
func (s *TierService) Create(ctx context.Context, req CreateTierRequest) (*TierResponse, error) {
	tier, err := commission.NewCommissionTier(req.Name, req.MinSalesCount, req.MaxSalesCount, req.CommissionRate)
	if err != nil {
		return nil, err
	}

	if err := s.tierRepo.Save(ctx, tier); err != nil {
		return nil, err
	}

	response := ToTierResponse(tier)
	return &response, nil
}

// Activate re-enables a tier for resolution
func (s *TierService) Activate(ctx context.Context, tierID uuid.UUID) (*TierResponse, error) {
	tier, err := s.tierRepo.FindByID(ctx, tierID)
	if err != nil {
		return nil, err
	}

	tier.Activate()
	if err := s.tierRepo.Save(ctx, tier); err != nil {
		return nil, err
	}

	response := ToTierResponse(tier)
	return &response, nil
}

// Deactivate removes a tier from resolution without deleting its history
func (s *TierService) Deactivate(ctx context.Context, tierID uuid.UUID) (*TierResponse, error) {
	tier, err := s.tierRepo.FindByID(ctx, tierID)
	if err != nil {
		return nil, err
	}

	tier.Deactivate()
	if err := s.tierRepo.Save(ctx, tier); err != nil {
		return nil, err
	}

	response := ToTierResponse(tier)
	return &response, nil
}

// GetByID retrieves a tier by ID
func (s *TierService) GetByID(ctx context.Context, tierID uuid.UUID) (*TierResponse, error) {
	tier, err := s.tierRepo.FindByID(ctx, tierID)
	if err != nil {
		return nil, err
	}
	response := ToTierResponse(tier)
	return &response, nil
}

// List retrieves tiers with pagination
func (s *TierService) List(ctx context.Context, filter shared.Filter) ([]TierResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	tiers, total, err := s.tierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToTierResponses(tiers), total, nil
}
