package fleet

import (
	"context"
	"time"

	"github.com/cartrade/backend/internal/domain/fleet"
	"github.com/cartrade/backend/internal/domain/procurement"
	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleService handles vehicle inventory business operations
type VehicleService struct {
	vehicleRepo    fleet.VehicleRepository
	purchaseRepo   procurement.PurchaseRepository
	configRepo     settings.ConfigurationRepository
	eventPublisher shared.EventPublisher
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(
	vehicleRepo fleet.VehicleRepository,
	purchaseRepo procurement.PurchaseRepository,
	configRepo settings.ConfigurationRepository,
) *VehicleService {
	return &VehicleService{
		vehicleRepo:  vehicleRepo,
		purchaseRepo: purchaseRepo,
		configRepo:   configRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *VehicleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a vehicle against a purchase. Attaching the first
// vehicle locks the purchase pricing.
func (s *VehicleService) Create(ctx context.Context, req CreateVehicleRequest) (*VehicleResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, req.PurchaseID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.vehicleRepo.FindByVIN(ctx, req.VIN); err == nil && existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_VIN", "A vehicle with this VIN already exists")
	}

	vehicle, err := fleet.NewVehicle(
		req.VIN,
		req.Make,
		req.Model,
		req.Year,
		req.Color,
		req.EngineType,
		req.Specifications,
		req.PurchaseID,
	)
	if err != nil {
		return nil, err
	}

	if !purchase.Locked {
		purchase.Lock()
		if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
			return nil, err
		}
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, vehicle)

	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// ArriveAtCustoms moves an in-transit vehicle to the customs yard
func (s *VehicleService) ArriveAtCustoms(ctx context.Context, vehicleID uuid.UUID) (*VehicleResponse, error) {
	return s.mutate(ctx, vehicleID, func(v *fleet.Vehicle) error {
		return v.ArriveAtCustoms()
	})
}

// MarkAvailable releases a vehicle from customs into the sellable pool
func (s *VehicleService) MarkAvailable(ctx context.Context, vehicleID uuid.UUID) (*VehicleResponse, error) {
	return s.mutate(ctx, vehicleID, func(v *fleet.Vehicle) error {
		return v.MarkAvailable()
	})
}

// Reserve holds a vehicle for a trader. The hold duration falls back to
// the configured reservation window when omitted.
func (s *VehicleService) Reserve(ctx context.Context, vehicleID uuid.UUID, req ReserveVehicleRequest) (*VehicleResponse, error) {
	days := 0
	if req.Days != nil {
		days = *req.Days
	} else {
		config, err := s.configRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		days = config.Rates().ReservationDays
	}

	return s.mutate(ctx, vehicleID, func(v *fleet.Vehicle) error {
		return v.Reserve(req.TraderID, days)
	})
}

// Release lifts a reservation manually
func (s *VehicleService) Release(ctx context.Context, vehicleID uuid.UUID) (*VehicleResponse, error) {
	return s.mutate(ctx, vehicleID, func(v *fleet.Vehicle) error {
		return v.ReleaseReservation()
	})
}

// ReleaseExpired sweeps reservations whose hold window has passed and
// returns the number of vehicles released. Intended to run periodically.
func (s *VehicleService) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	vehicles, err := s.vehicleRepo.FindExpiredReservations(ctx, now)
	if err != nil {
		return 0, err
	}

	released := 0
	for i := range vehicles {
		vehicle := &vehicles[i]
		if err := vehicle.ExpireReservation(now); err != nil {
			continue
		}
		if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
			return released, err
		}
		s.publishEvents(ctx, vehicle)
		released++
	}

	return released, nil
}

// GetByID retrieves a vehicle by ID
func (s *VehicleService) GetByID(ctx context.Context, vehicleID uuid.UUID) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// GetByVIN retrieves a vehicle by its VIN
func (s *VehicleService) GetByVIN(ctx context.Context, vin string) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByVIN(ctx, vin)
	if err != nil {
		return nil, err
	}
	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// List retrieves vehicles with filtering and pagination
func (s *VehicleService) List(ctx context.Context, filter fleet.VehicleFilter) ([]VehicleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	vehicles, total, err := s.vehicleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToVehicleResponses(vehicles), total, nil
}

// LandedCost returns the fully landed acquisition cost of a vehicle,
// taken from its purchase
func (s *VehicleService) LandedCost(ctx context.Context, vehicleID uuid.UUID) (decimal.Decimal, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return decimal.Zero, err
	}

	purchase, err := s.purchaseRepo.FindByID(ctx, vehicle.PurchaseID)
	if err != nil {
		return decimal.Zero, err
	}

	return purchase.LandedCost(), nil
}

func (s *VehicleService) mutate(ctx context.Context, vehicleID uuid.UUID, op func(*fleet.Vehicle) error) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if err := op(vehicle); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, vehicle)

	response := ToVehicleResponse(vehicle)
	return &response, nil
}

func (s *VehicleService) publishEvents(ctx context.Context, vehicle *fleet.Vehicle) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range vehicle.GetDomainEvents() {
		// Event handling is async; a publish failure must not fail the
		// write that already happened.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	vehicle.ClearDomainEvents()
}
