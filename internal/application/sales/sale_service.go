package sales

import (
	"context"

	"github.com/cartrade/backend/internal/domain/fleet"
	"github.com/cartrade/backend/internal/domain/procurement"
	"github.com/cartrade/backend/internal/domain/sales"
	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleService handles sale business operations
type SaleService struct {
	saleRepo       sales.SaleRepository
	vehicleRepo    fleet.VehicleRepository
	purchaseRepo   procurement.PurchaseRepository
	configRepo     settings.ConfigurationRepository
	txManager      shared.TransactionManager
	eventPublisher shared.EventPublisher
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo sales.SaleRepository,
	vehicleRepo fleet.VehicleRepository,
	purchaseRepo procurement.PurchaseRepository,
	configRepo settings.ConfigurationRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		vehicleRepo:  vehicleRepo,
		purchaseRepo: purchaseRepo,
		configRepo:   configRepo,
		txManager:    shared.PassthroughTxManager{},
	}
}

// WithTransactionManager makes sale creation persist the sale and the
// vehicle in one storage transaction
func (s *SaleService) WithTransactionManager(txManager shared.TransactionManager) *SaleService {
	s.txManager = txManager
	return s
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create sells a vehicle. The landed cost is snapshotted from the
// vehicle's purchase and the vehicle is marked sold in the same operation.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	if !vehicle.Status.CanBeSold() {
		return nil, shared.NewDomainError("VEHICLE_NOT_SELLABLE", "Vehicle is not available for sale in status "+vehicle.Status.String())
	}

	purchase, err := s.purchaseRepo.FindByID(ctx, vehicle.PurchaseID)
	if err != nil {
		return nil, err
	}

	commissionRate := req.CommissionRate
	if commissionRate == nil {
		config, err := s.configRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		rate := config.Rates().BaseCommissionRate
		commissionRate = &rate
	}

	sale, err := sales.NewSale(
		req.SaleNumber,
		req.SaleDate,
		req.VehicleID,
		req.CustomerID,
		req.CustomerName,
		req.TraderID,
		req.SalePrice,
		sales.PaymentMethod(req.PaymentMethod),
		req.DownPayment,
		*commissionRate,
		purchase.LandedCost(),
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := vehicle.MarkSold(); err != nil {
		return nil, err
	}

	// The sale and the vehicle status flip commit together: a failed
	// vehicle write must not leave a sale against an available vehicle.
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.saleRepo.Save(txCtx, sale); err != nil {
			return err
		}
		return s.vehicleRepo.Save(txCtx, vehicle)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale)
	s.publishVehicleEvents(ctx, vehicle)

	response := ToSaleResponse(sale)
	return &response, nil
}

// UpdateTerms corrects the price, down payment or commission rate of a
// draft sale
func (s *SaleService) UpdateTerms(ctx context.Context, saleID uuid.UUID, req UpdateSaleTermsRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.UpdateTerms(req.SalePrice, req.DownPayment, req.CommissionRate); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Finalize freezes the sale so it can feed commission settlement
func (s *SaleService) Finalize(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.Finalize(); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByNumber retrieves a sale by its sale number
func (s *SaleService) GetByNumber(ctx context.Context, saleNumber string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByNumber(ctx, saleNumber)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, filter sales.SaleFilter) ([]SaleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, total, err := s.saleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToSaleResponses(items), total, nil
}

func (s *SaleService) publishEvents(ctx context.Context, sale *sales.Sale) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range sale.GetDomainEvents() {
		// Event handling is async; a publish failure must not fail the
		// write that already happened.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	sale.ClearDomainEvents()
}

func (s *SaleService) publishVehicleEvents(ctx context.Context, vehicle *fleet.Vehicle) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range vehicle.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	vehicle.ClearDomainEvents()
}
