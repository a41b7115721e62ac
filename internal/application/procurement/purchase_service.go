package procurement

import (
	"context"
	"time"

	"github.com/cartrade/backend/internal/domain/procurement"
	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseService handles supplier purchase business operations
type PurchaseService struct {
	purchaseRepo   procurement.PurchaseRepository
	rateRepo       settings.ExchangeRateRepository
	configRepo     settings.ConfigurationRepository
	eventPublisher shared.EventPublisher
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo procurement.PurchaseRepository,
	rateRepo settings.ExchangeRateRepository,
	configRepo settings.ConfigurationRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		rateRepo:     rateRepo,
		configRepo:   configRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PurchaseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create records a new supplier purchase. When no exchange rate is given
// the latest quote for the purchase currency effective on the purchase
// date is used.
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	currency := valueobject.Currency(req.Currency)

	rate, err := s.resolveRate(ctx, currency, req.ExchangeRate, req.PurchaseDate)
	if err != nil {
		return nil, err
	}

	purchase, err := procurement.NewPurchase(
		req.PurchaseNumber,
		req.PurchaseDate,
		req.SupplierID,
		req.SupplierName,
		req.FOBPrice,
		currency,
		rate,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, purchase)

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// UpdatePricing corrects the FOB price and exchange rate of an unlocked
// purchase
func (s *PurchaseService) UpdatePricing(ctx context.Context, purchaseID uuid.UUID, req UpdatePurchasePricingRequest) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if err := purchase.UpdatePricing(req.FOBPrice, req.ExchangeRate); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// RecordFreight attaches freight and logistics costs to a purchase
func (s *PurchaseService) RecordFreight(ctx context.Context, purchaseID uuid.UUID, req RecordFreightRequest) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	currency := valueobject.Currency(req.Currency)
	rate, err := s.resolveRate(ctx, currency, req.ExchangeRate, time.Now())
	if err != nil {
		return nil, err
	}

	err = purchase.RecordFreight(
		procurement.FreightMethod(req.Method),
		req.Cost,
		currency,
		rate,
		req.InsuranceCost,
		req.OtherLogisticsCosts,
	)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, purchase)

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// DeclareCustoms files the customs declaration for a purchase. Tariff and
// VAT rates fall back to the system configuration when omitted.
func (s *PurchaseService) DeclareCustoms(ctx context.Context, purchaseID uuid.UUID, req DeclareCustomsRequest) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	tariffRate := req.TariffRate
	vatRate := req.VATRate
	if tariffRate == nil || vatRate == nil {
		config, err := s.configRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		rates := config.Rates()
		if tariffRate == nil {
			tariffRate = &rates.TariffRate
		}
		if vatRate == nil {
			vatRate = &rates.VATRate
		}
	}

	err = purchase.DeclareCustoms(
		req.DeclarationNumber,
		req.DeclarationDate,
		*tariffRate,
		*vatRate,
		req.OtherFees,
	)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, purchase)

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// ClearCustoms marks the declaration cleared. The published event is what
// moves the purchased vehicles to available.
func (s *PurchaseService) ClearCustoms(ctx context.Context, purchaseID uuid.UUID, req ClearCustomsRequest) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if err := purchase.ClearCustoms(req.ClearanceDate); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, purchase)

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByID retrieves a purchase by ID
func (s *PurchaseService) GetByID(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByNumber retrieves a purchase by its purchase number
func (s *PurchaseService) GetByNumber(ctx context.Context, purchaseNumber string) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByNumber(ctx, purchaseNumber)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List retrieves purchases with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, filter procurement.PurchaseFilter) ([]PurchaseResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	purchases, total, err := s.purchaseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToPurchaseResponses(purchases), total, nil
}

// Delete removes a purchase that has no vehicles attached yet
func (s *PurchaseService) Delete(ctx context.Context, purchaseID uuid.UUID) error {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return err
	}

	if purchase.Locked {
		return shared.NewDomainError("PURCHASE_LOCKED", "Cannot delete a purchase with vehicles attached")
	}

	return s.purchaseRepo.Delete(ctx, purchaseID)
}

// resolveRate returns the explicit rate when given, 1 for DZD amounts,
// and otherwise the latest quote to DZD effective on or before asOf.
func (s *PurchaseService) resolveRate(ctx context.Context, currency valueobject.Currency, explicit *decimal.Decimal, asOf time.Time) (decimal.Decimal, error) {
	if explicit != nil {
		return *explicit, nil
	}
	if currency == valueobject.DZD {
		return decimal.NewFromInt(1), nil
	}

	quote, err := s.rateRepo.FindLatest(ctx, currency, valueobject.DZD, asOf)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("MISSING_EXCHANGE_RATE", "No exchange rate found for "+string(currency)+" and none was provided")
	}
	return quote.Rate, nil
}

func (s *PurchaseService) publishEvents(ctx context.Context, purchase *procurement.Purchase) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range purchase.GetDomainEvents() {
		// Event handling is async; a publish failure must not fail the
		// write that already happened.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	purchase.ClearDomainEvents()
}
