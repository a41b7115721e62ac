package settings

import (
	"context"
	"time"

	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SettingsService handles system configuration and the exchange rate
// history
type SettingsService struct {
	configRepo settings.ConfigurationRepository
	rateRepo   settings.ExchangeRateRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(
	configRepo settings.ConfigurationRepository,
	rateRepo settings.ExchangeRateRepository,
) *SettingsService {
	return &SettingsService{
		configRepo: configRepo,
		rateRepo:   rateRepo,
	}
}

// GetConfiguration returns the current system configuration
func (s *SettingsService) GetConfiguration(ctx context.Context) (*ConfigurationResponse, error) {
	config, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	response := ToConfigurationResponse(config)
	return &response, nil
}

// UpdateRates changes the system default rates
func (s *SettingsService) UpdateRates(ctx context.Context, req UpdateRatesRequest) (*ConfigurationResponse, error) {
	config, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	err = config.UpdateRates(req.VATRate, req.TariffRate, req.CommissionRate, req.ReservationDays, req.InvoiceDueDays)
	if err != nil {
		return nil, err
	}

	if err := s.configRepo.Save(ctx, config); err != nil {
		return nil, err
	}

	response := ToConfigurationResponse(config)
	return &response, nil
}

// UpdateCompanyInfo changes the company identity used on invoices
func (s *SettingsService) UpdateCompanyInfo(ctx context.Context, req UpdateCompanyInfoRequest) (*ConfigurationResponse, error) {
	config, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	err = config.UpdateCompanyInfo(req.CompanyName, req.CompanyTaxID, req.CompanyAddress, req.CompanyPhone, req.CompanyEmail)
	if err != nil {
		return nil, err
	}

	if err := s.configRepo.Save(ctx, config); err != nil {
		return nil, err
	}

	response := ToConfigurationResponse(config)
	return &response, nil
}

// RecordExchangeRate appends a dated quote to the rate history
func (s *SettingsService) RecordExchangeRate(ctx context.Context, req RecordExchangeRateRequest) (*ExchangeRateResponse, error) {
	quote, err := settings.NewExchangeRateQuote(
		valueobject.Currency(req.FromCurrency),
		valueobject.Currency(req.ToCurrency),
		req.Rate,
		req.EffectiveDate,
		req.Source,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.rateRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	response := ToExchangeRateResponse(quote)
	return &response, nil
}

// GetLatestRate returns the most recent quote for a pair effective on or
// before the given date
func (s *SettingsService) GetLatestRate(ctx context.Context, from, to string, asOf time.Time) (*ExchangeRateResponse, error) {
	quote, err := s.rateRepo.FindLatest(ctx, valueobject.Currency(from), valueobject.Currency(to), asOf)
	if err != nil {
		return nil, err
	}
	response := ToExchangeRateResponse(quote)
	return &response, nil
}

// ListRates retrieves the rate history with pagination
func (s *SettingsService) ListRates(ctx context.Context, filter shared.Filter) ([]ExchangeRateResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	quotes, total, err := s.rateRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToExchangeRateResponses(quotes), total, nil
}

// ConvertToDZD converts a foreign amount to dinars using the latest quote
// effective on or before asOf
func (s *SettingsService) ConvertToDZD(ctx context.Context, currency string, amount decimal.Decimal, asOf time.Time) (*ConversionResponse, error) {
	// Dinar amounts need no quote: the conversion is the identity.
	if valueobject.Currency(currency) == valueobject.DZD {
		return &ConversionResponse{
			FromCurrency:  currency,
			ToCurrency:    string(valueobject.DZD),
			Rate:          decimal.NewFromInt(1),
			EffectiveDate: asOf,
			Amount:        amount,
			Converted:     amount,
		}, nil
	}

	quote, err := s.rateRepo.FindLatest(ctx, valueobject.Currency(currency), valueobject.DZD, asOf)
	if err != nil {
		return nil, err
	}

	rate, err := quote.AsValueObject()
	if err != nil {
		return nil, err
	}

	money, err := valueobject.NewMoney(amount, valueobject.Currency(currency))
	if err != nil {
		return nil, err
	}

	converted, err := rate.Convert(money)
	if err != nil {
		return nil, err
	}

	return &ConversionResponse{
		FromCurrency:  currency,
		ToCurrency:    string(valueobject.DZD),
		Rate:          quote.Rate,
		EffectiveDate: quote.EffectiveDate,
		Amount:        amount,
		Converted:     converted.Amount(),
	}, nil
}
