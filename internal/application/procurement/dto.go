package procurement

import (
	"time"

	"github.com/cartrade/backend/internal/domain/procurement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest represents a request to record a supplier purchase
type CreatePurchaseRequest struct {
	PurchaseNumber string           `json:"purchase_number" binding:"required,min=1,max=50"`
	PurchaseDate   time.Time        `json:"purchase_date" binding:"required"`
	SupplierID     uuid.UUID        `json:"supplier_id" binding:"required"`
	SupplierName   string           `json:"supplier_name" binding:"required,min=1,max=200"`
	FOBPrice       decimal.Decimal  `json:"fob_price" binding:"required"`
	Currency       string           `json:"currency" binding:"required,min=3,max=3"`
	ExchangeRate   *decimal.Decimal `json:"exchange_rate"` // resolved from the rate history when omitted
	Notes          string           `json:"notes"`
}

// UpdatePurchasePricingRequest represents a pricing correction on an
// unlocked purchase
type UpdatePurchasePricingRequest struct {
	FOBPrice     decimal.Decimal `json:"fob_price" binding:"required"`
	ExchangeRate decimal.Decimal `json:"exchange_rate" binding:"required"`
}

// RecordFreightRequest represents a request to record freight costs
type RecordFreightRequest struct {
	Method              string           `json:"method" binding:"required,oneof=sea air"`
	Cost                decimal.Decimal  `json:"cost" binding:"required"`
	Currency            string           `json:"currency" binding:"required,min=3,max=3"`
	ExchangeRate        *decimal.Decimal `json:"exchange_rate"`
	InsuranceCost       decimal.Decimal  `json:"insurance_cost"`
	OtherLogisticsCosts decimal.Decimal  `json:"other_logistics_costs"`
}

// DeclareCustomsRequest represents a request to file a customs declaration
type DeclareCustomsRequest struct {
	DeclarationNumber string           `json:"declaration_number" binding:"required,min=1,max=50"`
	DeclarationDate   time.Time        `json:"declaration_date" binding:"required"`
	TariffRate        *decimal.Decimal `json:"tariff_rate"` // system default when omitted
	VATRate           *decimal.Decimal `json:"vat_rate"`    // system default when omitted
	OtherFees         decimal.Decimal  `json:"other_fees"`
}

// ClearCustomsRequest represents a request to clear a declaration
type ClearCustomsRequest struct {
	ClearanceDate time.Time `json:"clearance_date" binding:"required"`
}

// FreightResponse is the freight cost component of a purchase
type FreightResponse struct {
	Method              string          `json:"method"`
	Cost                decimal.Decimal `json:"cost"`
	Currency            string          `json:"currency"`
	ExchangeRate        decimal.Decimal `json:"exchange_rate"`
	LocalCost           decimal.Decimal `json:"local_cost"`
	InsuranceCost       decimal.Decimal `json:"insurance_cost"`
	OtherLogisticsCosts decimal.Decimal `json:"other_logistics_costs"`
	Total               decimal.Decimal `json:"total"`
}

// CustomsResponse is the customs declaration component of a purchase
type CustomsResponse struct {
	DeclarationNumber string          `json:"declaration_number"`
	DeclarationDate   time.Time       `json:"declaration_date"`
	CIFValue          decimal.Decimal `json:"cif_value"`
	TariffRate        decimal.Decimal `json:"tariff_rate"`
	ImportDuty        decimal.Decimal `json:"import_duty"`
	VATRate           decimal.Decimal `json:"vat_rate"`
	VATAmount         decimal.Decimal `json:"vat_amount"`
	OtherFees         decimal.Decimal `json:"other_fees"`
	TotalCustomsCost  decimal.Decimal `json:"total_customs_cost"`
	Cleared           bool            `json:"cleared"`
	ClearanceDate     *time.Time      `json:"clearance_date,omitempty"`
}

// PurchaseResponse is the API representation of a purchase with its
// landed-cost chain
type PurchaseResponse struct {
	ID             uuid.UUID        `json:"id"`
	PurchaseNumber string           `json:"purchase_number"`
	PurchaseDate   time.Time        `json:"purchase_date"`
	SupplierID     uuid.UUID        `json:"supplier_id"`
	SupplierName   string           `json:"supplier_name"`
	FOBPrice       decimal.Decimal  `json:"fob_price"`
	Currency       string           `json:"currency"`
	ExchangeRate   decimal.Decimal  `json:"exchange_rate"`
	LocalPrice     decimal.Decimal  `json:"local_price"`
	CIFValue       decimal.Decimal  `json:"cif_value"`
	LandedCost     decimal.Decimal  `json:"landed_cost"`
	Locked         bool             `json:"locked"`
	Notes          string           `json:"notes"`
	Freight        *FreightResponse `json:"freight,omitempty"`
	Customs        *CustomsResponse `json:"customs,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToPurchaseResponse converts a purchase aggregate to its API representation
func ToPurchaseResponse(p *procurement.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		PurchaseDate:   p.PurchaseDate,
		SupplierID:     p.SupplierID,
		SupplierName:   p.SupplierName,
		FOBPrice:       p.FOBPrice,
		Currency:       string(p.Currency),
		ExchangeRate:   p.ExchangeRate,
		LocalPrice:     p.LocalPrice,
		CIFValue:       p.CIFValue(),
		LandedCost:     p.LandedCost(),
		Locked:         p.Locked,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	if p.Freight != nil {
		resp.Freight = &FreightResponse{
			Method:              string(p.Freight.Method),
			Cost:                p.Freight.Cost,
			Currency:            string(p.Freight.Currency),
			ExchangeRate:        p.Freight.ExchangeRate,
			LocalCost:           p.Freight.LocalCost(),
			InsuranceCost:       p.Freight.InsuranceCost,
			OtherLogisticsCosts: p.Freight.OtherLogisticsCosts,
			Total:               p.Freight.Total,
		}
	}

	if p.Customs != nil {
		resp.Customs = &CustomsResponse{
			DeclarationNumber: p.Customs.DeclarationNumber,
			DeclarationDate:   p.Customs.DeclarationDate,
			CIFValue:          p.Customs.CIFValue,
			TariffRate:        p.Customs.TariffRate,
			ImportDuty:        p.Customs.ImportDuty,
			VATRate:           p.Customs.VATRate,
			VATAmount:         p.Customs.VATAmount,
			OtherFees:         p.Customs.OtherFees,
			TotalCustomsCost:  p.Customs.TotalCustomsCost,
			Cleared:           p.Customs.Cleared,
			ClearanceDate:     p.Customs.ClearanceDate,
		}
	}

	return resp
}

// ToPurchaseResponses converts a slice of purchases
func ToPurchaseResponses(purchases []procurement.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = ToPurchaseResponse(&purchases[i])
	}
	return responses
}
