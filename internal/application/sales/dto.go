package sales

import (
	"time"

	"github.com/cartrade/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest represents a request to sell a vehicle
type CreateSaleRequest struct {
	SaleNumber     string           `json:"sale_number" binding:"required,min=1,max=50"`
	SaleDate       time.Time        `json:"sale_date" binding:"required"`
	VehicleID      uuid.UUID        `json:"vehicle_id" binding:"required"`
	CustomerID     uuid.UUID        `json:"customer_id" binding:"required"`
	CustomerName   string           `json:"customer_name" binding:"required,min=1,max=200"`
	TraderID       uuid.UUID        `json:"trader_id" binding:"required"`
	SalePrice      decimal.Decimal  `json:"sale_price" binding:"required"`
	PaymentMethod  string           `json:"payment_method" binding:"required,oneof=cash bank_transfer installment check"`
	DownPayment    decimal.Decimal  `json:"down_payment"`
	CommissionRate *decimal.Decimal `json:"commission_rate"` // system default when omitted
	Notes          string           `json:"notes"`
}

// UpdateSaleTermsRequest represents a correction to a draft sale
type UpdateSaleTermsRequest struct {
	SalePrice      decimal.Decimal `json:"sale_price" binding:"required"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	CommissionRate decimal.Decimal `json:"commission_rate" binding:"required"`
}

// SaleResponse is the API representation of a sale with its derived
// financials
type SaleResponse struct {
	ID               uuid.UUID       `json:"id"`
	SaleNumber       string          `json:"sale_number"`
	SaleDate         time.Time       `json:"sale_date"`
	VehicleID        uuid.UUID       `json:"vehicle_id"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	TraderID         uuid.UUID       `json:"trader_id"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	PaymentMethod    string          `json:"payment_method"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	LandedCost       decimal.Decimal `json:"landed_cost"`
	Margin           decimal.Decimal `json:"margin"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	IsFinalized      bool            `json:"is_finalized"`
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToSaleResponse converts a sale aggregate to its API representation
func ToSaleResponse(s *sales.Sale) SaleResponse {
	return SaleResponse{
		ID:               s.ID,
		SaleNumber:       s.SaleNumber,
		SaleDate:         s.SaleDate,
		VehicleID:        s.VehicleID,
		CustomerID:       s.CustomerID,
		CustomerName:     s.CustomerName,
		TraderID:         s.TraderID,
		SalePrice:        s.SalePrice,
		PaymentMethod:    s.PaymentMethod.String(),
		DownPayment:      s.DownPayment,
		RemainingBalance: s.RemainingBalance(),
		CommissionRate:   s.CommissionRate,
		LandedCost:       s.LandedCost,
		Margin:           s.Margin,
		MarginPercentage: s.MarginPercentage,
		CommissionAmount: s.CommissionAmount,
		IsFinalized:      s.IsFinalized,
		Notes:            s.Notes,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ToSaleResponses converts a slice of sales
func ToSaleResponses(items []sales.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(items))
	for i := range items {
		responses[i] = ToSaleResponse(&items[i])
	}
	return responses
}
