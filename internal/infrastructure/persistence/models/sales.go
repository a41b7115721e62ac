package models

import (
	"time"

	"github.com/cartrade/backend/internal/domain/sales"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	AggregateModel
	SaleNumber       string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SaleDate         time.Time           `gorm:"not null;index"`
	VehicleID        uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	CustomerName     string              `gorm:"type:varchar(200);not null"`
	TraderID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	SalePrice        decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaymentMethod    sales.PaymentMethod `gorm:"type:varchar(20);not null"`
	DownPayment      decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	CommissionRate   decimal.Decimal     `gorm:"type:decimal(8,4);not null"`
	LandedCost       decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Margin           decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	MarginPercentage decimal.Decimal     `gorm:"type:decimal(8,4);not null"`
	CommissionAmount decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	IsFinalized      bool                `gorm:"not null;default:false;index"`
	Notes            string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *sales.Sale {
	return &sales.Sale{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		SaleNumber:       m.SaleNumber,
		SaleDate:         m.SaleDate,
		VehicleID:        m.VehicleID,
		CustomerID:       m.CustomerID,
		CustomerName:     m.CustomerName,
		TraderID:         m.TraderID,
		SalePrice:        m.SalePrice,
		PaymentMethod:    m.PaymentMethod,
		DownPayment:      m.DownPayment,
		CommissionRate:   m.CommissionRate,
		LandedCost:       m.LandedCost,
		Margin:           m.Margin,
		MarginPercentage: m.MarginPercentage,
		CommissionAmount: m.CommissionAmount,
		IsFinalized:      m.IsFinalized,
		Notes:            m.Notes,
	}
}

// SaleModelFromDomain creates a persistence model from a domain Sale entity.
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{
		SaleNumber:       s.SaleNumber,
		SaleDate:         s.SaleDate,
		VehicleID:        s.VehicleID,
		CustomerID:       s.CustomerID,
		CustomerName:     s.CustomerName,
		TraderID:         s.TraderID,
		SalePrice:        s.SalePrice,
		PaymentMethod:    s.PaymentMethod,
		DownPayment:      s.DownPayment,
		CommissionRate:   s.CommissionRate,
		LandedCost:       s.LandedCost,
		Margin:           s.Margin,
		MarginPercentage: s.MarginPercentage,
		CommissionAmount: s.CommissionAmount,
		IsFinalized:      s.IsFinalized,
		Notes:            s.Notes,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}
