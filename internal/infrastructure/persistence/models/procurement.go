package models

import (
	"time"

	"github.com/cartrade/backend/internal/domain/procurement"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseModel is the persistence model for the Purchase aggregate root.
type PurchaseModel struct {
	AggregateModel
	PurchaseNumber string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	PurchaseDate   time.Time                `gorm:"not null;index"`
	SupplierID     uuid.UUID                `gorm:"type:uuid;not null;index"`
	SupplierName   string                   `gorm:"type:varchar(200);not null"`
	FOBPrice       decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	Currency       valueobject.Currency     `gorm:"type:varchar(3);not null;default:'DZD'"`
	ExchangeRate   decimal.Decimal          `gorm:"type:decimal(18,6);not null;default:1"`
	LocalPrice     decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	Notes          string                   `gorm:"type:text"`
	Locked         bool                     `gorm:"not null;default:false"`
	Freight        *FreightCostModel        `gorm:"foreignKey:PurchaseID;references:ID"`
	Customs        *CustomsDeclarationModel `gorm:"foreignKey:PurchaseID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain Purchase entity.
func (m *PurchaseModel) ToDomain() *procurement.Purchase {
	purchase := &procurement.Purchase{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		PurchaseNumber: m.PurchaseNumber,
		PurchaseDate:   m.PurchaseDate,
		SupplierID:     m.SupplierID,
		SupplierName:   m.SupplierName,
		FOBPrice:       m.FOBPrice,
		Currency:       m.Currency,
		ExchangeRate:   m.ExchangeRate,
		LocalPrice:     m.LocalPrice,
		Notes:          m.Notes,
		Locked:         m.Locked,
	}
	if m.Freight != nil {
		purchase.Freight = m.Freight.ToDomain()
	}
	if m.Customs != nil {
		purchase.Customs = m.Customs.ToDomain()
	}
	return purchase
}

// PurchaseModelFromDomain creates a persistence model from a domain Purchase entity.
func PurchaseModelFromDomain(p *procurement.Purchase) *PurchaseModel {
	m := &PurchaseModel{
		PurchaseNumber: p.PurchaseNumber,
		PurchaseDate:   p.PurchaseDate,
		SupplierID:     p.SupplierID,
		SupplierName:   p.SupplierName,
		FOBPrice:       p.FOBPrice,
		Currency:       p.Currency,
		ExchangeRate:   p.ExchangeRate,
		LocalPrice:     p.LocalPrice,
		Notes:          p.Notes,
		Locked:         p.Locked,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	if p.Freight != nil {
		m.Freight = FreightCostModelFromDomain(p.Freight, p.ID)
	}
	if p.Customs != nil {
		m.Customs = CustomsDeclarationModelFromDomain(p.Customs, p.ID)
	}
	return m
}

// FreightCostModel is the persistence model for a purchase's freight cost record.
type FreightCostModel struct {
	BaseModel
	PurchaseID          uuid.UUID                 `gorm:"type:uuid;not null;uniqueIndex"`
	Method              procurement.FreightMethod `gorm:"type:varchar(10);not null"`
	Cost                decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	Currency            valueobject.Currency      `gorm:"type:varchar(3);not null;default:'DZD'"`
	ExchangeRate        decimal.Decimal           `gorm:"type:decimal(18,6);not null;default:1"`
	InsuranceCost       decimal.Decimal           `gorm:"type:decimal(18,2);not null;default:0"`
	OtherLogisticsCosts decimal.Decimal           `gorm:"type:decimal(18,2);not null;default:0"`
	Total               decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (FreightCostModel) TableName() string {
	return "freight_costs"
}

// ToDomain converts the persistence model to a domain FreightCost entity.
func (m *FreightCostModel) ToDomain() *procurement.FreightCost {
	return &procurement.FreightCost{
		BaseEntity:          m.BaseModel.ToDomain(),
		Method:              m.Method,
		Cost:                m.Cost,
		Currency:            m.Currency,
		ExchangeRate:        m.ExchangeRate,
		InsuranceCost:       m.InsuranceCost,
		OtherLogisticsCosts: m.OtherLogisticsCosts,
		Total:               m.Total,
	}
}

// FreightCostModelFromDomain creates a persistence model from a domain FreightCost entity.
func FreightCostModelFromDomain(f *procurement.FreightCost, purchaseID uuid.UUID) *FreightCostModel {
	m := &FreightCostModel{
		PurchaseID:          purchaseID,
		Method:              f.Method,
		Cost:                f.Cost,
		Currency:            f.Currency,
		ExchangeRate:        f.ExchangeRate,
		InsuranceCost:       f.InsuranceCost,
		OtherLogisticsCosts: f.OtherLogisticsCosts,
		Total:               f.Total,
	}
	m.FromDomainBaseEntity(f.BaseEntity)
	return m
}

// CustomsDeclarationModel is the persistence model for a purchase's customs declaration.
type CustomsDeclarationModel struct {
	BaseModel
	PurchaseID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	DeclarationNumber string          `gorm:"type:varchar(50);not null"`
	DeclarationDate   time.Time       `gorm:"not null"`
	CIFValue          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TariffRate        decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	ImportDuty        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	VATRate           decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	VATAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	OtherFees         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalCustomsCost  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Cleared           bool            `gorm:"not null;default:false;index"`
	ClearanceDate     *time.Time
	Notes             string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomsDeclarationModel) TableName() string {
	return "customs_declarations"
}

// ToDomain converts the persistence model to a domain CustomsDeclaration entity.
func (m *CustomsDeclarationModel) ToDomain() *procurement.CustomsDeclaration {
	return &procurement.CustomsDeclaration{
		BaseEntity:        m.BaseModel.ToDomain(),
		DeclarationNumber: m.DeclarationNumber,
		DeclarationDate:   m.DeclarationDate,
		CIFValue:          m.CIFValue,
		TariffRate:        m.TariffRate,
		ImportDuty:        m.ImportDuty,
		VATRate:           m.VATRate,
		VATAmount:         m.VATAmount,
		OtherFees:         m.OtherFees,
		TotalCustomsCost:  m.TotalCustomsCost,
		Cleared:           m.Cleared,
		ClearanceDate:     m.ClearanceDate,
		Notes:             m.Notes,
	}
}

// CustomsDeclarationModelFromDomain creates a persistence model from a domain CustomsDeclaration entity.
func CustomsDeclarationModelFromDomain(c *procurement.CustomsDeclaration, purchaseID uuid.UUID) *CustomsDeclarationModel {
	m := &CustomsDeclarationModel{
		PurchaseID:        purchaseID,
		DeclarationNumber: c.DeclarationNumber,
		DeclarationDate:   c.DeclarationDate,
		CIFValue:          c.CIFValue,
		TariffRate:        c.TariffRate,
		ImportDuty:        c.ImportDuty,
		VATRate:           c.VATRate,
		VATAmount:         c.VATAmount,
		OtherFees:         c.OtherFees,
		TotalCustomsCost:  c.TotalCustomsCost,
		Cleared:           c.Cleared,
		ClearanceDate:     c.ClearanceDate,
		Notes:             c.Notes,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
