package models

import (
	"time"

	"github.com/cartrade/backend/internal/domain/billing"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	InvoiceDate   time.Time             `gorm:"not null;index"`
	DueDate       time.Time             `gorm:"not null;index"`
	SaleID        uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	CustomerName  string                `gorm:"type:varchar(200);not null"`
	SubtotalHT    decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	VATRate       decimal.Decimal       `gorm:"type:decimal(8,4);not null"`
	VATAmount     decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	TotalTTC      decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	AmountPaid    decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	BalanceDue    decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Notes         string                `gorm:"type:text"`
	Payments      []PaymentModel        `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	invoice := &billing.Invoice{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		InvoiceNumber: m.InvoiceNumber,
		InvoiceDate:   m.InvoiceDate,
		DueDate:       m.DueDate,
		SaleID:        m.SaleID,
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		SubtotalHT:    m.SubtotalHT,
		VATRate:       m.VATRate,
		VATAmount:     m.VATAmount,
		TotalTTC:      m.TotalTTC,
		AmountPaid:    m.AmountPaid,
		BalanceDue:    m.BalanceDue,
		Status:        m.Status,
		Notes:         m.Notes,
		Payments:      make([]billing.Payment, len(m.Payments)),
	}
	for i, payment := range m.Payments {
		invoice.Payments[i] = payment.ToDomain()
	}
	return invoice
}

// InvoiceModelFromDomain creates a persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		SaleID:        inv.SaleID,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		SubtotalHT:    inv.SubtotalHT,
		VATRate:       inv.VATRate,
		VATAmount:     inv.VATAmount,
		TotalTTC:      inv.TotalTTC,
		AmountPaid:    inv.AmountPaid,
		BalanceDue:    inv.BalanceDue,
		Status:        inv.Status,
		Notes:         inv.Notes,
		Payments:      make([]PaymentModel, len(inv.Payments)),
	}
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	for i, payment := range inv.Payments {
		m.Payments[i] = PaymentModelFromDomain(payment)
	}
	return m
}

// PaymentModel is the persistence model for a payment recorded against an invoice.
type PaymentModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key"`
	InvoiceID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	PaymentNumber string                `gorm:"type:varchar(50);not null"`
	PaymentDate   time.Time             `gorm:"not null"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Method        billing.PaymentMethod `gorm:"type:varchar(20);not null"`
	BankReference string                `gorm:"type:varchar(100)"`
	Notes         string                `gorm:"type:text"`
	IsConfirmed   bool                  `gorm:"not null;default:true"`
	CreatedAt     time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment value.
func (m *PaymentModel) ToDomain() billing.Payment {
	return billing.Payment{
		ID:            m.ID,
		InvoiceID:     m.InvoiceID,
		PaymentNumber: m.PaymentNumber,
		PaymentDate:   m.PaymentDate,
		Amount:        m.Amount,
		Method:        m.Method,
		BankReference: m.BankReference,
		Notes:         m.Notes,
		IsConfirmed:   m.IsConfirmed,
		CreatedAt:     m.CreatedAt,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment value.
func PaymentModelFromDomain(p billing.Payment) PaymentModel {
	return PaymentModel{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		PaymentNumber: p.PaymentNumber,
		PaymentDate:   p.PaymentDate,
		Amount:        p.Amount,
		Method:        p.Method,
		BankReference: p.BankReference,
		Notes:         p.Notes,
		IsConfirmed:   p.IsConfirmed,
		CreatedAt:     p.CreatedAt,
	}
}

// PaymentPlanModel is the persistence model for the PaymentPlan aggregate root.
type PaymentPlanModel struct {
	AggregateModel
	InvoiceID            uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex"`
	TotalAmount          decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	DownPayment          decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	RemainingAmount      decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	NumberOfInstallments int                `gorm:"not null"`
	InstallmentAmount    decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	StartDate            time.Time          `gorm:"not null"`
	Status               billing.PlanStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes                string             `gorm:"type:text"`
	Installments         []InstallmentModel `gorm:"foreignKey:PlanID;references:ID"`
}

// TableName returns the table name for GORM
func (PaymentPlanModel) TableName() string {
	return "payment_plans"
}

// ToDomain converts the persistence model to a domain PaymentPlan entity.
func (m *PaymentPlanModel) ToDomain() *billing.PaymentPlan {
	plan := &billing.PaymentPlan{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		InvoiceID:            m.InvoiceID,
		TotalAmount:          m.TotalAmount,
		DownPayment:          m.DownPayment,
		RemainingAmount:      m.RemainingAmount,
		NumberOfInstallments: m.NumberOfInstallments,
		InstallmentAmount:    m.InstallmentAmount,
		StartDate:            m.StartDate,
		Status:               m.Status,
		Notes:                m.Notes,
		Installments:         make([]billing.Installment, len(m.Installments)),
	}
	for i, inst := range m.Installments {
		plan.Installments[i] = inst.ToDomain()
	}
	return plan
}

// PaymentPlanModelFromDomain creates a persistence model from a domain PaymentPlan entity.
func PaymentPlanModelFromDomain(p *billing.PaymentPlan) *PaymentPlanModel {
	m := &PaymentPlanModel{
		InvoiceID:            p.InvoiceID,
		TotalAmount:          p.TotalAmount,
		DownPayment:          p.DownPayment,
		RemainingAmount:      p.RemainingAmount,
		NumberOfInstallments: p.NumberOfInstallments,
		InstallmentAmount:    p.InstallmentAmount,
		StartDate:            p.StartDate,
		Status:               p.Status,
		Notes:                p.Notes,
		Installments:         make([]InstallmentModel, len(p.Installments)),
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	for i, inst := range p.Installments {
		m.Installments[i] = InstallmentModelFromDomain(inst)
	}
	return m
}

// InstallmentModel is the persistence model for a payment plan installment.
type InstallmentModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	PlanID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	InstallmentNumber int             `gorm:"not null"`
	DueDate           time.Time       `gorm:"not null;index"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AmountPaid        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	BalanceDue        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentDate       *time.Time
	CreatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToDomain converts the persistence model to a domain Installment value.
func (m *InstallmentModel) ToDomain() billing.Installment {
	return billing.Installment{
		ID:                m.ID,
		PlanID:            m.PlanID,
		InstallmentNumber: m.InstallmentNumber,
		DueDate:           m.DueDate,
		Amount:            m.Amount,
		AmountPaid:        m.AmountPaid,
		BalanceDue:        m.BalanceDue,
		PaymentDate:       m.PaymentDate,
		CreatedAt:         m.CreatedAt,
	}
}

// InstallmentModelFromDomain creates a persistence model from a domain Installment value.
func InstallmentModelFromDomain(i billing.Installment) InstallmentModel {
	return InstallmentModel{
		ID:                i.ID,
		PlanID:            i.PlanID,
		InstallmentNumber: i.InstallmentNumber,
		DueDate:           i.DueDate,
		Amount:            i.Amount,
		AmountPaid:        i.AmountPaid,
		BalanceDue:        i.BalanceDue,
		PaymentDate:       i.PaymentDate,
		CreatedAt:         i.CreatedAt,
	}
}
