package procurement

import (
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomsDuties is the result of a customs duty calculation
type CustomsDuties struct {
	ImportDuty       decimal.Decimal `json:"import_duty"`
	VATAmount        decimal.Decimal `json:"vat_amount"`
	TotalCustomsCost decimal.Decimal `json:"total_customs_cost"`
}

// ComputeDuties derives import duty and VAT from a CIF value:
// duty = CIF x tariff/100, VAT = (CIF + duty) x vat/100.
// Zero rates yield zero amounts without error.
func ComputeDuties(cifValue, tariffRate, vatRate, otherFees decimal.Decimal) (CustomsDuties, error) {
	if cifValue.IsNegative() {
		return CustomsDuties{}, shared.NewDomainError("INVALID_CIF_VALUE", "CIF value cannot be negative")
	}
	if !shared.ValidRate(tariffRate) {
		return CustomsDuties{}, shared.NewDomainError("INVALID_TARIFF_RATE", "Tariff rate must be between 0 and 100")
	}
	if !shared.ValidRate(vatRate) {
		return CustomsDuties{}, shared.NewDomainError("INVALID_VAT_RATE", "VAT rate must be between 0 and 100")
	}
	if otherFees.IsNegative() {
		return CustomsDuties{}, shared.NewDomainError("INVALID_OTHER_FEES", "Other fees cannot be negative")
	}

	hundred := decimal.NewFromInt(100)
	importDuty := cifValue.Mul(tariffRate).Div(hundred).Round(2)
	taxableBase := cifValue.Add(importDuty)
	vatAmount := taxableBase.Mul(vatRate).Div(hundred).Round(2)

	return CustomsDuties{
		ImportDuty:       importDuty,
		VATAmount:        vatAmount,
		TotalCustomsCost: importDuty.Add(vatAmount).Add(otherFees),
	}, nil
}

// CustomsDeclaration records the customs clearance of a purchase.
// Clearing is a one-way transition.
type CustomsDeclaration struct {
	shared.BaseEntity
	DeclarationNumber string
	DeclarationDate   time.Time
	CIFValue          decimal.Decimal
	TariffRate        decimal.Decimal
	ImportDuty        decimal.Decimal
	VATRate           decimal.Decimal
	VATAmount         decimal.Decimal
	OtherFees         decimal.Decimal
	TotalCustomsCost  decimal.Decimal
	Cleared           bool
	ClearanceDate     *time.Time
	Notes             string
}

// NewCustomsDeclaration creates a declaration with duties derived from the
// CIF value and the given rates.
func NewCustomsDeclaration(
	declarationNumber string,
	declarationDate time.Time,
	cifValue decimal.Decimal,
	tariffRate decimal.Decimal,
	vatRate decimal.Decimal,
	otherFees decimal.Decimal,
) (*CustomsDeclaration, error) {
	if declarationNumber == "" {
		return nil, shared.NewDomainError("INVALID_DECLARATION_NUMBER", "Declaration number cannot be empty")
	}

	duties, err := ComputeDuties(cifValue, tariffRate, vatRate, otherFees)
	if err != nil {
		return nil, err
	}

	return &CustomsDeclaration{
		BaseEntity:        shared.NewBaseEntity(),
		DeclarationNumber: declarationNumber,
		DeclarationDate:   declarationDate,
		CIFValue:          cifValue,
		TariffRate:        tariffRate.Round(2),
		ImportDuty:        duties.ImportDuty,
		VATRate:           vatRate.Round(2),
		VATAmount:         duties.VATAmount,
		OtherFees:         otherFees,
		TotalCustomsCost:  duties.TotalCustomsCost,
	}, nil
}

// Clear marks the declaration as cleared. The clearance date cannot be
// earlier than the declaration date, and clearing twice is rejected.
func (cd *CustomsDeclaration) Clear(clearanceDate time.Time) error {
	if cd.Cleared {
		return shared.NewDomainError("ALREADY_CLEARED", "Customs declaration has already been cleared")
	}
	if clearanceDate.Before(cd.DeclarationDate) {
		return shared.NewDomainError("INVALID_CLEARANCE_DATE", "Clearance date cannot be earlier than the declaration date")
	}

	cd.Cleared = true
	cd.ClearanceDate = &clearanceDate
	cd.Touch()

	return nil
}
