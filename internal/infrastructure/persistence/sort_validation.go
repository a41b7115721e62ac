package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// PurchaseSortFields contains allowed sort fields for purchases
var PurchaseSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"purchase_number": true,
	"purchase_date":   true,
	"supplier_name":   true,
	"local_price":     true,
}

// VehicleSortFields contains allowed sort fields for vehicles
var VehicleSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"vin":        true,
	"make":       true,
	"model":      true,
	"year":       true,
	"status":     true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"sale_number": true,
	"sale_date":   true,
	"sale_price":  true,
	"margin":      true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"invoice_date":   true,
	"due_date":       true,
	"total_ttc":      true,
	"balance_due":    true,
	"status":         true,
}

// PaymentPlanSortFields contains allowed sort fields for payment plans
var PaymentPlanSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"start_date": true,
	"status":     true,
}

// TierSortFields contains allowed sort fields for commission tiers
var TierSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"min_sales_count": true,
	"commission_rate": true,
}

// PeriodSortFields contains allowed sort fields for commission periods
var PeriodSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"year":       true,
	"month":      true,
}

// SummarySortFields contains allowed sort fields for commission summaries
var SummarySortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"total_commission": true,
	"sales_count":      true,
	"payout_status":    true,
}

// ExchangeRateSortFields contains allowed sort fields for exchange rate quotes
var ExchangeRateSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"effective_date": true,
	"rate":           true,
}
