// Package billing provides domain models for customer invoicing and payment collection.
//
// This package implements the billing bounded context, which is responsible for:
//   - Issuing invoices against finalized vehicle sales
//   - Recording, amending and unconfirming customer payments
//   - Scheduling installment plans and tracking overdue balances
//
// Key Aggregates:
//   - Invoice: A VAT-inclusive bill for one sale, with its payment history
//   - PaymentPlan: The installment schedule attached to one invoice
//
// The billing domain integrates with:
//   - Sales domain: Invoices are created from finalized sales
//   - Settings domain: VAT rate and payment terms default from system configuration
package billing
