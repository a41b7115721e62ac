package billing

import (
	"context"

	"go.uber.org/zap"
)

// LoggingInstallmentNotifier is a simple notifier that logs reminders
// This is useful for development and testing
type LoggingInstallmentNotifier struct {
	logger *zap.Logger
}

// NewLoggingInstallmentNotifier creates a new logging notifier
func NewLoggingInstallmentNotifier(logger *zap.Logger) *LoggingInstallmentNotifier {
	return &LoggingInstallmentNotifier{
		logger: logger,
	}
}

// NotifyInstallmentDue logs the installment reminder
func (n *LoggingInstallmentNotifier) NotifyInstallmentDue(ctx context.Context, reminder InstallmentReminder) error {
	n.logger.Warn("INSTALLMENT OVERDUE",
		zap.String("plan_id", reminder.PlanID.String()),
		zap.String("invoice_id", reminder.InvoiceID.String()),
		zap.Int("installment_number", reminder.InstallmentNumber),
		zap.Time("due_date", reminder.DueDate),
		zap.String("balance_due", reminder.BalanceDue),
		zap.Int("days_overdue", reminder.DaysOverdue),
	)
	return nil
}

// Ensure LoggingInstallmentNotifier implements InstallmentNotifier
var _ InstallmentNotifier = (*LoggingInstallmentNotifier)(nil)
