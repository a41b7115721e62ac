package billing

import (
	"context"
	"time"

	"github.com/cartrade/backend/internal/domain/billing"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InstallmentNotifier sends payment reminders for due installments.
// Implementations decide the channel.
type InstallmentNotifier interface {
	NotifyInstallmentDue(ctx context.Context, reminder InstallmentReminder) error
}

// InstallmentReminder carries the details of one overdue installment
type InstallmentReminder struct {
	PlanID            uuid.UUID `json:"plan_id"`
	InvoiceID         uuid.UUID `json:"invoice_id"`
	InstallmentNumber int       `json:"installment_number"`
	DueDate           time.Time `json:"due_date"`
	BalanceDue        string    `json:"balance_due"`
	DaysOverdue       int       `json:"days_overdue"`
}

// PaymentPlanService handles installment plan business operations
type PaymentPlanService struct {
	planRepo       billing.PaymentPlanRepository
	invoiceRepo    billing.InvoiceRepository
	notifier       InstallmentNotifier
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
}

// NewPaymentPlanService creates a new PaymentPlanService
func NewPaymentPlanService(
	planRepo billing.PaymentPlanRepository,
	invoiceRepo billing.InvoiceRepository,
	logger *zap.Logger,
) *PaymentPlanService {
	return &PaymentPlanService{
		planRepo:    planRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PaymentPlanService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// WithNotifier sets the notifier used for installment reminders
func (s *PaymentPlanService) WithNotifier(notifier InstallmentNotifier) *PaymentPlanService {
	s.notifier = notifier
	return s
}

// Create schedules installments for an invoice. The plan total is the
// invoice total; one invoice carries at most one plan.
func (s *PaymentPlanService) Create(ctx context.Context, req CreatePaymentPlanRequest) (*PaymentPlanResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.planRepo.FindByInvoiceID(ctx, req.InvoiceID); err == nil && existing != nil {
		return nil, shared.NewDomainError("PLAN_EXISTS", "Invoice "+invoice.InvoiceNumber+" already has a payment plan")
	}

	plan, err := billing.NewPaymentPlan(
		invoice.ID,
		invoice.TotalTTC,
		req.DownPayment,
		req.NumberOfInstallments,
		req.StartDate,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, plan)

	response := ToPaymentPlanResponse(plan)
	return &response, nil
}

// RecordInstallmentPayment applies a payment to one installment of a plan
func (s *PaymentPlanService) RecordInstallmentPayment(ctx context.Context, planID uuid.UUID, req RecordInstallmentRequest) (*PaymentPlanResponse, error) {
	return s.mutate(ctx, planID, func(plan *billing.PaymentPlan) error {
		return plan.RecordInstallmentPayment(req.InstallmentNumber, req.Amount, req.PaymentDate)
	})
}

// Complete closes a fully settled plan
func (s *PaymentPlanService) Complete(ctx context.Context, planID uuid.UUID) (*PaymentPlanResponse, error) {
	return s.mutate(ctx, planID, func(plan *billing.PaymentPlan) error {
		return plan.Complete()
	})
}

// MarkDefaulted flags a plan whose customer stopped paying
func (s *PaymentPlanService) MarkDefaulted(ctx context.Context, planID uuid.UUID) (*PaymentPlanResponse, error) {
	return s.mutate(ctx, planID, func(plan *billing.PaymentPlan) error {
		return plan.MarkDefaulted()
	})
}

// Cancel voids an active plan
func (s *PaymentPlanService) Cancel(ctx context.Context, planID uuid.UUID) (*PaymentPlanResponse, error) {
	return s.mutate(ctx, planID, func(plan *billing.PaymentPlan) error {
		return plan.Cancel()
	})
}

// GetByID retrieves a plan by ID
func (s *PaymentPlanService) GetByID(ctx context.Context, planID uuid.UUID) (*PaymentPlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentPlanResponse(plan)
	return &response, nil
}

// GetByInvoiceID retrieves the plan attached to an invoice
func (s *PaymentPlanService) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*PaymentPlanResponse, error) {
	plan, err := s.planRepo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentPlanResponse(plan)
	return &response, nil
}

// List retrieves plans with pagination
func (s *PaymentPlanService) List(ctx context.Context, filter shared.Filter) ([]PaymentPlanResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	plans, total, err := s.planRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToPaymentPlanResponses(plans), total, nil
}

// SendOverdueReminders notifies customers of overdue installments and
// returns the number of reminders sent. Intended to run daily.
func (s *PaymentPlanService) SendOverdueReminders(ctx context.Context, asOf time.Time) (int, error) {
	if s.notifier == nil {
		return 0, nil
	}

	plans, err := s.planRepo.FindWithOverdueInstallments(ctx, asOf)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range plans {
		plan := &plans[i]
		for _, inst := range plan.OverdueInstallments(asOf) {
			reminder := InstallmentReminder{
				PlanID:            plan.ID,
				InvoiceID:         plan.InvoiceID,
				InstallmentNumber: inst.InstallmentNumber,
				DueDate:           inst.DueDate,
				BalanceDue:        inst.BalanceDue.StringFixed(2),
				DaysOverdue:       inst.DaysOverdue(asOf),
			}
			if err := s.notifier.NotifyInstallmentDue(ctx, reminder); err != nil {
				s.logger.Warn("failed to send installment reminder",
					zap.String("plan_id", plan.ID.String()),
					zap.Int("installment", inst.InstallmentNumber),
					zap.Error(err),
				)
				continue
			}
			sent++
		}
	}

	return sent, nil
}

func (s *PaymentPlanService) mutate(ctx context.Context, planID uuid.UUID, op func(*billing.PaymentPlan) error) (*PaymentPlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	if err := op(plan); err != nil {
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, plan)

	response := ToPaymentPlanResponse(plan)
	return &response, nil
}

func (s *PaymentPlanService) publishEvents(ctx context.Context, plan *billing.PaymentPlan) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range plan.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	plan.ClearDomainEvents()
}
