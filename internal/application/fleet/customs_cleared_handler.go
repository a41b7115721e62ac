package fleet

import (
	"context"
	"fmt"

	"github.com/cartrade/backend/internal/domain/fleet"
	"github.com/cartrade/backend/internal/domain/procurement"
	"github.com/cartrade/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomsClearedHandler moves the vehicles of a purchase out of the
// customs yard once its declaration is cleared
type CustomsClearedHandler struct {
	logger      *zap.Logger
	vehicleRepo fleet.VehicleRepository
}

// NewCustomsClearedHandler creates a new handler for customs clearance events
func NewCustomsClearedHandler(logger *zap.Logger, vehicleRepo fleet.VehicleRepository) *CustomsClearedHandler {
	return &CustomsClearedHandler{
		logger:      logger,
		vehicleRepo: vehicleRepo,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CustomsClearedHandler) EventTypes() []string {
	return []string{"CustomsCleared"}
}

// Handle marks every at-customs vehicle of the cleared purchase as
// available. Vehicles still in transit are left alone; they clear
// individually when they arrive.
func (h *CustomsClearedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	cleared, ok := event.(*procurement.CustomsClearedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", "CustomsCleared"),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected CustomsCleared, got %s", event.EventType())
	}

	vehicles, err := h.vehicleRepo.FindByPurchaseID(ctx, cleared.PurchaseID)
	if err != nil {
		return fmt.Errorf("failed to load vehicles for purchase %s: %w", cleared.PurchaseID, err)
	}

	for i := range vehicles {
		vehicle := &vehicles[i]
		if vehicle.Status != fleet.VehicleStatusAtCustoms {
			continue
		}
		if err := vehicle.MarkAvailable(); err != nil {
			h.logger.Warn("failed to release vehicle from customs",
				zap.String("vehicle_id", vehicle.ID.String()),
				zap.String("vin", vehicle.VIN),
				zap.Error(err),
			)
			continue
		}
		if err := h.vehicleRepo.Save(ctx, vehicle); err != nil {
			return fmt.Errorf("failed to save vehicle %s: %w", vehicle.ID, err)
		}
		h.logger.Info("vehicle released from customs",
			zap.String("vehicle_id", vehicle.ID.String()),
			zap.String("vin", vehicle.VIN),
			zap.String("purchase_id", cleared.PurchaseID.String()),
		)
	}

	return nil
}
