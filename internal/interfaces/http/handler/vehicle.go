package handler

import (
	fleetapp "github.com/cartrade/backend/internal/application/fleet"
	"github.com/cartrade/backend/internal/domain/fleet"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// VehicleHandler handles vehicle-related API endpoints
type VehicleHandler struct {
	BaseHandler
	vehicleService *fleetapp.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicleService *fleetapp.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// LandedCostResponse reports the per-unit landed cost of a vehicle
type LandedCostResponse struct {
	VehicleID  string          `json:"vehicle_id"`
	LandedCost decimal.Decimal `json:"landed_cost"`
}

// Create godoc
// @ID           createVehicle
// @Summary      Register an imported vehicle
// @Description  Register a vehicle under an existing purchase. New vehicles start in transit.
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        request body fleetapp.CreateVehicleRequest true "Vehicle registration request"
// @Success      201 {object} dto.Response{data=fleetapp.VehicleResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /vehicles [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	var req fleetapp.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, vehicle)
}

// GetByID godoc
// @ID           getVehicleById
// @Summary      Get vehicle by ID
// @Tags         vehicles
// @Produce      json
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleetapp.VehicleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /vehicles/{id} [get]
func (h *VehicleHandler) GetByID(c *gin.Context) {
	vehicleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID format")
		return
	}

	vehicle, err := h.vehicleService.GetByID(c.Request.Context(), vehicleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// GetByVIN godoc
// @ID           getVehicleByVin
// @Summary      Get vehicle by VIN
// @Tags         vehicles
// @Produce      json
// @Param        vin path string true "Vehicle Identification Number"
// @Success      200 {object} dto.Response{data=fleetapp.VehicleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /vehicles/vin/{vin} [get]
func (h *VehicleHandler) GetByVIN(c *gin.Context) {
	vin := c.Param("vin")
	if vin == "" {
		h.BadRequest(c, "VIN is required")
		return
	}

	vehicle, err := h.vehicleService.GetByVIN(c.Request.Context(), vin)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// List godoc
// @ID           listVehicles
// @Summary      List vehicles
// @Description  Retrieve a paginated list of vehicles with optional filtering
// @Tags         vehicles
// @Produce      json
// @Param        search query string false "Search term (VIN, make, model)"
// @Param        status query string false "Vehicle status" Enums(in_transit, at_customs, available, reserved, sold)
// @Param        make query string false "Vehicle make"
// @Param        purchase_id query string false "Purchase ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]fleetapp.VehicleResponse}
// @Failure      400 {object} dto.Response
// @Router       /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := fleet.VehicleFilter{
		Filter: toSharedFilter(listReq),
		Make:   c.Query("make"),
	}

	if raw := c.Query("status"); raw != "" {
		status := fleet.VehicleStatus(raw)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid vehicle status")
			return
		}
		filter.Status = &status
	}

	purchaseID, err := parseUUIDQuery(c, "purchase_id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}
	filter.PurchaseID = purchaseID

	vehicles, total, err := h.vehicleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, vehicles, total, listReq.Page, listReq.PageSize)
}

// ArriveAtCustoms godoc
// @ID           markVehicleAtCustoms
// @Summary      Mark a vehicle as arrived at customs
// @Tags         vehicles
// @Produce      json
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleetapp.VehicleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /vehicles/{id}/arrive [post]
func (h *VehicleHandler) ArriveAtCustoms(c *gin.Context) {
	vehicleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID format")
		return
	}

	vehicle, err := h.vehicleService.ArriveAtCustoms(c.Request.Context(), vehicleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// MarkAvailable godoc
// @ID           markVehicleAvailable
// @Summary      Mark a vehicle as available for sale
// @Tags         vehicles
// @Produce      json
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleetapp.VehicleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /vehicles/{id}/available [post]
func (h *VehicleHandler) MarkAvailable(c *gin.Context) {
	vehicleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID format")
		return
	}

	vehicle, err := h.vehicleService.MarkAvailable(c.Request.Context(), vehicleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// Reserve godoc
// @ID           reserveVehicle
// @Summary      Reserve a vehicle for a trader
// @Description  Hold an available vehicle for a trader. The hold expires after the requested number of days, or the configured default.
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        id path string true "Vehicle ID" format(uuid)
// @Param        request body fleetapp.ReserveVehicleRequest true "Reservation request"
// @Success      200 {object} dto.Response{data=fleetapp.VehicleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /vehicles/{id}/reserve [post]
func (h *VehicleHandler) Reserve(c *gin.Context) {
	vehicleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID format")
		return
	}

	var req fleetapp.ReserveVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vehicle, err := h.vehicleService.Reserve(c.Request.Context(), vehicleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// Release godoc
// @ID           releaseVehicle
// @Summary      Release a vehicle reservation
// @Tags         vehicles
// @Produce      json
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleetapp.VehicleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /vehicles/{id}/release [post]
func (h *VehicleHandler) Release(c *gin.Context) {
	vehicleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID format")
		return
	}

	vehicle, err := h.vehicleService.Release(c.Request.Context(), vehicleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// LandedCost godoc
// @ID           getVehicleLandedCost
// @Summary      Get the landed cost of a vehicle
// @Description  Returns the fully landed per-unit cost derived from the vehicle's purchase
// @Tags         vehicles
// @Produce      json
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {object} dto.Response{data=LandedCostResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /vehicles/{id}/landed-cost [get]
func (h *VehicleHandler) LandedCost(c *gin.Context) {
	vehicleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID format")
		return
	}

	cost, err := h.vehicleService.LandedCost(c.Request.Context(), vehicleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, LandedCostResponse{
		VehicleID:  vehicleID.String(),
		LandedCost: cost,
	})
}
