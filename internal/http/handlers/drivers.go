package handlers

import (
	"net/http"
	"strconv"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
)

// DriverHandler serves HTTP endpoints for driver resources.
type DriverHandler struct {
	usecase driverUsecase
	logger  logx.Logger
}

// NewDriverHandler wires a driverUsecase into HTTP handlers.
func NewDriverHandler(logger logx.Logger, uc driverUsecase) *DriverHandler {
	return &DriverHandler{usecase: uc, logger: logger}
}

// GetByID handles GET /drivers/{id}.
// @Summary Получить водителя
// @Tags drivers
// @Produce json
// @Param id path int true "Driver ID"
// @Success 200 {object} driverDTO
// @Failure 404 {object} ErrorResponse "driver not found"
// @Router /drivers/{id} [get]
func (h *DriverHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	d, err := h.usecase.Get(r.Context(), id)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverToResponse(*d))
}

// List handles GET /drivers.
// @Summary Список водителей со статистикой
// @Tags drivers
// @Produce json
// @Param center_id query int false "Distribution center"
// @Param status query string false "Driver status"
// @Param vehicle_type query string false "Vehicle type"
// @Success 200 {object} driverListResponse
// @Router /drivers [get]
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	centerID, err := queryInt64(r, "center_id")
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	f := domain.DriverFilter{
		CenterID:    centerID,
		Status:      queryString[domain.DriverStatus](r, "status"),
		VehicleType: queryString[domain.VehicleType](r, "vehicle_type"),
	}

	list, stats, err := h.usecase.List(r.Context(), f)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driversToResponse(list, stats))
}

// Create handles POST /drivers.
// @Summary Добавить водителя
// @Tags drivers
// @Accept json
// @Produce json
// @Param request body createDriverRequest true "Driver payload"
// @Success 201 {object} driverDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 409 {object} ErrorResponse "phone already registered"
// @Router /drivers [post]
func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDriverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d := req.toModel()
	if err := h.usecase.Create(r.Context(), d); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/drivers/"+strconv.FormatInt(d.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, driverToResponse(*d))
}

// UpdateStatus handles PUT /drivers/{id}/status.
// @Summary Сменить статус водителя
// @Tags drivers
// @Accept json
// @Produce json
// @Param id path int true "Driver ID"
// @Param request body driverStatusRequest true "Status and optional location"
// @Success 200 {object} driverDTO
// @Failure 404 {object} ErrorResponse "driver not found"
// @Router /drivers/{id}/status [put]
func (h *DriverHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req driverStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.UpdateStatus(r.Context(), req.toModel(id))
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverToResponse(d))
}
