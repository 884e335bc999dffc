package handlers

import (
	"net/http"
	"strconv"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
)

// DeliveryHandler handles HTTP requests for delivery resources.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// Create handles POST /deliveries.
// @Summary Создать доставку
// @Tags deliveries
// @Accept json
// @Produce json
// @Param request body createDeliveryRequest true "Delivery payload"
// @Success 201 {object} deliveryDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 404 {object} ErrorResponse "zone not found or code outside the zone"
// @Router /deliveries [post]
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.Create(r.Context(), req.toModel())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/deliveries/"+strconv.FormatInt(d.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, deliveryToResponse(d))
}

// UpdateStatus handles PUT /deliveries/{id}/status.
// @Summary Сменить статус доставки
// @Tags deliveries
// @Accept json
// @Produce json
// @Param id path int true "Delivery ID"
// @Param request body updateStatusRequest true "Status payload"
// @Success 200 {object} statusChangeResponse
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Failure 409 {object} ErrorResponse "invalid status transition"
// @Router /deliveries/{id}/status [put]
func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	change, err := h.usecase.UpdateStatus(r.Context(), req.toModel(id))
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statusChangeResponse{
		Delivery: deliveryToResponse(change.Delivery),
		From:     string(change.From),
		At:       change.At,
	})
}

// GetByID handles GET /deliveries/{id}.
func (h *DeliveryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(d))
}

// List handles GET /deliveries.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	centerID, err := queryInt64(r, "center_id")
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	driverID, err := queryInt64(r, "driver_id")
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	f := domain.DeliveryFilter{
		CenterID: centerID,
		Status:   queryString[domain.DeliveryStatus](r, "status"),
		Type:     queryString[domain.ZoneType](r, "type"),
		DriverID: driverID,
	}

	list, stats, err := h.usecase.List(r.Context(), f)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list, stats))
}
