package handlers

import (
	"net/http"
	"strconv"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
)

// ZoneHandler serves zone coverage and zone administration.
type ZoneHandler struct {
	usecase zoneUsecase
	logger  logx.Logger
}

// NewZoneHandler creates a new ZoneHandler.
func NewZoneHandler(logger logx.Logger, uc zoneUsecase) *ZoneHandler {
	return &ZoneHandler{usecase: uc, logger: logger}
}

// CheckCoverage handles POST /zones/coverage-check.
// Without allow_fallback the slower tier is suggested for uncovered codes.
// @Summary Проверить покрытие индекса
// @Tags zones
// @Accept json
// @Produce json
// @Param request body coverageRequest true "Postal code and optional zone type"
// @Success 200 {object} coverageResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Router /zones/coverage-check [post]
func (h *ZoneHandler) CheckCoverage(w http.ResponseWriter, r *http.Request) {
	var req coverageRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	var zt *domain.ZoneType
	if req.DeliveryType != "" {
		t := domain.ZoneType(req.DeliveryType)
		zt = &t
	}
	allowFallback := req.AllowFallback == nil || *req.AllowFallback

	v, err := h.usecase.CheckCoverage(r.Context(), req.PostalCode, zt, allowFallback)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, verdictToResponse(v))
}

// List handles GET /zones.
// @Summary Список зон
// @Tags zones
// @Produce json
// @Param center_id query int false "Distribution center"
// @Param type query string false "Zone type"
// @Param active query bool false "Active flag"
// @Success 200 {object} zoneListResponse
// @Router /zones [get]
func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	centerID, err := queryInt64(r, "center_id")
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	active, err := queryBool(r, "active")
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	f := domain.ZoneFilter{
		CenterID: centerID,
		Type:     queryString[domain.ZoneType](r, "type"),
		Active:   active,
	}

	list, err := h.usecase.List(r.Context(), f)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, zonesToResponse(list))
}

// Create handles POST /zones.
// @Summary Создать зону
// @Tags zones
// @Accept json
// @Produce json
// @Param request body createZoneRequest true "Zone payload"
// @Success 201 {object} zoneDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Router /zones [post]
func (h *ZoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createZoneRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	z := req.toModel()
	if err := h.usecase.Create(r.Context(), z); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/zones/"+strconv.FormatInt(z.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, zoneToResponse(*z))
}
