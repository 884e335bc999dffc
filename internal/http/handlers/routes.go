package handlers

import (
	"net/http"
	"strconv"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
)

// RouteHandler serves route planning and progress.
type RouteHandler struct {
	usecase routeUsecase
	logger  logx.Logger
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(logger logx.Logger, uc routeUsecase) *RouteHandler {
	return &RouteHandler{usecase: uc, logger: logger}
}

// Optimize handles POST /routes/optimize.
// @Summary Построить маршрут
// @Description Стопы идут в порядке запроса, оптимизации порядка нет
// @Tags routes
// @Accept json
// @Produce json
// @Param request body optimizeRouteRequest true "Route plan"
// @Success 201 {object} routeDTO
// @Failure 404 {object} ErrorResponse "delivery or driver not found"
// @Failure 409 {object} ErrorResponse "delivery already routed or driver busy"
// @Router /routes/optimize [post]
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRouteRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	rt, err := h.usecase.OptimizeRoute(r.Context(), req.toModel())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/routes/"+strconv.FormatInt(rt.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, routeToResponse(rt))
}

// CompleteStop handles POST /routes/{id}/complete-stop.
// @Summary Закрыть текущую остановку
// @Description С полем stop повторный запрос на уже пройденную остановку вернет 409
// @Tags routes
// @Accept json
// @Produce json
// @Param id path int true "Route ID"
// @Param request body completeStopRequest false "Expected stop index"
// @Success 200 {object} routeDTO
// @Failure 404 {object} ErrorResponse "route not found"
// @Failure 409 {object} ErrorResponse "route completed or stop already passed"
// @Router /routes/{id}/complete-stop [post]
func (h *RouteHandler) CompleteStop(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req completeStopRequest
	if r.ContentLength != 0 {
		if ok := decodeJSON(h.logger, w, r, &req); !ok {
			return
		}
	}
	rt, err := h.usecase.CompleteStop(r.Context(), domain.StopCompletion{RouteID: id, Stop: req.Stop})
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, routeToResponse(rt))
}

// GetByID handles GET /routes/{id}.
func (h *RouteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	rt, err := h.usecase.Get(r.Context(), id)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, routeToResponse(rt))
}

// List handles GET /routes.
func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	driverID, err := queryInt64(r, "driver_id")
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	f := domain.RouteFilter{
		DriverID: driverID,
		Status:   queryString[domain.RouteStatus](r, "status"),
	}

	list, err := h.usecase.List(r.Context(), f)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, routesToResponse(list))
}
