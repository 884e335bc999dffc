package handlers

import (
	"net/http"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
)

// ShippingHandler serves shipping quotes.
type ShippingHandler struct {
	rates  shippingUsecase
	batch  batchUsecase
	logger logx.Logger
}

// NewShippingHandler creates a new ShippingHandler.
func NewShippingHandler(logger logx.Logger, rates shippingUsecase, batch batchUsecase) *ShippingHandler {
	return &ShippingHandler{rates: rates, batch: batch, logger: logger}
}

// Rate handles POST /shipping/rate.
// @Summary Рассчитать варианты доставки
// @Tags shipping
// @Accept json
// @Produce json
// @Param request body rateRequest true "Order to rate"
// @Success 200 {object} rateResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Router /shipping/rate [post]
func (h *ShippingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	q := req.toModel()
	res, err := h.rates.RateOptimalShipping(r.Context(), q.Order, q.Urgency, q.Criterion)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, resultToResponse(res))
}

// Analyze handles POST /shipping/analyze.
// @Summary Пакетный анализ заказов
// @Tags shipping
// @Accept json
// @Produce json
// @Param request body analyzeRequest true "Orders to analyze"
// @Success 200 {object} analyzeResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Router /shipping/analyze [post]
func (h *ShippingHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	orders := make([]domain.BatchOrder, 0, len(req.Orders))
	for _, o := range req.Orders {
		orders = append(orders, o.toModel())
	}
	res, err := h.batch.AnalyzeBatch(r.Context(), orders)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, batchToResponse(res))
}
