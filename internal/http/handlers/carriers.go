package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/logx"
)

// CarrierHandler serves the carrier catalog, carrier metrics and catalog reload.
type CarrierHandler struct {
	store   catalogStore
	metrics metricsProvider
	quotes  quoteInvalidator
	logger  logx.Logger
}

// NewCarrierHandler creates a new CarrierHandler. quotes may be nil.
func NewCarrierHandler(logger logx.Logger, store catalogStore, metrics metricsProvider, quotes quoteInvalidator) *CarrierHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &CarrierHandler{store: store, metrics: metrics, quotes: quotes, logger: logger}
}

// List handles GET /carriers.
// @Summary Каталог перевозчиков
// @Tags carriers
// @Produce json
// @Success 200 {object} carrierListResponse
// @Router /carriers [get]
func (h *CarrierHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, catalogToResponse(h.store.Current()))
}

// Metrics handles GET /carriers/{code}/metrics?route=55401-90210.
// @Summary Показатели перевозчика
// @Description Режим симуляции, значения детерминированы по перевозчику и маршруту
// @Tags carriers
// @Produce json
// @Param code path string true "Carrier code"
// @Param route query string false "Origin-destination, e.g. 55401-90210"
// @Success 200 {object} carrierMetricsResponse
// @Failure 404 {object} ErrorResponse "unknown carrier"
// @Failure 503 {object} ErrorResponse "carrier info unavailable"
// @Router /carriers/{code}/metrics [get]
func (h *CarrierHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
	if code == "" {
		writeAppError(h.logger, w, r, apperr.Validation("code", "must not be empty"))
		return
	}
	m, err := h.metrics.Metrics(r.Context(), code, strings.TrimSpace(r.URL.Query().Get("route")))
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, metricsToResponse(m))
}

// Reload handles POST /admin/catalog/reload. A failed reload keeps the previous catalog.
// @Summary Перечитать каталог
// @Tags admin
// @Produce json
// @Success 200 {object} reloadResponse
// @Failure 500 {object} ErrorResponse "catalog invalid, previous kept"
// @Router /admin/catalog/reload [post]
func (h *CarrierHandler) Reload(w http.ResponseWriter, r *http.Request) {
	prev := h.store.Current()
	next, err := h.store.Reload()
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}

	resp := reloadResponse{
		Version:  next.Version,
		Carriers: len(next.Carriers),
		Services: len(next.Services),
		Offers:   len(next.Offers),
	}
	if prev != nil {
		resp.PreviousVersion = prev.Version
	}
	if h.quotes != nil {
		n, err := h.quotes.InvalidateAll(r.Context())
		if err != nil {
			// ключи кэша содержат версию каталога, старые котировки просто истекут по TTL
			h.logger.Warn("quote cache invalidation failed", logx.Err(err))
		}
		resp.QuotesInvalidated = n
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}
