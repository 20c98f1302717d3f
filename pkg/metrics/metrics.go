// Package metrics expone los contadores Prometheus de la API y de los libros de stock y finanzas.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_http_requests_total",
		Help: "Total de peticiones HTTP",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "erp_http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	stockAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_stock_adjustments_total",
		Help: "Ajustes manuales de stock por operación",
	}, []string{"operation"})

	skippedItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_stock_skipped_items_total",
		Help: "Líneas de evento omitidas por producto inexistente",
	}, []string{"movement"})

	postings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_finance_postings_total",
		Help: "Transacciones generadas automáticamente por eventos",
	}, []string{"type"})

	eventTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_event_transitions_total",
		Help: "Cambios de estado de eventos con efecto en stock",
	}, []string{"effect"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_dashboard_cache_lookups_total",
		Help: "Consultas a la caché de métricas del dashboard",
	}, []string{"result"})
)

// ObserveHTTPRequest registra una petición HTTP.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveStockAdjustment cuenta un ajuste manual.
func ObserveStockAdjustment(operation string) {
	stockAdjustments.WithLabelValues(operation).Inc()
}

// ObserveSkippedItem cuenta una línea omitida (event_deduct, event_return).
func ObserveSkippedItem(movement string) {
	skippedItems.WithLabelValues(movement).Inc()
}

// ObservePosting cuenta una transacción automática (income, expense).
func ObservePosting(txType string) {
	postings.WithLabelValues(txType).Inc()
}

// ObserveEventTransition cuenta un efecto de stock disparado por un cambio de estado (deduct, return).
func ObserveEventTransition(effect string) {
	eventTransitions.WithLabelValues(effect).Inc()
}

// ObserveCache registra hit o miss de la caché del dashboard.
func ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(result).Inc()
}
