package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestCounter cuenta todas las peticiones HTTP con labels.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// RequestDurationHistogram registra la duración de las peticiones en segundos.
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
)

// HTTPMetrics recolector de métricas HTTP para un servicio.
type HTTPMetrics struct {
	ServiceName string
	initialized bool
}

// NewHTTPMetrics crea el recolector y registra las métricas en el registry por defecto.
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	m := &HTTPMetrics{ServiceName: serviceName}
	m.register()
	return m
}

func (m *HTTPMetrics) register() {
	if !m.initialized {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDurationHistogram)
		m.initialized = true
	}
}

// Middleware devuelve un middleware Fiber que registra contador y duración por petición.
// Usa c.Route().Path para no explotar la cardinalidad con ids en la URL.
func (m *HTTPMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := c.Route().Path
		labels := []string{m.ServiceName, c.Method(), path, strconv.Itoa(status)}
		RequestCounter.WithLabelValues(labels...).Inc()
		RequestDurationHistogram.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}
