package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de negocio expuestos en /metrics
var (
	SalesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_created_total",
		Help: "Cantidad de ventas creadas",
	})

	SalesDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_delivered_total",
		Help: "Cantidad de ventas con entrega confirmada",
	})

	SalesCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_cancelled_total",
		Help: "Cantidad de ventas canceladas",
	})

	StockReservationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_reservation_failures_total",
		Help: "Reservas de stock rechazadas por falta de disponibilidad",
	})
)
