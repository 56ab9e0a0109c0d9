// Package telemetry exposes business-level Prometheus metrics alongside
// the HTTP metrics collected by the middleware.
package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shopeasy/shopeasy/internal/domain"
	"github.com/shopeasy/shopeasy/internal/events"
)

// BusinessMetrics holds Prometheus metrics for order observability.
type BusinessMetrics struct {
	OrdersCreated       prometheus.Counter
	OrderValueCents     prometheus.Histogram
	OrderItemCount      prometheus.Histogram
	EventPublishFailed  prometheus.Counter
	EventPublishSuccess prometheus.Counter
}

// NewBusinessMetrics creates and registers all business metrics. A nil
// registerer uses the default registry.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "shopeasy"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	subsystem := "business"
	factory := promauto.With(reg)

	return &BusinessMetrics{
		OrdersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_created_total",
			Help:      "Total orders created through checkout",
		}),
		OrderValueCents: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_value_cents",
			Help:      "Order grand totals in cents",
			Buckets:   prometheus.ExponentialBuckets(500, 4, 8),
		}),
		OrderItemCount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_item_count",
			Help:      "Number of units per order",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		EventPublishSuccess: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_events_published_total",
			Help:      "Order events delivered to the broker",
		}),
		EventPublishFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_event_publish_failures_total",
			Help:      "Order events that could not be delivered",
		}),
	}
}

// instrumentedPublisher wraps an event publisher with order metrics.
type instrumentedPublisher struct {
	next    events.Publisher
	metrics *BusinessMetrics
}

// InstrumentPublisher decorates a publisher so every order created through
// checkout is counted, whether or not the broker delivery succeeds.
func InstrumentPublisher(next events.Publisher, metrics *BusinessMetrics) events.Publisher {
	return &instrumentedPublisher{next: next, metrics: metrics}
}

func (p *instrumentedPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	p.metrics.OrdersCreated.Inc()
	p.metrics.OrderValueCents.Observe(float64(order.TotalCents))

	var units int32
	for _, item := range order.Items {
		units += item.Quantity
	}
	p.metrics.OrderItemCount.Observe(float64(units))

	if err := p.next.PublishOrderCreated(ctx, order); err != nil {
		p.metrics.EventPublishFailed.Inc()
		return err
	}
	p.metrics.EventPublishSuccess.Inc()
	return nil
}

func (p *instrumentedPublisher) PublishOrderPaid(ctx context.Context, order *domain.Order) error {
	if err := p.next.PublishOrderPaid(ctx, order); err != nil {
		p.metrics.EventPublishFailed.Inc()
		return err
	}
	p.metrics.EventPublishSuccess.Inc()
	return nil
}

func (p *instrumentedPublisher) Close() error {
	return p.next.Close()
}
