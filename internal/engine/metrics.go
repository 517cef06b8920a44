package engine

import (
	"context"
	"fmt"
	"time"

	"vicecity-server/internal/systems"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "vicecity-server/internal/engine"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics - счетчики симуляции. Используют глобальный MeterProvider (no-op, если не настроен).
type Metrics struct {
	frames       metric.Int64Counter
	stuck        metric.Int64Counter
	possession   metric.Int64Counter
	attacks      metric.Int64Counter
	stepDuration metric.Float64Histogram
}

func NewMetrics() (*Metrics, error) {
	m := meter()
	out := &Metrics{}

	var err error
	out.frames, err = m.Int64Counter(
		"sim.frames",
		metric.WithDescription("Total simulation steps"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	out.stuck, err = m.Int64Counter(
		"sim.stuck_recoveries",
		metric.WithDescription("Autonomous vehicles that reversed out of a stall"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stuck counter: %w", err)
	}

	out.possession, err = m.Int64Counter(
		"sim.possession.changes",
		metric.WithDescription("Vehicle enter/exit events"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating possession counter: %w", err)
	}

	out.attacks, err = m.Int64Counter(
		"sim.attack.pulses",
		metric.WithDescription("Attack pulses consumed by the simulation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating attack counter: %w", err)
	}

	out.stepDuration, err = m.Float64Histogram(
		"sim.step.duration",
		metric.WithDescription("Wall time spent in one simulation step"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating step histogram: %w", err)
	}

	return out, nil
}

// Observe записывает итог одного шага
func (m *Metrics) Observe(ctx context.Context, r StepReport, elapsed time.Duration) {
	m.frames.Add(ctx, 1)
	m.stepDuration.Record(ctx, float64(elapsed.Microseconds())/1000)

	if r.StuckRecoveries > 0 {
		m.stuck.Add(ctx, int64(r.StuckRecoveries))
	}
	if r.Possession != systems.PossessionNone {
		m.possession.Add(ctx, 1, metric.WithAttributes(attribute.String("change", r.Possession.String())))
	}
	if r.Attack {
		m.attacks.Add(ctx, 1)
	}
}

// RegisterSubscriberGauge публикует число подключенных клиентов
func (m *Metrics) RegisterSubscriberGauge(count func() int) error {
	mt := meter()
	gauge, err := mt.Int64ObservableGauge(
		"sim.subscribers",
		metric.WithDescription("Connected snapshot subscribers"),
	)
	if err != nil {
		return fmt.Errorf("creating subscriber gauge: %w", err)
	}

	_, err = mt.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			o.ObserveInt64(gauge, int64(count()))
			return nil
		},
		gauge,
	)
	if err != nil {
		return fmt.Errorf("registering subscriber callback: %w", err)
	}
	return nil
}
