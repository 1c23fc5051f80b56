package task

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/tsinghua-fib-lab/agentsociety-signal-sim/task"

// Telemetry 仿真步的OpenTelemetry指标
// 说明：使用全局MeterProvider，未配置导出器时为空操作
type Telemetry struct {
	steps      metric.Int64Counter
	departed   metric.Int64Counter
	queued     metric.Int64Histogram
	congestion metric.Float64Histogram
	commands   metric.Int64Counter
}

// NewTelemetry 创建指标
func NewTelemetry() (*Telemetry, error) {
	meter := otel.Meter(meterName)

	steps, err := meter.Int64Counter(
		"signal.sim.steps",
		metric.WithDescription("Number of simulated ticks"),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		return nil, err
	}

	departed, err := meter.Int64Counter(
		"signal.sim.vehicles.departed",
		metric.WithDescription("Vehicles that cleared the primary intersection"),
		metric.WithUnit("{vehicle}"),
	)
	if err != nil {
		return nil, err
	}

	queued, err := meter.Int64Histogram(
		"signal.sim.vehicles.queued",
		metric.WithDescription("Vehicles waiting at the primary intersection after each tick"),
		metric.WithUnit("{vehicle}"),
	)
	if err != nil {
		return nil, err
	}

	congestion, err := meter.Float64Histogram(
		"signal.sim.congestion",
		metric.WithDescription("Congestion index after each tick"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	commands, err := meter.Int64Counter(
		"signal.sim.commands",
		metric.WithDescription("Operator commands applied between ticks"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, err
	}

	return &Telemetry{
		steps:      steps,
		departed:   departed,
		queued:     queued,
		congestion: congestion,
		commands:   commands,
	}, nil
}

// recordStep 记录一步的结果，属性为控制状态与天气
func (t *Telemetry) recordStep(ctx context.Context, s Snapshot, departed int32) {
	attrs := metric.WithAttributes(
		attribute.String("status", string(s.Status)),
		attribute.String("weather", string(s.Weather)),
	)
	t.steps.Add(ctx, 1, attrs)
	t.departed.Add(ctx, int64(departed), attrs)
	t.queued.Record(ctx, int64(s.Queue.Total()), attrs)
	t.congestion.Record(ctx, s.Metrics.CongestionIndex, attrs)
}

// recordCommand 记录一条命令及其是否被接受
func (t *Telemetry) recordCommand(ctx context.Context, name string, err error) {
	t.commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command", name),
		attribute.Bool("error", err != nil),
	))
}
