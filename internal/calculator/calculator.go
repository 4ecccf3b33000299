// Package calculator runs the calculations of a configuration against the
// loan, growth, solver and metrics engines and collects the results into
// reports.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/calcerr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Observer receives the outcome of every calculation.
type Observer interface {
	ObserveCalculation(calcType, status string, elapsed time.Duration)
}

// Option configures a Runner.
type Option func(*Runner)

// WithObserver reports every calculation to o.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		r.observer = o
	}
}

// WithSchedules includes full amortization schedules and yearly breakdowns
// in reports.
func WithSchedules(include bool) Option {
	return func(r *Runner) {
		r.includeSchedules = include
	}
}

// WithClock fixes the time used for calculations without a start date.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// Runner dispatches calculations by type.
type Runner struct {
	logger           *zap.Logger
	tracer           trace.Tracer
	observer         Observer
	includeSchedules bool
	now              func() time.Time
}

// NewRunner creates a runner. A nil logger disables logging.
func NewRunner(logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		logger: logger,
		tracer: otel.Tracer("github.com/iwvelando/finance-calculators/internal/calculator"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run computes every active calculation in conf. The first failing
// calculation stops the run and its error names the calculation.
func (r *Runner) Run(ctx context.Context, conf config.Configuration) ([]Report, error) {
	var reports []Report
	for _, calc := range conf.Calculations {
		if !calc.IsActive() {
			r.logger.Debug(fmt.Sprintf("skipping calculation %s because it is inactive", calc.Name),
				zap.String("op", "calculator.Run"),
			)
			continue
		}
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		report, err := r.Calculate(ctx, calc)
		if err != nil {
			return reports, fmt.Errorf("calculation %q (%s): %w", calc.Name, calc.Type, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Calculate computes a single calculation regardless of whether it is
// active.
func (r *Runner) Calculate(ctx context.Context, calc config.Calculation) (Report, error) {
	_, span := r.tracer.Start(ctx, "calculate "+calc.Type, trace.WithAttributes(
		attribute.String("calculation.name", calc.Name),
		attribute.String("calculation.type", calc.Type),
	))
	defer span.End()

	start := time.Now()
	report, err := r.dispatch(calc)
	elapsed := time.Since(start)

	status := calcerr.Kind(err)
	if r.observer != nil {
		r.observer.ObserveCalculation(calc.Type, status, elapsed)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		level := r.logger.Error
		if errors.Is(err, calcerr.ErrInvalidInput) {
			level = r.logger.Warn
		}
		level("calculation failed",
			zap.String("op", "calculator.Calculate"),
			zap.String("name", calc.Name),
			zap.String("type", calc.Type),
			zap.Error(err),
		)
		return Report{}, err
	}

	r.logger.Debug("calculation complete",
		zap.String("op", "calculator.Calculate"),
		zap.String("name", calc.Name),
		zap.String("type", calc.Type),
		zap.Duration("elapsed", elapsed),
	)

	report.Name = calc.Name
	report.Type = calc.Type
	if !r.includeSchedules {
		report.Schedule = nil
		report.Yearly = nil
		report.Depreciation = nil
	}
	return report, nil
}

func (r *Runner) dispatch(calc config.Calculation) (Report, error) {
	switch calc.Type {
	case config.TypeLoan:
		return r.loan(calc)
	case config.TypeMortgage:
		return r.mortgage(calc)
	case config.TypeFHA:
		return r.fha(calc)
	case config.TypeVA:
		return r.va(calc)
	case config.TypeRefinance:
		return r.refinance(calc)
	case config.TypeAPR:
		return apr(calc)
	case config.TypeInvestment:
		return r.investment(calc)
	case config.TypeGoal:
		return goal(calc)
	case config.TypeCAGR:
		return cagr(calc)
	case config.TypeIRR:
		return irr(calc)
	case config.TypeNPV:
		return npv(calc)
	case config.TypeRental:
		return r.rental(calc)
	case config.TypeCompound:
		return compound(calc)
	case config.TypeSimple:
		return simple(calc)
	case config.TypeROI:
		return roi(calc)
	case config.TypeCD:
		return cd(calc)
	default:
		return Report{}, calcerr.Invalid("unknown calculation type %q", calc.Type)
	}
}
