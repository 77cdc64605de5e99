package weather

import (
	"context"

	"go.uber.org/zap"
)

// Static always returns the same report.
type Static struct {
	Report Report
}

// DemoReport is the canned payload served when the upstream API is unavailable.
func DemoReport() Report {
	return Report{
		Temperature: 24,
		Condition:   "Sunny",
		Location:    DefaultCity,
		Icon:        "☀️",
	}
}

// NewStatic returns a source serving DemoReport.
func NewStatic() Static {
	return Static{Report: DemoReport()}
}

// Current implements Source.
func (s Static) Current(context.Context, string) (Report, error) {
	return s.Report, nil
}

type fallbackSource struct {
	primary  Source
	fallback Report
	logger   *zap.Logger
}

// WithFallback wraps primary so any error yields the demo report flagged with Demo and Error.
func WithFallback(primary Source, logger *zap.Logger) Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return fallbackSource{primary: primary, fallback: DemoReport(), logger: logger}
}

func (s fallbackSource) Current(ctx context.Context, city string) (Report, error) {
	if s.primary != nil {
		report, err := s.primary.Current(ctx, city)
		if err == nil {
			return report, nil
		}
		s.logger.Warn("weather source failed, serving demo data", zap.String("city", city), zap.Error(err))
		out := s.fallback
		out.Demo = true
		out.Error = err.Error()
		return out, nil
	}
	out := s.fallback
	out.Demo = true
	return out, nil
}
