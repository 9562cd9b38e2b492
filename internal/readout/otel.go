package readout

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/trokit/aerotro/internal/readout"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
