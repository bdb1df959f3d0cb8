package tracing

import (
	"os"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const honeycombEndpoint = "api.honeycomb.io:443"

var GlobalTracer = otel.Tracer("liftlog-backend")

// EndSpanWithErrCheck marks the span as failed when err is not nil, and ends it.
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	span.End()
}

// HoneycombSetup configures the OpenTelemetry SDK to export to honeycomb, and
// instruments the given redis client. The returned func flushes and shuts down
// the exporter; it is never nil.
func HoneycombSetup(enabled bool, serviceName string, rdb *redis.Client) (func(), error) {
	if rdb != nil {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	if !enabled {
		log.Debugln("honeycomb tracing disabled")
		return func() {}, nil
	}

	apiKey := os.Getenv("HONEYCOMB_API_KEY")
	if apiKey == "" {
		log.Warnln("honeycomb tracing enabled, but HONEYCOMB_API_KEY not set")
	}

	// enable multi-span attributes
	bsp := honeycomb.NewBaggageSpanProcessor()
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithExporterEndpoint(honeycombEndpoint),
		otelconfig.WithHeaders(map[string]string{
			"x-honeycomb-team": apiKey,
		}),
		otelconfig.WithSpanProcessor(bsp),
		otelconfig.WithMetricsEnabled(false),
	)
	if err != nil {
		return func() {}, err
	}

	log.Infof("honeycomb tracing set up for service [%s]", serviceName)
	return otelShutdown, nil
}
