package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-client-go/log/zap"

	"github.com/ruachost/domainstack/internal/logger"
)

type JaegerConfig struct {
	ServiceName  string  `env:"JAEGER_SERVICE_NAME" envDefault:"domainstack"`
	Enabled      bool    `env:"JAEGER_ENABLED" envDefault:"true"`
	Endpoint     string  `env:"JAEGER_ENDPOINT"`
	AgentHost    string  `env:"JAEGER_AGENT_HOST" envDefault:"localhost"`
	AgentPort    string  `env:"JAEGER_AGENT_PORT" envDefault:"6831"`
	SamplerType  string  `env:"JAEGER_SAMPLER_TYPE" envDefault:"const"`
	SamplerParam float64 `env:"JAEGER_SAMPLER_PARAM" envDefault:"1"`
	LogSpans     bool    `env:"JAEGER_REPORTER_LOG_SPANS" envDefault:"false"`
}

func NewJaegerTracer(jaegerConfig *JaegerConfig, log logger.Logger) (opentracing.Tracer, io.Closer, error) {
	reporter := &config.ReporterConfig{
		LogSpans: jaegerConfig.LogSpans,
	}
	// Collector endpoint wins over the agent when both are configured
	if jaegerConfig.Endpoint != "" {
		reporter.CollectorEndpoint = jaegerConfig.Endpoint
	} else {
		reporter.LocalAgentHostPort = jaegerConfig.AgentHost + ":" + jaegerConfig.AgentPort
	}

	cfg := &config.Configuration{
		ServiceName: jaegerConfig.ServiceName,
		Disabled:    !jaegerConfig.Enabled,
		Sampler: &config.SamplerConfig{
			Type:  jaegerConfig.SamplerType,
			Param: jaegerConfig.SamplerParam,
		},
		Reporter: reporter,
	}

	return cfg.NewTracer(config.Logger(zap.NewLogger(log.Logger())))
}
