// Package tracer Jaeger 链路追踪
package tracer

import (
	"io"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go/config"
)

// NewJaegerTracer creates a const-sampled Jaeger tracer reporting to
// agentHostPort and installs it as the opentracing global tracer, which
// the gorm tracing plugin reads.
// NewJaegerTracer 创建 Jaeger tracer 并设置为全局 tracer
func NewJaegerTracer(serviceName, agentHostPort string) (opentracing.Tracer, io.Closer, error) {
	cfg := &config.Configuration{
		ServiceName: serviceName,
		Sampler: &config.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &config.ReporterConfig{
			LogSpans:            false,
			BufferFlushInterval: time.Second,
			LocalAgentHostPort:  agentHostPort,
		},
	}
	t, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, nil, errors.Wrap(err, "jaeger tracer")
	}
	opentracing.SetGlobalTracer(t)
	return t, closer, nil
}
