package config

import (
	"log/slog"
	"time"

	"github.com/viant/sqlmerge/io/load"
	"github.com/viant/sqlmerge/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

//TracerName represents instrumentation scope name
const TracerName = "github.com/viant/sqlmerge"

//Config represents merge service config
type Config struct {
	TagName      string
	StagingTable string
	Verify       bool
	Timeout      time.Duration
	Logger       *slog.Logger
	Tracer       trace.Tracer
	Loader       load.Loader
}

//New creates a config
func New(options ...option.Option) *Config {
	ret := &Config{}
	ret.ApplyOption(options...)
	return ret
}

//ApplyOption applied config option, values not supplied are kept
func (c *Config) ApplyOption(options ...option.Option) {
	opts := option.Options(options)
	if tag := opts.Tag(); tag != option.TagSqlx || c.TagName == "" {
		c.TagName = tag
	}
	if pattern := opts.StagingTable(); pattern != "" {
		c.StagingTable = pattern
	}
	if opts.Verify() {
		c.Verify = true
	}
	if timeout := opts.Timeout(); timeout > 0 {
		c.Timeout = timeout
	}
	if logger := opts.Logger(); logger != nil {
		c.Logger = logger
	}
	if tracer := opts.Tracer(); tracer != nil {
		c.Tracer = tracer
	}
	var loader load.Loader
	if option.Assign(options, &loader) {
		c.Loader = loader
	}
	c.ensureLogger()
	c.ensureTracer()
}

//Stager returns stager configured with loader, staging table pattern and observability
func (c *Config) Stager() *load.Stager {
	return load.NewStager(c.Loader, &load.Transient{TableName: c.StagingTable}, c.Logger, c.Tracer)
}

func (c *Config) ensureLogger() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

func (c *Config) ensureTracer() {
	if c.Tracer == nil {
		c.Tracer = otel.Tracer(TracerName)
	}
}
