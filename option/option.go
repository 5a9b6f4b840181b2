package option

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	//TagSqlx defines sqlx annotation
	TagSqlx = "sqlx"
)

//Option represents generic service option
type Option interface{}

//Options represents generic options
type Options []Option

//Tag represent a annotation tag name
type Tag string

//StagingTable represents staging table name pattern, ${Rand} is replaced with random hex
type StagingTable string

//Verify enables parsing assembled statement before execution
type Verify bool

//Timeout represents default command timeout
type Timeout time.Duration

//Tag returns annotation tag, default sqlx
func (o Options) Tag() string {
	for _, candidate := range o {
		if tagOpt, ok := candidate.(Tag); ok {
			return string(tagOpt)
		}
	}
	return TagSqlx
}

//Logger returns logger or nil
func (o Options) Logger() *slog.Logger {
	for _, candidate := range o {
		if logger, ok := candidate.(*slog.Logger); ok {
			return logger
		}
	}
	return nil
}

//Tracer returns tracer or nil
func (o Options) Tracer() trace.Tracer {
	for _, candidate := range o {
		if tracer, ok := candidate.(trace.Tracer); ok {
			return tracer
		}
	}
	return nil
}

//StagingTable returns staging table pattern
func (o Options) StagingTable() string {
	var pattern StagingTable
	Assign(o, &pattern)
	return string(pattern)
}

//Verify returns true if statement verification was requested
func (o Options) Verify() bool {
	var verify Verify
	Assign(o, &verify)
	return bool(verify)
}

//Timeout returns default command timeout
func (o Options) Timeout() time.Duration {
	var timeout Timeout
	Assign(o, &timeout)
	return time.Duration(timeout)
}
