package load

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/loption"
	"github.com/viant/sqlmerge/product/sqlserver"
	sqlload "github.com/viant/sqlmerge/product/sqlserver/load"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const opStage = "stage"

//Loader represents bulk row transfer channel
type Loader interface {
	Load(ctx context.Context, preparer sqlload.Preparer, table string, columns []string, rowAt sqlload.RowAccessor, count int, options ...loption.Option) (int, error)
}

//Stager produces MERGE source relation
type Stager struct {
	transient *Transient
	loader    Loader
	logger    *slog.Logger
	tracer    trace.Tracer
}

//NewStager creates a stager, nil arguments fall back to defaults
func NewStager(loader Loader, transient *Transient, logger *slog.Logger, tracer trace.Tracer) *Stager {
	if loader == nil {
		loader = sqlload.New()
	}
	if transient == nil {
		transient = &Transient{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &Stager{transient: transient, loader: loader, logger: logger, tracer: tracer}
}

//Plan returns source relation for count rows without touching the database
func (s *Stager) Plan(target string, columns []string, rowAt sqlload.RowAccessor, count int) *Source {
	if count == 1 {
		return inlineSource(columns, rowAt(0))
	}
	table := s.transient.Table()
	ref := sqlserver.QuoteTable(table)
	return &Source{
		Ref:     ref,
		Columns: columns,
		Staged:  true,
		Table:   table,
		DDL:     stagingDDL(ref, target, columns),
	}
}

//Stage binds a single row inline, or creates staging table and transfers all rows into it.
//Returned source is non nil whenever staging table was created, so that caller can drop it.
func (s *Stager) Stage(ctx context.Context, querier io.Querier, target string, columns []string, rowAt sqlload.RowAccessor, count int, options ...loption.Option) (*Source, error) {
	source := s.Plan(target, columns, rowAt, count)
	if !source.Staged {
		return source, nil
	}
	ctx, span := s.tracer.Start(ctx, "sqlmerge.stage", trace.WithAttributes(
		attribute.String("db.system", sqlserver.Name),
		attribute.String("db.sql.table", target),
		attribute.String("sqlmerge.staging_table", source.Table),
		attribute.Int("sqlmerge.rows", count),
	))
	defer span.End()

	started := time.Now()
	if _, err := querier.ExecContext(ctx, source.DDL); err != nil {
		err = errx.Transfer(opStage, source.Table, errors.Wrap(err, "failed to create staging table"))
		recordError(span, err)
		return nil, err
	}
	loaded, err := s.loader.Load(ctx, querier, source.Table, columns, rowAt, count, options...)
	if err == nil && loaded != count {
		err = fmt.Errorf("expected %v rows, but loaded %v", count, loaded)
	}
	if err != nil {
		err = errx.Transfer(opStage, source.Table, err)
		recordError(span, err)
		return source, err
	}
	span.SetAttributes(attribute.Int("sqlmerge.loaded", loaded))
	s.logger.DebugContext(ctx, "staged merge source", "table", target, "staging", source.Table, "rows", loaded, "elapsed", time.Since(started))
	return source, nil
}

//Release drops staging table, failures are logged only
func (s *Stager) Release(ctx context.Context, querier io.Querier, source *Source) {
	if source == nil || !source.Staged {
		return
	}
	if err := source.Drop(ctx, querier); err != nil {
		s.logger.WarnContext(ctx, "failed to drop staging table", "staging", source.Table, "error", err)
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
