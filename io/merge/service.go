package merge

import (
	"context"
	"database/sql"
	"reflect"
	"time"

	"github.com/viant/sqlmerge/io"
	ioconfig "github.com/viant/sqlmerge/io/config"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/io/load"
	"github.com/viant/sqlmerge/io/merge/config"
	"github.com/viant/sqlmerge/io/meta"
	"github.com/viant/sqlmerge/moption"
	"github.com/viant/sqlmerge/option"
	"github.com/viant/sqlmerge/product/sqlserver"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//Service represents SQL Server MERGE service
type Service struct {
	db     *sql.DB
	config *ioconfig.Config
	stager *load.Stager
}

//New creates instance of Service
func New(db *sql.DB, options ...option.Option) *Service {
	cfg := ioconfig.New(options...)
	return &Service{
		db:     db,
		config: cfg,
		stager: cfg.Stager(),
	}
}

//Upsert updates matched rows and inserts missing ones
func (s *Service) Upsert(ctx context.Context, records interface{}, options ...moption.Option) (int64, error) {
	return s.merge(ctx, opUpsert, records, upsertOptions(options))
}

//Merge runs MERGE with caller configured branches, branches without callback are omitted
func (s *Service) Merge(ctx context.Context, records interface{}, options ...moption.Option) (int64, error) {
	return s.merge(ctx, opMerge, records, moption.NewOptions(options...))
}

//Plan returns statement that Merge would execute, staged sources are described but not created
func (s *Service) Plan(ctx context.Context, records interface{}, options ...moption.Option) (*Statement, error) {
	opts := moption.NewOptions(options...)
	parts, err := s.prepare(opMerge, records, opts)
	if err != nil || parts == nil {
		return nil, err
	}
	statement := parts.build(s.stager.Plan(parts.typeMeta.TableName, parts.columns, parts.rowAt, parts.count))
	if s.config.Verify {
		if err = Verify(statement.Table, statement.SQL); err != nil {
			return nil, err
		}
	}
	return statement, nil
}

func upsertOptions(options []moption.Option) *moption.Options {
	opts := moption.NewOptions(options...)
	opts.Apply(
		moption.WithMatched(func(action *config.Action) { action.Update() }),
		moption.WithNotMatchedByTarget(func(action *config.Action) { action.Insert() }),
		moption.WithNotMatchedBySource(nil),
	)
	return opts
}

func (s *Service) merge(ctx context.Context, op string, records interface{}, opts *moption.Options) (int64, error) {
	parts, err := s.prepare(op, records, opts)
	if err != nil || parts == nil {
		return 0, err
	}
	table := parts.typeMeta.TableName
	ctx, span := s.config.Tracer.Start(ctx, "sqlmerge.merge", trace.WithAttributes(
		attribute.String("db.system", sqlserver.Name),
		attribute.String("db.sql.table", table),
		attribute.String("sqlmerge.op", op),
		attribute.Int("sqlmerge.rows", parts.count),
	))
	defer span.End()

	affected, err := s.run(ctx, parts, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", affected))
	return affected, nil
}

func (s *Service) run(ctx context.Context, parts *prepared, opts *moption.Options) (int64, error) {
	table := parts.typeMeta.TableName
	session, err := io.SessionFor(ctx, s.db, opts.GetTransaction(), opts.GetConn())
	if err != nil {
		return 0, errx.Execution(opMerge, table, err)
	}
	defer func() {
		if cErr := session.Close(); cErr != nil {
			s.config.Logger.WarnContext(ctx, "failed to release connection", "table", table, "error", cErr)
		}
	}()

	source, err := s.stager.Stage(ctx, session, table, parts.columns, parts.rowAt, parts.count, opts.GetLoadOptions()...)
	if source != nil {
		defer s.stager.Release(context.WithoutCancel(ctx), session, source)
	}
	if err != nil {
		return 0, err
	}
	statement := parts.build(source)
	if s.config.Verify {
		if err = Verify(table, statement.SQL); err != nil {
			return 0, err
		}
	}
	timeout := opts.GetTimeout()
	if timeout == 0 {
		timeout = s.config.Timeout
	}
	return s.exec(ctx, session, statement, timeout)
}

func (s *Service) exec(ctx context.Context, querier io.Querier, statement *Statement, timeout time.Duration) (int64, error) {
	ctx, span := s.config.Tracer.Start(ctx, "sqlmerge.exec", trace.WithAttributes(
		attribute.String("db.system", sqlserver.Name),
		attribute.String("db.sql.table", statement.Table),
		attribute.String("db.statement", statement.SQL),
	))
	defer span.End()
	started := time.Now()
	affected, err := io.Exec(ctx, querier, statement.SQL, statement.Args, timeout)
	if err != nil {
		err = errx.Fault(opMerge, statement.Table, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.config.Logger.DebugContext(ctx, "merge failed", "table", statement.Table, "SQL", statement.SQL, "error", err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", affected))
	s.config.Logger.DebugContext(ctx, "merged", "table", statement.Table, "rows", statement.Rows, "affected", affected, "staged", statement.Source.Staged, "elapsed", time.Since(started))
	return affected, nil
}

//prepare resolves everything that does not need the database, nil result means there is nothing to merge
func (s *Service) prepare(op string, records interface{}, opts *moption.Options) (*prepared, error) {
	if io.IsNil(records) {
		return nil, errx.Input(op, "records were nil")
	}
	if value := reflect.Indirect(reflect.ValueOf(records)); (value.Kind() == reflect.Slice || value.Kind() == reflect.Map) && value.IsNil() {
		return nil, errx.Input(op, "records were nil %v", value.Type())
	}
	valueAt, count, err := io.Values(records)
	if err != nil {
		return nil, errx.Input(op, "%v", err)
	}
	if count == 0 {
		return nil, nil
	}
	var recordType reflect.Type
	for i := 0; i < count; i++ {
		record := valueAt(i)
		if io.IsNil(record) {
			return nil, errx.Input(op, "record at %v was nil", i)
		}
		if i == 0 {
			recordType = reflect.TypeOf(record)
			continue
		}
		if reflect.TypeOf(record) != recordType {
			return nil, errx.Input(op, "record at %v has type %T, expected %v", i, record, recordType)
		}
	}
	typeMeta := opts.GetMeta()
	if typeMeta == nil {
		if typeMeta, err = meta.LookupWithTag(recordType, s.config.TagName); err != nil {
			return nil, err
		}
	}
	on, err := OnColumns(typeMeta, opts.GetKey())
	if err != nil {
		return nil, err
	}
	var branches = make([]string, 0, len(config.MatchResults))
	for _, result := range config.MatchResults {
		branch, err := formatBranch(result, typeMeta, opts.GetAction(result), on)
		if err != nil {
			return nil, err
		}
		if branch != "" {
			branches = append(branches, branch)
		}
	}
	if len(branches) == 0 {
		return nil, errx.Configuration(op, typeMeta.TableName, nil, "at least one branch action is required")
	}
	sourceProperties := typeMeta.Source(on)
	return &prepared{
		typeMeta: typeMeta,
		on:       on,
		branches: branches,
		source:   sourceProperties,
		columns:  columnNames(sourceProperties),
		rowAt: func(index int) []interface{} {
			return typeMeta.Values(valueAt(index), sourceProperties)
		},
		count: count,
	}, nil
}
