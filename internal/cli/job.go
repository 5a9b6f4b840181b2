package cli

import (
	"fmt"
	"strings"

	"github.com/viant/sqlmerge/io/merge/config"
	"github.com/viant/sqlmerge/io/meta"
	"github.com/viant/sqlmerge/loption"
	"github.com/viant/sqlmerge/moption"
	"github.com/viant/sqlmerge/option"
)

// Meta builds dynamic type meta for the configured table and columns.
func (c *Config) Meta() (*meta.TypeMeta, error) {
	if strings.TrimSpace(c.Table) == "" {
		return nil, fmt.Errorf("table is required")
	}
	if len(c.Columns) == 0 {
		return nil, fmt.Errorf("at least one column is required for table %v", c.Table)
	}
	var properties = make([]*meta.Property, 0, len(c.Columns))
	var seen = map[string]bool{}
	for i, column := range c.Columns {
		name := strings.TrimSpace(column.Name)
		if name == "" {
			return nil, fmt.Errorf("column at %v has no name", i)
		}
		if seen[strings.ToLower(name)] {
			return nil, fmt.Errorf("duplicate column %v", name)
		}
		seen[strings.ToLower(name)] = true
		if !isSupportedType(column.Type) {
			return nil, fmt.Errorf("column %v has unsupported type %v", name, column.Type)
		}
		var flags []meta.Flag
		if column.Key {
			flags = append(flags, meta.Key())
		}
		if column.ExplicitKey {
			flags = append(flags, meta.ExplicitKey())
		}
		if column.Computed {
			flags = append(flags, meta.Computed())
		}
		if column.Ignored {
			flags = append(flags, meta.Ignored())
		}
		properties = append(properties, meta.NewProperty(name, flags...))
	}
	return meta.New(c.Table, properties...), nil
}

// ServiceOptions returns merge service options.
func (c *Config) ServiceOptions() []option.Option {
	var result = []option.Option{option.Verify(c.Verify)}
	if c.StagingTable != "" {
		result = append(result, option.StagingTable(c.StagingTable))
	}
	if c.Timeout > 0 {
		result = append(result, option.Timeout(c.Timeout))
	}
	return result
}

// MergeOptions returns call options carrying meta, key override, branch actions and load options.
func (c *Config) MergeOptions(typeMeta *meta.TypeMeta) ([]moption.Option, error) {
	var result = []moption.Option{moption.WithMeta(typeMeta)}
	if len(c.Key) > 0 {
		result = append(result, moption.WithKeyColumns(c.Key...))
	}
	branches := []struct {
		result config.MatchResult
		branch BranchConfig
		with   func(fn config.ActionFn) moption.Option
	}{
		{config.Matched, c.Matched, moption.WithMatched},
		{config.NotMatchedBySource, c.NotMatchedBySource, moption.WithNotMatchedBySource},
		{config.NotMatchedByTarget, c.NotMatchedByTarget, moption.WithNotMatchedByTarget},
	}
	for _, item := range branches {
		actionFn, err := item.branch.ActionFn()
		if err != nil {
			return nil, fmt.Errorf("%v: %w", item.result, err)
		}
		if actionFn != nil {
			result = append(result, item.with(actionFn))
		}
	}
	if loadOptions := c.Load.Options(); len(loadOptions) > 0 {
		result = append(result, moption.WithLoadOptions(loadOptions))
	}
	return result, nil
}

// ActionFn returns branch callback, nil when branch is omitted
func (b BranchConfig) ActionFn() (config.ActionFn, error) {
	kind, err := config.ParseKind(b.Action)
	if err != nil {
		return nil, err
	}
	if kind == config.None {
		return nil, nil
	}
	columns := b.Columns
	when := b.When
	return func(action *config.Action) {
		switch kind {
		case config.Insert:
			action.Insert(columns...)
		case config.Update:
			action.Update(columns...)
		case config.Delete:
			action.Delete()
		}
		action.When(when)
	}, nil
}

// Options returns bulk load options
func (l BulkConfig) Options() []loption.Option {
	var result []loption.Option
	if l.Hint != "" {
		result = append(result, loption.WithHint(l.Hint))
	}
	if l.RowsPerBatch > 0 {
		result = append(result, loption.WithRowsPerBatch(l.RowsPerBatch))
	}
	return result
}
