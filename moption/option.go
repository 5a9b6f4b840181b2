package moption

import (
	"database/sql"
	"time"

	"github.com/viant/sqlmerge/io/merge/config"
	"github.com/viant/sqlmerge/io/meta"
	"github.com/viant/sqlmerge/loption"
)

type (
	//Options represents merge call options
	Options struct {
		tx                 *sql.Tx
		conn               *sql.Conn
		timeout            time.Duration
		key                config.KeyFn
		matched            config.ActionFn
		notMatchedByTarget config.ActionFn
		notMatchedBySource config.ActionFn
		loadOptions        []loption.Option
		meta               *meta.TypeMeta
	}

	//Option represents merge call option
	Option func(o *Options)
)

//NewOptions creates options
func NewOptions(options ...Option) *Options {
	ret := &Options{}
	ret.Apply(options...)
	return ret
}

//WithTransaction runs call within caller transaction, transaction is never committed nor rolled back
func WithTransaction(tx *sql.Tx) Option {
	return func(o *Options) {
		o.tx = tx
	}
}

//WithConn runs call on caller connection, connection is never closed
func WithConn(conn *sql.Conn) Option {
	return func(o *Options) {
		o.conn = conn
	}
}

//WithTimeout sets MERGE command timeout
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.timeout = timeout
	}
}

//WithKey overrides ON predicate columns
func WithKey(fn config.KeyFn) Option {
	return func(o *Options) {
		o.key = fn
	}
}

//WithKeyColumns overrides ON predicate columns
func WithKeyColumns(columns ...string) Option {
	return WithKey(func(key *config.Key) {
		key.Column(columns...)
	})
}

//WithMatched configures WHEN MATCHED branch
func WithMatched(fn config.ActionFn) Option {
	return func(o *Options) {
		o.matched = fn
	}
}

//WithNotMatchedByTarget configures WHEN NOT MATCHED BY TARGET branch
func WithNotMatchedByTarget(fn config.ActionFn) Option {
	return func(o *Options) {
		o.notMatchedByTarget = fn
	}
}

//WithNotMatchedBySource configures WHEN NOT MATCHED BY SOURCE branch
func WithNotMatchedBySource(fn config.ActionFn) Option {
	return func(o *Options) {
		o.notMatchedBySource = fn
	}
}

//WithLoadOptions passes bulk transfer options to the loader
func WithLoadOptions(loadOptionSlice []loption.Option) Option {
	return func(o *Options) {
		o.loadOptions = loadOptionSlice
	}
}

//WithMeta uses supplied type meta instead of reflecting records, required for map records
func WithMeta(typeMeta *meta.TypeMeta) Option {
	return func(o *Options) {
		o.meta = typeMeta
	}
}

func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
}

func (o *Options) GetTransaction() *sql.Tx {
	return o.tx
}

func (o *Options) GetConn() *sql.Conn {
	return o.conn
}

func (o *Options) GetTimeout() time.Duration {
	return o.timeout
}

func (o *Options) GetKey() config.KeyFn {
	return o.key
}

//GetAction returns branch action callback
func (o *Options) GetAction(result config.MatchResult) config.ActionFn {
	switch result {
	case config.Matched:
		return o.matched
	case config.NotMatchedBySource:
		return o.notMatchedBySource
	case config.NotMatchedByTarget:
		return o.notMatchedByTarget
	}
	return nil
}

func (o *Options) GetLoadOptions() []loption.Option {
	return o.loadOptions
}

func (o *Options) GetMeta() *meta.TypeMeta {
	return o.meta
}
