package loption

type (
	//Options represents bulk transfer options
	Options struct {
		hint         string
		rowsPerBatch int
		notify       func(loaded int)
	}

	//Option represents bulk transfer option
	Option func(o *Options)
)

//NewOptions creates options
func NewOptions(options ...Option) *Options {
	ret := &Options{}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

//WithHint sets bulk copy hint, for sqlserver a JSON encoded mssql.BulkOptions i.e. {"KeepNulls":true,"Tablock":true}
func WithHint(hint string) Option {
	return func(o *Options) {
		o.hint = hint
	}
}

//WithRowsPerBatch sets number of rows sent before driver flushes a batch
func WithRowsPerBatch(rows int) Option {
	return func(o *Options) {
		o.rowsPerBatch = rows
	}
}

//WithNotify sets progress callback, invoked with total loaded rows after each batch
func WithNotify(fn func(loaded int)) Option {
	return func(o *Options) {
		o.notify = fn
	}
}

func (o *Options) GetHint() string {
	return o.hint
}

func (o *Options) GetRowsPerBatch() int {
	return o.rowsPerBatch
}

//Notify reports progress if callback was set
func (o *Options) Notify(loaded int) {
	if o.notify != nil {
		o.notify(loaded)
	}
}

//HasNotify returns true if progress callback was set
func (o *Options) HasNotify() bool {
	return o.notify != nil
}
