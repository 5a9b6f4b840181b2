package option

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestOptions_Accessors(t *testing.T) {
	logger := slog.Default()
	tracer := noop.NewTracerProvider().Tracer("test")
	opts := Options{Tag("db"), StagingTable("#stage_${Rand}"), Verify(true), Timeout(5 * time.Second), logger, tracer}

	assert.EqualValues(t, "db", opts.Tag())
	assert.EqualValues(t, "#stage_${Rand}", opts.StagingTable())
	assert.True(t, opts.Verify())
	assert.EqualValues(t, 5*time.Second, opts.Timeout())
	assert.True(t, logger == opts.Logger())
	assert.NotNil(t, opts.Tracer())
}

func TestOptions_Defaults(t *testing.T) {
	var opts Options
	assert.EqualValues(t, TagSqlx, opts.Tag())
	assert.EqualValues(t, "", opts.StagingTable())
	assert.False(t, opts.Verify())
	assert.Nil(t, opts.Logger())
	assert.Nil(t, opts.Tracer())
}

func TestAssign(t *testing.T) {
	var tag Tag
	var verify Verify
	assigned := Assign(Options{nil, Tag("json"), 3}, &tag, &verify)
	assert.True(t, assigned)
	assert.EqualValues(t, "json", tag)
	assert.False(t, bool(verify))
	assert.False(t, Assign(nil, &tag))
}
