package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sz10101/vym/pkg/adapters/memory"
	"github.com/sz10101/vym/pkg/observability"
	"github.com/sz10101/vym/pkg/script"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	m := script.NewMap(memory.NewModel(), script.WithObserver(metrics), script.WithScriptContext(&script.Errors{}))
	m.AddBranch()
	m.Select("mc:0")
	m.AddBranch()
	m.Call(context.Background(), "removeSlide", 3)

	expected := `
# HELP vym_script_errors_total Total number of errors raised into scripts
# TYPE vym_script_errors_total counter
vym_script_errors_total{facade="map",kind="RangeError",op="removeSlide"} 1
vym_script_errors_total{facade="map",kind="ReferenceError",op="addBranch"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "vym_script_errors_total"))

	count, err := testutil.GatherAndCount(reg, "vym_script_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "one series per facade and op")

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err, "collectors register once per registry")
}

func TestLoggerAndMulti(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var seen int
	obs := observability.Multi(
		observability.NewLogger(logger),
		nil,
		script.ObserverFunc(func(script.CallEvent) { seen++ }),
	)
	m := script.NewMap(memory.NewModel(), script.WithObserver(obs))

	m.Nop()
	m.AddBranch()

	assert.Equal(t, 2, seen)
	out := buf.String()
	assert.Contains(t, out, `msg="script call" facade=map op=nop`)
	assert.Contains(t, out, `msg="script call failed" facade=map op=addBranch`)
	assert.Contains(t, out, `kind=ReferenceError`)
}
