package observability_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	b := dsl.New().
		States("q0", "qa", "qr").
		Sigma("1").Gamma("1_").Blank('_').
		Start("q0").Accept("qa").Reject("qr")
	b.On("q0", '1').Right("q0", '1')
	b.On("q0", '_').Right("qa", '_')

	var halts int
	counting := domain.LifecycleHooks{
		OnHalt: func(context.Context, *domain.RunEvent) { halts++ },
	}
	eng, err := turing.FromDefinition(b.MustBuild(), "",
		turing.WithLifecycleHooks(observability.Chain(m.Hooks(), counting)),
		turing.WithMaxSteps(2),
	)
	require.NoError(t, err)

	for _, input := range []string{"1", "11", "111"} {
		_, err := eng.Simulate(context.Background(), input)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, halts)
	// "1" accepts on its second step; the budget of 2 cuts "11" and "111".
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("accepted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Runs.WithLabelValues("truncated")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.Steps))

	expected := `
# HELP turing_steps_total Total number of transitions applied
# TYPE turing_steps_total counter
turing_steps_total 6
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "turing_steps_total"))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}
