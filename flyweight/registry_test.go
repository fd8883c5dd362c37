package flyweight

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-flyweight/internal/telemetry"
)

func TestRegistry_GetOrCreate_SameFieldsSameRecord(t *testing.T) {
	r := NewRegistry()

	a, err := r.GetOrCreate("i5", "2024-01-01")
	require.NoError(t, err)
	b, err := r.GetOrCreate("i5", "2024-01-01")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []any{"i5", "2024-01-01"}, a.Fields())
	assert.Equal(t, "(i5, 2024-01-01)", a.String())
}

func TestRegistry_GetOrCreate_DistinctFields(t *testing.T) {
	r := NewRegistry()

	tuples := [][]any{
		{"i5", "2024-01-01"},
		{"i7", "2024-01-01"},
		{"i5", "2024-01-02"},
		{"i5"},
		{"i5::2024-01-01"},
		{1},
		{"1"},
		{int64(1)},
		{true},
		{1.5},
	}

	seen := make(map[*Intrinsic]int)
	for i, fields := range tuples {
		rec, err := r.GetOrCreate(fields...)
		require.NoError(t, err)
		if prev, ok := seen[rec]; ok {
			t.Fatalf("tuples %v and %v share a record", tuples[prev], fields)
		}
		seen[rec] = i
	}
	assert.Equal(t, len(tuples), r.Len())
}

func TestRegistry_GetOrCreate_RejectsNonPrimitive(t *testing.T) {
	r := NewRegistry()

	_, err := r.GetOrCreate("i5", []string{"x"})
	require.ErrorIs(t, err, ErrInvalidField)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_FieldsAreCopied(t *testing.T) {
	r := NewRegistry()
	fields := []any{"i5", "2024-01-01"}

	rec, err := r.GetOrCreate(fields...)
	require.NoError(t, err)

	fields[0] = "changed"
	out := rec.Fields()
	out[1] = "changed"

	assert.Equal(t, "i5", rec.Field(0))
	assert.Equal(t, "2024-01-01", rec.Field(1))
	assert.Equal(t, 2, rec.Len())
}

func TestRegistry_ConcurrentGetOrCreate(t *testing.T) {
	r := NewRegistry()

	const workers = 32
	records := make([]*Intrinsic, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := r.GetOrCreate("i9", "2025-06-01")
			assert.NoError(t, err)
			records[i] = rec
		}(i)
	}
	wg.Wait()

	for _, rec := range records[1:] {
		assert.Same(t, records[0], rec)
	}
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := telemetry.New(reg)
	require.NoError(t, err)

	r := NewRegistry(WithRegistryMetrics(m))
	for i := 0; i < 3; i++ {
		_, err := r.GetOrCreate("i5")
		require.NoError(t, err)
	}

	expected := `
# HELP flyweight_intrinsic_lookups_total Intrinsic record lookups by result (hit or miss).
# TYPE flyweight_intrinsic_lookups_total counter
flyweight_intrinsic_lookups_total{result="hit"} 2
flyweight_intrinsic_lookups_total{result="miss"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "flyweight_intrinsic_lookups_total"))
}
