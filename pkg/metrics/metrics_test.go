package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveDB(t *testing.T) {
	m := New("test", prometheus.NewRegistry())

	m.ObserveDB("doctors", "find", time.Now(), nil)
	m.ObserveDB("doctors", "find", time.Now(), errors.New("timeout"))
	m.ObserveDB("doctors", "find", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("doctors", "find", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("doctors", "find", "error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveDB("doctors", "find", time.Now(), nil)
		m.ObserveEvent("doctor.deleted", nil)
	})
}
