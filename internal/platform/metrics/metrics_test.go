package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"uat/pkg/platform/executor"
)

var _ executor.Observer = (*Executor)(nil)

func TestExecutorObserver(t *testing.T) {
	m := NewExecutor(prometheus.NewRegistry())

	m.ObserveQueueDepth("db", 3)
	m.ObserveTask("db", time.Millisecond, 2*time.Millisecond)
	m.ObserveTask("db", time.Millisecond, 2*time.Millisecond)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.QueueDepth.WithLabelValues("db")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TaskDuration))
}
