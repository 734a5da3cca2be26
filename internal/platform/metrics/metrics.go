package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Executor records worker pool measurements. It satisfies executor.Observer.
type Executor struct {
	QueueDepth   *prometheus.GaugeVec
	TaskWait     *prometheus.HistogramVec
	TaskDuration *prometheus.HistogramVec
}

// NewExecutor registers the pool metrics with reg.
func NewExecutor(reg prometheus.Registerer) *Executor {
	f := promauto.With(reg)
	return &Executor{
		QueueDepth: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "uat_executor_queue_depth",
			Help: "Tasks waiting for a worker",
		}, []string{"pool"}),
		TaskWait: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "uat_executor_task_wait_seconds",
			Help:    "Time a task spent queued before a worker picked it up",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"pool"}),
		TaskDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "uat_executor_task_duration_seconds",
			Help:    "Time a worker spent running a task",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"pool"}),
	}
}

func (m *Executor) ObserveQueueDepth(pool string, depth int) {
	m.QueueDepth.WithLabelValues(pool).Set(float64(depth))
}

func (m *Executor) ObserveTask(pool string, wait, run time.Duration) {
	m.TaskWait.WithLabelValues(pool).Observe(wait.Seconds())
	m.TaskDuration.WithLabelValues(pool).Observe(run.Seconds())
}
