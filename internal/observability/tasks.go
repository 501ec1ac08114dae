package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TaskMetrics exposes Prometheus collectors for background tasks.
type TaskMetrics struct {
	runs     *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewTaskMetrics registers the task collectors against registerer, or the
// default registerer when nil.
func NewTaskMetrics(registerer prometheus.Registerer) *TaskMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_tasks_total",
		Help: "Background task executions partitioned by task type and status.",
	}, []string{"task", "status"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_tasks_failures_total",
		Help: "Failures observed for background tasks.",
	}, []string{"task"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobboard_task_duration_seconds",
		Help:    "Duration in seconds of background task executions.",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})
	registerer.MustRegister(runs, failures, duration)
	return &TaskMetrics{runs: runs, failures: failures, duration: duration}
}

// Tracker instruments a single task run.
type Tracker struct {
	metrics *TaskMetrics
	task    string
	start   time.Time
}

// Track starts a tracker for the given task type.
func (m *TaskMetrics) Track(task string) *Tracker {
	return &Tracker{metrics: m, task: task, start: time.Now()}
}

// End records duration and outcome, returning err untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil || t.task == "" {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
		t.metrics.failures.WithLabelValues(t.task).Inc()
	}
	t.metrics.runs.WithLabelValues(t.task, status).Inc()
	t.metrics.duration.WithLabelValues(t.task).Observe(time.Since(t.start).Seconds())
	return err
}
