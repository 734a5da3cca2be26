package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the user repository.
type Metrics struct {
	ApplicantsMerged        prometheus.Counter
	MergeDuration           prometheus.Histogram
	MembershipChanges       *prometheus.CounterVec
	ProgramsLookupDuration  prometheus.Histogram
	ProgramCacheResults     *prometheus.CounterVec
	QuestionValidationTotal *prometheus.CounterVec
}

// New registers the user repository metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ApplicantsMerged: f.NewCounter(prometheus.CounterOpts{
			Name: "uat_applicants_merged_total",
			Help: "Total number of applicant merges completed",
		}),
		MergeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "uat_merge_applicants_duration_seconds",
			Help:    "Duration of MergeApplicants including both reassignments",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		MembershipChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uat_ti_membership_changes_total",
			Help: "Trusted intermediary membership changes by action",
		}, []string{"action"}),
		ProgramsLookupDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "uat_programs_for_applicant_duration_seconds",
			Help:    "Duration of ProgramsForApplicant",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ProgramCacheResults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uat_program_cache_results_total",
			Help: "Active program cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		QuestionValidationTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uat_question_validation_total",
			Help: "Applicant question checks by question type and outcome",
		}, []string{"type", "outcome"}),
	}
}

func (m *Metrics) IncrementApplicantsMerged() {
	m.ApplicantsMerged.Inc()
}

// ObserveMerge records the duration of a merge. Call with time.Now() at the
// start of the operation.
func (m *Metrics) ObserveMerge(start time.Time) {
	m.MergeDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementMembershipChange(action string) {
	m.MembershipChanges.WithLabelValues(action).Inc()
}

func (m *Metrics) ObserveProgramsLookup(start time.Time) {
	m.ProgramsLookupDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementCacheResult(result string) {
	m.ProgramCacheResults.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementQuestionValidation(questionType string, hasErrors bool) {
	outcome := "valid"
	if hasErrors {
		outcome = "invalid"
	}
	m.QuestionValidationTotal.WithLabelValues(questionType, outcome).Inc()
}
