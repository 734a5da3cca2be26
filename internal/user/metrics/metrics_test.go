package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementApplicantsMerged()
	m.ObserveMerge(time.Now())
	m.IncrementMembershipChange("added")
	m.IncrementMembershipChange("added")
	m.IncrementMembershipChange("removed")
	m.IncrementCacheResult("hit")
	m.IncrementQuestionValidation("NUMBER", true)
	m.IncrementQuestionValidation("NUMBER", false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ApplicantsMerged))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.MembershipChanges.WithLabelValues("added")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.MembershipChanges.WithLabelValues("removed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ProgramCacheResults.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.QuestionValidationTotal.WithLabelValues("NUMBER", "invalid")))
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
