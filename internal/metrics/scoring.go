package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonathan/resume-agent/internal/scoring"
	"github.com/jonathan/resume-agent/internal/types"
)

var (
	atsScore = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ats_score",
			Help:      "Distribution of ATS scores, by scoring component",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"component"},
	)

	sectionGapsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "section_gaps_total",
			Help:      "Required résumé sections reported missing",
		},
		[]string{"section"},
	)

	enhancementChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enhancement_changes_total",
			Help:      "Changes applied by résumé enhancement",
		},
		[]string{"change"},
	)
)

func init() {
	prometheus.MustRegister(atsScore)
	prometheus.MustRegister(sectionGapsTotal)
	prometheus.MustRegister(enhancementChangesTotal)
}

// ObserveScore records a scoring result.
func ObserveScore(result *types.ScoreResult) {
	if result == nil {
		return
	}

	atsScore.WithLabelValues("total").Observe(float64(result.Score))
	atsScore.WithLabelValues("keyword").Observe(float64(result.Breakdown.Keyword))
	atsScore.WithLabelValues("section").Observe(float64(result.Breakdown.Section))
	atsScore.WithLabelValues("quality").Observe(float64(result.Breakdown.Quality))

	for _, gap := range result.Gaps {
		if section, ok := scoring.GapSection(gap); ok {
			sectionGapsTotal.WithLabelValues(section).Inc()
		}
	}
}

// ObserveEnhancement records the changes applied by one enhancement.
func ObserveEnhancement(changes []string) {
	for _, change := range changes {
		enhancementChangesTotal.WithLabelValues(change).Inc()
	}
}
