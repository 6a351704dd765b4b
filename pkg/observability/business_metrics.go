package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReasonCodeUnmatched labels enrichments whose dispute reason mapped to no catalogue entry
const ReasonCodeUnmatched = "none"

// EvidenceMetrics holds the enrichment outcome metrics.
// A nil *EvidenceMetrics is valid and records nothing.
type EvidenceMetrics struct {
	enrichmentsTotal *prometheus.CounterVec
	strengthScore    prometheus.Histogram
	reasonCodeMatch  *prometheus.CounterVec
	windowStatus     *prometheus.CounterVec
	enrichDuration   prometheus.Histogram

	checklistsTotal     *prometheus.CounterVec
	checklistMissingMan *prometheus.HistogramVec
}

// NewEvidenceMetrics registers the evidence metrics on reg under namespace
func NewEvidenceMetrics(reg prometheus.Registerer, namespace string) *EvidenceMetrics {
	factory := promauto.With(reg)

	return &EvidenceMetrics{
		enrichmentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichments_total",
			Help:      "Total enrichment passes by overall dispute strength",
		}, []string{
			"strength", // strong, moderate, weak
		}),

		strengthScore: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "strength_score",
			Help:      "Distribution of additive strength scores",
			// one bucket per point up to the sum of every rule
			Buckets: prometheus.LinearBuckets(0, 1, 15),
		}),

		reasonCodeMatch: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reason_code_matches_total",
			Help:      "Reason-code mapping outcomes by cascade stage",
		}, []string{
			"stage", // exact, substring, keyword, none
			"network",
		}),

		windowStatus: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawal_window_total",
			Help:      "Withdrawal-window analysis outcomes",
		}, []string{
			"status", // within_window, expired, before_delivery, insufficient_data
		}),

		enrichDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "enrichment_duration_seconds",
			Help:      "Time to build one enriched context",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),

		checklistsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checklists_total",
			Help:      "Checklists built by dispute type and mandatory completeness",
		}, []string{
			"dispute_type",
			"mandatory_satisfied",
		}),

		checklistMissingMan: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checklist_missing_mandatory",
			Help:      "Mandatory checklist items not yet available per checklist",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		}, []string{
			"dispute_type",
		}),
	}
}

// RecordEnrichment records one enrichment pass.
// stage and network are empty when the reason was not mapped.
func (m *EvidenceMetrics) RecordEnrichment(strength string, score int, stage, network, windowStatus string, duration time.Duration) {
	if m == nil {
		return
	}
	if stage == "" {
		stage = ReasonCodeUnmatched
	}
	if network == "" {
		network = ReasonCodeUnmatched
	}

	m.enrichmentsTotal.WithLabelValues(strength).Inc()
	m.strengthScore.Observe(float64(score))
	m.reasonCodeMatch.WithLabelValues(stage, network).Inc()
	m.windowStatus.WithLabelValues(windowStatus).Inc()
	m.enrichDuration.Observe(duration.Seconds())
}

// RecordChecklist records one built checklist
func (m *EvidenceMetrics) RecordChecklist(disputeType string, mandatorySatisfied bool, missingMandatory int) {
	if m == nil {
		return
	}
	m.checklistsTotal.WithLabelValues(disputeType, strconv.FormatBool(mandatorySatisfied)).Inc()
	m.checklistMissingMan.WithLabelValues(disputeType).Observe(float64(missingMandatory))
}
