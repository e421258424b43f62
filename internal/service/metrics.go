package service

import "github.com/prometheus/client_golang/prometheus"

// Import outcomes reported on formora_imports_total.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeNoData   = "no_data"
	OutcomeUpstream = "upstream_error"
	OutcomeError    = "error"
)

// ImportMetrics counts import runs and the work they did.
type ImportMetrics struct {
	imports   *prometheus.CounterVec
	questions prometheus.Counter
	skipped   prometheus.Counter
}

// NewImportMetrics registers the import collectors on reg.
func NewImportMetrics(reg prometheus.Registerer) (*ImportMetrics, error) {
	m := &ImportMetrics{
		imports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formora_imports_total",
				Help: "Total number of import runs by outcome.",
			},
			[]string{"outcome"},
		),
		questions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formora_questions_aggregated_total",
			Help: "Total number of questions whose statistics were computed.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formora_answers_skipped_total",
			Help: "Answers excluded from statistics (non-numeric or malformed JSON).",
		}),
	}

	for _, c := range []prometheus.Collector{m.imports, m.questions, m.skipped} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *ImportMetrics) observeOutcome(outcome string) {
	if m == nil {
		return
	}
	m.imports.WithLabelValues(outcome).Inc()
}

// observeQuestion counts a question only when its statistics were written.
func (m *ImportMetrics) observeQuestion(applied bool, skipped int) {
	if m == nil {
		return
	}
	if applied {
		m.questions.Inc()
	}
	m.skipped.Add(float64(skipped))
}
