package metrics

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "utterance_labelling"

// Metrics holds the collectors of one process on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	extractorRuns     *prometheus.CounterVec
	extractorSpans    *prometheus.CounterVec
	extractorDuration *prometheus.HistogramVec
	cacheLookups      *prometheus.CounterVec
	utterances        prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		extractorRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractor_runs_total",
			Help:      "Extractor runs by outcome.",
		}, []string{"extractor", "outcome"}),
		extractorSpans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractor_spans_total",
			Help:      "Candidate spans proposed per extractor.",
		}, []string{"extractor"}),
		extractorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extractor_duration_seconds",
			Help:      "Time spent in each extractor.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"extractor"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by result.",
		}, []string{"result"}),
		utterances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "utterances_labelled_total",
			Help:      "Utterances annotated.",
		}),
	}

	m.registry.MustRegister(
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
		m.extractorRuns,
		m.extractorSpans,
		m.extractorDuration,
		m.cacheLookups,
		m.utterances,
	)
	return m
}

// ObserveExtractor satisfies annotator.Observer.
func (m *Metrics) ObserveExtractor(source string, elapsed time.Duration, spans int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.extractorRuns.WithLabelValues(source, outcome).Inc()
	m.extractorSpans.WithLabelValues(source).Add(float64(spans))
	m.extractorDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (m *Metrics) CacheHit() {
	m.cacheLookups.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	m.cacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) CacheError() {
	m.cacheLookups.WithLabelValues("error").Inc()
}

func (m *Metrics) Labelled(n int) {
	m.utterances.Add(float64(n))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Summary flattens this process's own series (Go and process collectors
// excluded) into "name{label=value}" keys. Histograms report their sample
// count and sum.
func (m *Metrics) Summary() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	res := make(map[string]float64)
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") {
			continue
		}
		name := strings.TrimPrefix(mf.GetName(), namespace+"_")
		for _, metric := range mf.GetMetric() {
			var labels []string
			for _, lp := range metric.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			sort.Strings(labels)
			key := name
			if len(labels) > 0 {
				key += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case metric.GetCounter() != nil:
				res[key] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				res[key+"_count"] = float64(metric.GetHistogram().GetSampleCount())
				res[key+"_sum"] = metric.GetHistogram().GetSampleSum()
			case metric.GetGauge() != nil:
				res[key] = metric.GetGauge().GetValue()
			}
		}
	}
	return res, nil
}
