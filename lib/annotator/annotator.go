// Package annotator runs every extractor over an utterance and reconciles
// their candidates into the final entity list.
package annotator

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/blocklist"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/extractor"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/merge"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/model"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/text"
)

// Observer is told about every extractor run.
type Observer interface {
	ObserveExtractor(source string, elapsed time.Duration, spans int, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveExtractor(string, time.Duration, int, error) {}

type Option func(*Annotator)

func WithObserver(o Observer) Option {
	return func(a *Annotator) {
		a.observer = o
	}
}

type Annotator struct {
	date        extractor.Extractor
	pattern     extractor.Extractor
	budget      extractor.Extractor
	statistical extractor.Extractor
	gazetteer   extractor.Extractor

	priorities  entity.Priorities
	blocklist   *blocklist.Blocklist
	merger      merge.Merger
	formatter   merge.Formatter
	timeout     time.Duration
	observer    Observer
	fingerprint string
}

func New(cfg Config, opts ...Option) (*Annotator, error) {
	if cfg.Blocklist == nil {
		cfg.Blocklist = blocklist.Default()
	}
	if cfg.Patterns == nil {
		cfg.Patterns = extractor.DefaultPatterns
	}
	if cfg.Model == nil {
		cfg.Model = model.Null{}
	}

	pattern, err := extractor.NewPatternExtractor(cfg.Patterns)
	if err != nil {
		log.Warn().Err(err).Msg("some pattern rules were skipped")
	}

	gazetteer, err := extractor.NewGazetteerExtractor(cfg.Gazetteer)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: %w", err)
	}

	priorities := entity.NewPriorities(cfg.Priorities)
	a := &Annotator{
		date:        extractor.NewDateExtractor(cfg.DateParser),
		pattern:     pattern,
		budget:      extractor.NewBudgetExtractor(cfg.CurrencyCues, cfg.MonthWords),
		statistical: extractor.NewStatisticalExtractor(cfg.Model, cfg.Blocklist, cfg.BudgetCues),
		gazetteer:   gazetteer,
		priorities:  priorities,
		blocklist:   cfg.Blocklist,
		merger:      merge.NewMerger(priorities),
		formatter:   merge.NewFormatter(cfg.Blocklist),
		timeout:     cfg.ExtractorTimeout,
		observer:    noopObserver{},
		fingerprint: fingerprint(cfg, priorities),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Annotate returns the resolved entities for text. It never fails: extractors
// that error or time out contribute nothing.
func (a *Annotator) Annotate(ctx context.Context, s string) []entity.Entity {
	results := a.Candidates(ctx, s)
	return a.Resolve(text.NewUtterance(s).Len(), Collect(results))
}

/**
	Candidates runs the extractors in pipeline order and returns every result,
	failed ones included. Later extractors see what earlier ones proposed:
	date spans first, then the regex rules, the numeric budget heuristic,
	the statistical model and finally the gazetteer.
**/
func (a *Annotator) Candidates(ctx context.Context, s string) []extractor.Result {
	u := text.NewUtterance(s)

	dates := a.run(ctx, a.date, u, extractor.Prior{})
	ds := dates.Spans()

	prior := extractor.Prior{Dates: ds, Accepted: ds}
	patterns := a.run(ctx, a.pattern, u, prior)

	prior.Accepted = append(append([]entity.Span{}, ds...), patterns.Spans()...)
	budgets := a.run(ctx, a.budget, u, prior)

	prior.Accepted = append(prior.Accepted, budgets.Spans()...)
	statistical := a.run(ctx, a.statistical, u, prior)

	prior.Accepted = append(prior.Accepted, statistical.Spans()...)
	gazetteer := a.run(ctx, a.gazetteer, u, prior)

	return []extractor.Result{dates, patterns, budgets, statistical, gazetteer}
}

// Collect concatenates the candidates of successful results.
func Collect(results []extractor.Result) []entity.Candidate {
	var res []entity.Candidate
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		res = append(res, r.Candidates...)
	}
	return res
}

// Resolve merges candidates for a text of textLen runes and formats the winners.
// Blocklisted candidates are removed before merging so they cannot displace
// a legitimate span.
func (a *Annotator) Resolve(textLen int, candidates []entity.Candidate) []entity.Entity {
	merged := a.merger.Merge(a.blocklist.FilterCandidates(candidates))
	return a.formatter.Format(entity.Spans(merged), textLen)
}

func (a *Annotator) Categories() []entity.Ranked {
	return a.priorities.Table()
}

// Fingerprint identifies the configuration. Equal fingerprints annotate equal text identically.
func (a *Annotator) Fingerprint() string {
	return a.fingerprint
}

func (a *Annotator) run(ctx context.Context, ex extractor.Extractor, u *text.Utterance, prior extractor.Prior) extractor.Result {
	start := time.Now()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	done := make(chan extractor.Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- extractor.Failed(ex.Name(), fmt.Errorf("panic: %v", r))
			}
		}()
		done <- ex.Extract(ctx, u, prior)
	}()

	var res extractor.Result
	select {
	case res = <-done:
	case <-ctx.Done():
		res = extractor.Failed(ex.Name(), ctx.Err())
	}
	if res.Source == "" {
		res.Source = ex.Name()
	}

	if res.Err != nil {
		log.Warn().Str("extractor", res.Source).Err(res.Err).Msg("extractor failed, no spans used")
		res.Candidates = nil
	}
	a.observer.ObserveExtractor(res.Source, time.Since(start), len(res.Candidates), res.Err)

	return res
}

func fingerprint(cfg Config, priorities entity.Priorities) string {
	terms := func(m map[string]bool) []string {
		res := make([]string, 0, len(m))
		for k := range m {
			res = append(res, k)
		}
		sort.Strings(res)
		return res
	}

	b, _ := json.Marshal(struct {
		Priorities      []entity.Ranked
		Patterns        []extractor.PatternRule
		Gazetteer       []string
		CurrencyCues    []string
		MonthWords      []string
		BudgetCues      []string
		CaseSensitive   []string
		CaseInsensitive []string
		Model           string
	}{
		Priorities:      priorities.Table(),
		Patterns:        cfg.Patterns,
		Gazetteer:       cfg.Gazetteer,
		CurrencyCues:    cfg.CurrencyCues,
		MonthWords:      cfg.MonthWords,
		BudgetCues:      cfg.BudgetCues,
		CaseSensitive:   terms(cfg.Blocklist.CaseSensitive),
		CaseInsensitive: terms(cfg.Blocklist.CaseInsensitive),
		Model:           reflect.TypeOf(cfg.Model).String(),
	})
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
