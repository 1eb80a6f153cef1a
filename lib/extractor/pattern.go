package extractor

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/text"
)

const PatternSource = "pattern"

type PatternRule struct {
	Category entity.Category `yaml:"category" json:"category" mapstructure:"category"`
	Pattern  string          `yaml:"pattern" json:"pattern" mapstructure:"pattern"`
}

// DefaultPatterns is evaluated in order; an earlier rule claims its text first.
var DefaultPatterns = []PatternRule{
	{entity.DepartureDate, `\b(20\d{2}[/-]\d{1,2}[/-]\d{1,2})\b`},
	{entity.DepartureDate, `(?i)\b(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\s+20\d{2})\b`},
	{entity.Time, `\b(\d{1,2}:\d{2}(?:\s?[APMapm]{2})?)\b`},
	{entity.Budget, `\$\s?\d{1,3}(?:,?\d{3})*(?:\.\d{1,2})?\b`},
	{entity.Budget, `(?i)(?:\b(?:usd|dollars|eur)|€|£)\s?\d{1,3}(?:,?\d{3})*(?:\.\d{1,2})?\b`},
	{entity.AirportCode, `\b[A-Z]{3}\b`},
	{entity.NumPassengers, `(?i)\b(\d+)\s*(?:passengers|people|persons|pax)\b`},
}

type compiledRule struct {
	category entity.Category
	re       *regexp.Regexp
}

type PatternExtractor struct {
	rules []compiledRule
}

// NewPatternExtractor compiles every rule it can. Rules that fail to compile
// are reported in the returned error, which wraps ErrMalformedRule, and the
// extractor runs with the remainder.
func NewPatternExtractor(rules []PatternRule) (*PatternExtractor, error) {
	p := &PatternExtractor{rules: make([]compiledRule, 0, len(rules))}

	var errs []error
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w %d (%s): %v", ErrMalformedRule, i, r.Category, err))
			continue
		}
		p.rules = append(p.rules, compiledRule{category: r.Category, re: re})
	}

	return p, errors.Join(errs...)
}

func (p *PatternExtractor) Name() string {
	return PatternSource
}

func (p *PatternExtractor) Extract(ctx context.Context, u *text.Utterance, prior Prior) Result {
	var accepted []entity.Span
	for _, rule := range p.rules {
		if err := ctx.Err(); err != nil {
			return Failed(PatternSource, err)
		}
		for _, loc := range rule.re.FindAllStringIndex(u.String(), -1) {
			if loc[0] == loc[1] {
				continue
			}
			span := byteSpan(u, rule.category, loc[0], loc[1])
			if entity.TouchesAny(prior.Dates, span.Start, span.End) ||
				entity.TouchesAny(prior.Accepted, span.Start, span.End) ||
				entity.TouchesAny(accepted, span.Start, span.End) {
				continue
			}
			accepted = append(accepted, span)
		}
	}

	candidates := make([]entity.Candidate, len(accepted))
	for i, s := range accepted {
		candidates[i] = candidate(PatternSource, s)
	}
	return Result{Source: PatternSource, Candidates: candidates}
}
