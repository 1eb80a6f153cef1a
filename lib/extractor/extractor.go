// Package extractor holds the span proposers. Every extractor is imprecise on
// its own; overlaps between their candidates are settled by lib/merge.
package extractor

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/text"
)

var ErrMalformedRule = errors.New("malformed pattern rule")

// Prior is what earlier extractors in the pipeline have already proposed.
type Prior struct {
	Dates    []entity.Span
	Accepted []entity.Span
}

// Result is the outcome of a single extractor run. When Err is set the
// candidates must be ignored.
type Result struct {
	Source     string             `json:"source"`
	Candidates []entity.Candidate `json:"candidates"`
	Err        error              `json:"-"`
}

func (r Result) Spans() []entity.Span {
	if r.Err != nil {
		return nil
	}
	return entity.Spans(r.Candidates)
}

func Failed(source string, err error) Result {
	return Result{Source: source, Err: err}
}

type Extractor interface {
	Name() string
	Extract(ctx context.Context, u *text.Utterance, prior Prior) Result
}

// byteSpan builds a span from a [start, end) byte range of the utterance text.
func byteSpan(u *text.Utterance, category entity.Category, start, end int) entity.Span {
	return entity.Span{
		Category: category,
		Start:    u.RuneOffset(start),
		End:      u.RuneOffset(end) - 1,
		Text:     u.String()[start:end],
	}
}

func candidate(source string, span entity.Span) entity.Candidate {
	return entity.Candidate{Span: span, Source: source}
}

func logDegraded(source string, err error) {
	log.Debug().Str("extractor", source).Err(err).Msg("degraded to no spans")
}
