package extractor

import (
	"context"
	"strings"

	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/blocklist"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/model"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/text"
)

const StatisticalSource = "statistical"

// DefaultBudgetCues are lemmas which turn a neighbouring number into a Budget.
var DefaultBudgetCues = []string{"budget", "price", "cost", "fare", "costs", "budgeted", "pay", "paying", "expense", "amount"}

var labelMap = map[string]entity.Category{
	"GPE":      entity.Location,
	"LOC":      entity.Location,
	"ORG":      entity.Location,
	"LOCATION": entity.Location,
	"DATE":     entity.Date,
	"TIME":     entity.Time,
	"MONEY":    entity.Budget,
}

const moneyLabel = "MONEY"

// Remap converts a model label into one of our categories. Unknown labels pass through.
func Remap(label string) entity.Category {
	if c, ok := labelMap[strings.ToUpper(label)]; ok {
		return c
	}
	return entity.Category(label)
}

type StatisticalExtractor struct {
	model     model.Model
	blocklist *blocklist.Blocklist
	cues      map[string]bool
}

func NewStatisticalExtractor(m model.Model, bl *blocklist.Blocklist, cues []string) *StatisticalExtractor {
	if m == nil {
		m = model.Null{}
	}
	if bl == nil {
		bl = blocklist.Default()
	}
	if cues == nil {
		cues = DefaultBudgetCues
	}
	s := &StatisticalExtractor{model: m, blocklist: bl, cues: make(map[string]bool, len(cues))}
	for _, c := range cues {
		s.cues[strings.ToLower(c)] = true
	}
	return s
}

func (s *StatisticalExtractor) Name() string {
	return StatisticalSource
}

func (s *StatisticalExtractor) Extract(ctx context.Context, u *text.Utterance, prior Prior) Result {
	doc, err := s.model.Annotate(ctx, u.String())
	if err != nil {
		return Failed(StatisticalSource, err)
	}

	var accepted []entity.Span
	for _, e := range doc.Entities {
		start, end := e.Start, e.End-1
		if start < 0 || end < start || end >= u.Len() {
			continue
		}
		if entity.TouchesAny(prior.Accepted, start, end) || entity.TouchesAny(accepted, start, end) {
			continue
		}
		category := Remap(e.Label)
		if !s.blocklist.AllowedCategory(category) {
			continue
		}
		accepted = append(accepted, entity.Span{Category: category, Start: start, End: end, Text: e.Text})
	}

	for i, tok := range doc.Tokens {
		if !tok.LikeNum && tok.EntType != moneyLabel {
			continue
		}
		if !s.cued(doc.Tokens, i) {
			continue
		}
		start, end := tok.Start, tok.End-1
		if start < 0 || end < start || end >= u.Len() {
			continue
		}
		if entity.TouchesAny(prior.Dates, start, end) {
			continue
		}
		if sameOffsets(prior.Accepted, start, end) || sameOffsets(accepted, start, end) {
			continue
		}
		accepted = append(accepted, entity.Span{Category: entity.Budget, Start: start, End: end, Text: tok.Text})
	}

	candidates := make([]entity.Candidate, len(accepted))
	for i, sp := range accepted {
		candidates[i] = candidate(StatisticalSource, sp)
	}
	return Result{Source: StatisticalSource, Candidates: candidates}
}

// cued is true when the token is money or its head, left or right neighbour is a cue word.
func (s *StatisticalExtractor) cued(tokens []model.Token, i int) bool {
	if tokens[i].EntType == moneyLabel {
		return true
	}
	if s.cues[strings.ToLower(tokens[i].Head)] {
		return true
	}
	if i > 0 && s.cues[strings.ToLower(tokens[i-1].Lemma)] {
		return true
	}
	if i < len(tokens)-1 && s.cues[strings.ToLower(tokens[i+1].Lemma)] {
		return true
	}
	return false
}

func sameOffsets(spans []entity.Span, start, end int) bool {
	for _, s := range spans {
		if s.Start == start && s.End == end {
			return true
		}
	}
	return false
}
