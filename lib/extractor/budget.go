package extractor

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/text"
)

const BudgetSource = "budget"

var DefaultCurrencyCues = []string{"$", "usd", "dollars", "eur", "€", "£", "budget", "price", "cost", "fare", "ticket", "pay"}

var DefaultMonthWords = []string{
	"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
	"january", "february", "march", "april", "june", "july", "august", "september", "october", "november", "december",
}

const budgetWindow = 30

var (
	numericToken   = regexp.MustCompile(`\b\d{3,6}\b`)
	onWord         = regexp.MustCompile(`\bon\b`)
	nonDigit       = regexp.MustCompile(`[^0-9]`)
	currencySymbol = map[rune]bool{'$': true, '€': true, '£': true}
)

type BudgetExtractor struct {
	cues   []string
	months *regexp.Regexp
}

func NewBudgetExtractor(currencyCues, monthWords []string) *BudgetExtractor {
	if currencyCues == nil {
		currencyCues = DefaultCurrencyCues
	}
	if monthWords == nil {
		monthWords = DefaultMonthWords
	}
	cues := make([]string, len(currencyCues))
	for i, c := range currencyCues {
		cues[i] = strings.ToLower(c)
	}
	return &BudgetExtractor{
		cues:   cues,
		months: MonthPattern(monthWords),
	}
}

// MonthPattern matches any of words as a whole word, ignoring case.
func MonthPattern(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return regexp.MustCompile(`[^\s\S]`)
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func (b *BudgetExtractor) Name() string {
	return BudgetSource
}

func (b *BudgetExtractor) Extract(ctx context.Context, u *text.Utterance, prior Prior) Result {
	var accepted []entity.Span
	for _, loc := range numericToken.FindAllStringIndex(u.String(), -1) {
		if err := ctx.Err(); err != nil {
			return Failed(BudgetSource, err)
		}
		span := byteSpan(u, entity.Budget, loc[0], loc[1])
		if entity.TouchesAny(prior.Dates, span.Start, span.End) ||
			entity.TouchesAny(prior.Accepted, span.Start, span.End) ||
			entity.TouchesAny(accepted, span.Start, span.End) {
			continue
		}
		if b.Likely(u, span.Start, span.End, prior.Dates) {
			accepted = append(accepted, span)
		}
	}

	candidates := make([]entity.Candidate, len(accepted))
	for i, s := range accepted {
		candidates[i] = candidate(BudgetSource, s)
	}
	return Result{Source: BudgetSource, Candidates: candidates}
}

// Likely decides whether the numeric token at the inclusive rune range
// [start, end] is an amount of money. The order of the checks matters.
func (b *BudgetExtractor) Likely(u *text.Utterance, start, end int, dates []entity.Span) bool {
	if entity.TouchesAny(dates, start, end) {
		return false
	}

	window := strings.ToLower(u.Window(start, end, budgetWindow))
	for _, cue := range b.cues {
		if strings.Contains(window, cue) {
			return true
		}
	}

	if r, ok := u.RuneAt(start - 1); ok && currencySymbol[r] {
		return true
	}

	token := u.Slice(start, end+1)
	val, err := strconv.Atoi(nonDigit.ReplaceAllString(token, ""))
	if err != nil {
		return false
	}

	// A plausible year next to a month name is part of a date. The "day number
	// and month" phrasing is subsumed by the month check alone.
	if len([]rune(token)) == 4 && val >= 1900 && val <= 2035 && b.months.MatchString(window) {
		return false
	}

	if val >= 100 && val <= 1000000 {
		before := strings.ToLower(u.Before(start, 10))
		if onWord.MatchString(before) && b.months.MatchString(u.String()) {
			return false
		}
		return true
	}

	return false
}
