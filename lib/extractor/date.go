package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/text"
)

const DateSource = "date"

var isoDate = regexp.MustCompile(`\b20\d{2}[/-]\d{1,2}[/-]\d{1,2}\b`)

// DateParser finds date expressions in free text and returns the matched
// substrings in the order they appear.
type DateParser interface {
	Parse(text string, base time.Time) ([]string, error)
}

// WhenParser is a DateParser restricted to calendar dates; clock times are
// left to the pattern rules.
type WhenParser struct {
	w *when.Parser
}

func NewWhenParser() *WhenParser {
	w := when.New(nil)
	w.Add(
		en.Weekday(rules.Override),
		en.CasualDate(rules.Override),
		calendarDate(rules.Override),
		en.Deadline(rules.Override),
		en.PastTime(rules.Override),
		common.SlashDMY(rules.Override),
	)
	return &WhenParser{w: w}
}

var (
	dayPattern   = `([0-9]{1,2}(?:st|nd|rd|th)?|` + en.ORDINAL_WORDS_PATTERN[3:]
	monthPattern = `(` + en.MONTH_OFFSET_PATTERN[3:]
	yearPattern  = `(?:,?\s+([0-9]{4}))?`
)

// calendarDate stands in for en.ExactMonthDate, which reads a trailing year
// as a day number and gives up. It covers "15 August 2024", "the 3rd of March",
// "August 15th, 2024" and "March 2026".
func calendarDate(s rules.Strategy) rules.Rule {
	return &rules.F{
		RegExp: regexp.MustCompile(`(?i)(?:\W|^)(?:` +
			dayPattern + `(?:\s+of)?\s+` + monthPattern + yearPattern +
			`|` + monthPattern + `\s+` + dayPattern + yearPattern +
			`|` + monthPattern + yearPattern +
			`)(?:\W|$)`),
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			var day, month, year string
			switch {
			case m.Captures[1] != "":
				day, month, year = m.Captures[0], m.Captures[1], m.Captures[2]
			case m.Captures[3] != "":
				month, day, year = m.Captures[3], m.Captures[4], m.Captures[5]
			default:
				month, year = m.Captures[6], m.Captures[7]
			}
			if c.Month != nil && s != rules.Override {
				return false, nil
			}

			mon, ok := en.MONTH_OFFSET[strings.ToLower(strings.TrimSuffix(month, "."))]
			if !ok {
				return false, nil
			}
			c.Month = &mon

			if day != "" {
				d, ok := dayNumber(day)
				if !ok {
					return false, nil
				}
				c.Day = &d
			}
			if year != "" {
				y, err := strconv.Atoi(year)
				if err != nil {
					return false, nil
				}
				c.Year = &y
			}
			return true, nil
		},
	}
}

func dayNumber(s string) (int, bool) {
	s = strings.ToLower(s)
	if n, ok := en.ORDINAL_WORDS[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(strings.TrimRight(s, "stndrh"))
	if err != nil || n < 1 || n > 31 {
		return 0, false
	}
	return n, true
}

// Parse keeps re-parsing whatever follows the last match, as when only reports
// the first cluster of matches it finds.
func (p *WhenParser) Parse(s string, base time.Time) ([]string, error) {
	var found []string
	rest := s
	for rest != "" {
		r, err := p.w.Parse(rest, base)
		if err != nil {
			return found, err
		}
		if r == nil {
			break
		}
		if m := strings.TrimSpace(r.Text); m != "" {
			found = append(found, m)
		}
		next := r.Index + len(r.Text)
		if next <= 0 || next > len(rest) {
			break
		}
		rest = rest[next:]
	}
	return found, nil
}

type DateExtractor struct {
	parser DateParser
	now    func() time.Time
}

func NewDateExtractor(parser DateParser) *DateExtractor {
	if parser == nil {
		parser = NewWhenParser()
	}
	return &DateExtractor{
		parser: parser,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (d *DateExtractor) Name() string {
	return DateSource
}

// Extract never fails: a parser error just means no parsed dates, and the ISO
// fallback still runs.
func (d *DateExtractor) Extract(ctx context.Context, u *text.Utterance, _ Prior) Result {
	var candidates []entity.Candidate

	for _, match := range d.parse(u.String()) {
		start, end, ok := u.IndexFold(match, 0)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate(DateSource, entity.Span{
			Category: entity.Date,
			Start:    start,
			End:      end,
			Text:     match,
		}))
	}

	for _, loc := range isoDate.FindAllStringIndex(u.String(), -1) {
		candidates = append(candidates, candidate(DateSource, byteSpan(u, entity.Date, loc[0], loc[1])))
	}

	return Result{Source: DateSource, Candidates: candidates}
}

func (d *DateExtractor) parse(s string) (matches []string) {
	defer func() {
		if r := recover(); r != nil {
			matches = nil
			logDegraded(DateSource, fmt.Errorf("date parser panic: %v", r))
		}
	}()

	matches, err := d.parser.Parse(s, d.now())
	if err != nil {
		logDegraded(DateSource, err)
		return nil
	}
	return matches
}
