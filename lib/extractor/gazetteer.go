package extractor

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/coregx/ahocorasick"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/text"
)

const GazetteerSource = "gazetteer"

var DefaultGazetteer = []string{
	"new york", "los angeles", "san francisco", "paris", "london", "berlin", "rome", "amsterdam",
	"miami", "chicago", "seattle", "boston", "sydney", "bangkok", "hong kong", "delhi", "dubai",
}

// GazetteerExtractor reports the first occurrence of each known place name,
// ignoring case. Names are emitted longest first.
type GazetteerExtractor struct {
	names []string
	ac    *ahocorasick.Automaton
}

func NewGazetteerExtractor(names []string) (*GazetteerExtractor, error) {
	if names == nil {
		names = DefaultGazetteer
	}

	seen := make(map[string]bool, len(names))
	g := &GazetteerExtractor{names: make([]string, 0, len(names))}
	for _, n := range names {
		n = strings.Map(unicode.ToLower, strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		g.names = append(g.names, n)
	}
	sort.SliceStable(g.names, func(i, j int) bool {
		return len([]rune(g.names[i])) > len([]rune(g.names[j]))
	})

	if len(g.names) == 0 {
		return g, nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(g.names).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	g.ac = automaton

	return g, nil
}

func (g *GazetteerExtractor) Name() string {
	return GazetteerSource
}

func (g *GazetteerExtractor) Extract(ctx context.Context, u *text.Utterance, _ Prior) Result {
	if g.ac == nil {
		return Result{Source: GazetteerSource}
	}

	// earliest byte offset in the lowered text per pattern
	first := make(map[int]int)
	for _, m := range g.ac.FindAllOverlapping([]byte(u.Lower())) {
		if s, ok := first[m.PatternID]; !ok || m.Start < s {
			first[m.PatternID] = m.Start
		}
	}

	var candidates []entity.Candidate
	for id, name := range g.names {
		b, ok := first[id]
		if !ok {
			continue
		}
		start := u.LowerRuneOffset(b)
		end := u.LowerRuneOffset(b+len(name)) - 1
		candidates = append(candidates, candidate(GazetteerSource, entity.Span{
			Category: entity.Location,
			Start:    start,
			End:      end,
			Text:     u.Slice(start, end+1),
		}))
	}
	return Result{Source: GazetteerSource, Candidates: candidates}
}
