package merge

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/blocklist"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/testhelpers"
)

type MergeSuite struct {
	suite.Suite
	Merger
}

func TestMergeSuite(t *testing.T) {
	suite.Run(t, new(MergeSuite))
}

func (s *MergeSuite) SetupTest() {
	s.Merger = NewMerger(entity.NewPriorities(nil))
}

func (s *MergeSuite) Test_Merge() {
	c := testhelpers.Cand

	tests := []struct {
		name  string
		input []entity.Candidate
		want  []entity.Candidate
	}{
		{
			name:  "empty",
			input: nil,
			want:  []entity.Candidate{},
		},
		{
			name:  "exact duplicates collapse",
			input: []entity.Candidate{c(entity.Location, 8, 12), c(entity.Location, 8, 12)},
			want:  []entity.Candidate{c(entity.Location, 8, 12)},
		},
		{
			name:  "date beats budget",
			input: []entity.Candidate{c(entity.Budget, 5, 8), c(entity.Date, 0, 10)},
			want:  []entity.Candidate{c(entity.Date, 0, 10)},
		},
		{
			name:  "date replaces an earlier budget and is appended",
			input: []entity.Candidate{c(entity.Location, 0, 3), c(entity.Budget, 5, 8), c(entity.Date, 6, 12)},
			want:  []entity.Candidate{c(entity.Location, 0, 3), c(entity.Date, 6, 12)},
		},
		{
			name:  "equal priority, equal start keeps the longer",
			input: []entity.Candidate{c(entity.Location, 3, 7), c(entity.Location, 3, 12)},
			want:  []entity.Candidate{c(entity.Location, 3, 12)},
		},
		{
			name:  "equal priority and length keeps the first",
			input: []entity.Candidate{c(entity.Location, 3, 7), c(entity.Location, 5, 9)},
			want:  []entity.Candidate{c(entity.Location, 3, 7)},
		},
		{
			name:  "unlisted categories lose to everything",
			input: []entity.Candidate{c("or_city", 0, 20), c(entity.NumPassengers, 2, 3)},
			want:  []entity.Candidate{c(entity.NumPassengers, 2, 3)},
		},
		{
			name:  "disjoint spans all survive",
			input: []entity.Candidate{c(entity.AirportCode, 19, 21), c(entity.AirportCode, 12, 14), c(entity.Budget, 45, 47)},
			want:  []entity.Candidate{c(entity.AirportCode, 12, 14), c(entity.AirportCode, 19, 21), c(entity.Budget, 45, 47)},
		},
	}
	for _, tt := range tests {
		s.T().Log(tt.name)
		s.Equal(tt.want, s.Merge(tt.input))
	}
}

func (s *MergeSuite) Test_Merge_PlaceNameFromTwoSources() {
	gazetteer := entity.Candidate{Span: testhelpers.Span(entity.Location, 8, 12, "Paris"), Source: "gazetteer"}
	regex := entity.Candidate{Span: testhelpers.Span(entity.Location, 8, 12, "Paris"), Source: "statistical"}

	got := s.Merge([]entity.Candidate{gazetteer, regex})
	s.Equal([]entity.Candidate{gazetteer}, got)
}

func randomCandidates(r *rand.Rand, n int) []entity.Candidate {
	categories := []entity.Category{entity.Date, entity.Budget, entity.Time, entity.Location, entity.AirportCode, entity.NumPassengers, "Other"}
	res := make([]entity.Candidate, n)
	for i := range res {
		start := r.Intn(60)
		res[i] = testhelpers.Cand(categories[r.Intn(len(categories))], start, start+r.Intn(8))
	}
	return res
}

// scanAll is the alternative resolution that compares a candidate with every
// overlapping accepted span.
func scanAll(m Merger, candidates []entity.Candidate) []entity.Candidate {
	seen := map[entity.Key]bool{}
	var unique []entity.Candidate
	for _, c := range candidates {
		if !seen[c.Key()] {
			seen[c.Key()] = true
			unique = append(unique, c)
		}
	}
	m.order(unique)

	accepted := []entity.Candidate{}
	for _, c := range unique {
		beatsAll := true
		var losers []int
		for i, a := range accepted {
			if !a.Overlaps(c.Span) {
				continue
			}
			pc, pa := m.priorities.Rank(c.Category), m.priorities.Rank(a.Category)
			if pc > pa || (pc == pa && c.Len() > a.Len()) {
				losers = append(losers, i)
			} else {
				beatsAll = false
			}
		}
		if !beatsAll {
			continue
		}
		for j := len(losers) - 1; j >= 0; j-- {
			accepted = append(accepted[:losers[j]], accepted[losers[j]+1:]...)
		}
		accepted = append(accepted, c)
	}
	return accepted
}

func (s *MergeSuite) Test_Merge_Properties() {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		input := randomCandidates(r, r.Intn(25))
		got := s.Merge(input)

		for a := range got {
			for b := range got {
				if a != b {
					s.False(got[a].Overlaps(got[b].Span), "overlap in %v", got)
				}
			}
		}

		s.Equal(got, s.Merge(input), "merging is deterministic")
		s.ElementsMatch(got, s.Merge(got), "merging merged output changes nothing")
		s.ElementsMatch(scanAll(s.Merger, input), got, "first conflict and scan all agree")
	}
}

func (s *MergeSuite) Test_Format() {
	f := NewFormatter(blocklist.Default())

	spans := []entity.Span{
		testhelpers.Span(entity.Budget, 10, 14, "$1900"),
		testhelpers.Span("Person", 0, 5, "Budget"),
		testhelpers.Span("TICKET", 16, 18, "for"),
		testhelpers.Span(entity.Location, 7, 6, ""),
		testhelpers.Span(entity.Location, 20, 25, ""),
		testhelpers.Span(entity.Location, -1, 2, ""),
		testhelpers.Span("", 1, 2, ""),
	}
	s.Equal([]entity.Entity{{Category: entity.Budget, Offset: 10, Length: 5}}, f.Format(spans, 23))
}
