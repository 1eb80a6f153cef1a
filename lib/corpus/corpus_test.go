package corpus

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/annotator"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/testhelpers"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/text"
)

const frames = `{
  "conversations": [
    {
      "turns": [
        {"speaker": "user", "text": "Book a trip to Berlin for 2 people",
         "frames": [{"actions": [{"act": "inform"}],
                     "info": [{"slot": "dst_city", "value": "Berlin"}, {"slot": "n_adults", "value": 2}]}]},
        {"speaker": "wizard", "text": "Sure, when?"},
        {"author": "USER", "text": "   "},
        {"author": "user", "text": "I'd like to leave on the weekend",
         "frames": [{"actions": [{"type": "request_dates"}],
                     "slots": [{"name": "str_date", "values": ["weekend", "saturday"]}]}]}
      ]
    },
    "not a conversation",
    {
      "turns": [
        {"speaker": "user", "text": "hello there",
         "frames": [{"info": {"dst_city": [{"val": "Rome"}]}}]}
      ]
    }
  ]
}`

type CorpusSuite struct {
	suite.Suite
	labeller *Labeller
}

func TestCorpusSuite(t *testing.T) {
	suite.Run(t, new(CorpusSuite))
}

func (s *CorpusSuite) SetupTest() {
	a, err := annotator.New(annotator.Config{DateParser: testhelpers.StubDates{}})
	s.Require().Nil(err)
	s.labeller = NewLabeller(a, nil, nil)
}

func (s *CorpusSuite) Test_Load() {
	conversations, err := Load(strings.NewReader(frames))
	s.Require().Nil(err)
	s.Len(conversations, 2)

	turns := UserTurns(conversations)
	s.Require().Len(turns, 3)
	s.Equal("Book a trip to Berlin for 2 people", turns[0].Text)
	s.Equal("I'd like to leave on the weekend", turns[1].Text)
	s.Equal("hello there", turns[2].Text)
	s.Nil(turns[2].Frames[0].SlotList(), "slot maps are ignored")

	list, err := Load(strings.NewReader(`[{"turns": [{"speaker": "user", "text": "hi"}]}]`))
	s.Require().Nil(err)
	s.Len(UserTurns(list), 1)

	_, err = Load(strings.NewReader(`"frames"`))
	s.NotNil(err)
}

func (s *CorpusSuite) Test_Slot_ValueString() {
	tests := []struct {
		name  string
		slot  Slot
		want  string
		found bool
	}{
		{name: "string value", slot: Slot{Value: "Paris"}, want: "Paris", found: true},
		{name: "number value", slot: Slot{Value: 2.0}, want: "2", found: true},
		{name: "first of a list", slot: Slot{Values: []interface{}{"weekend", "saturday"}}, want: "weekend", found: true},
		{name: "empty value falls through to text", slot: Slot{Value: "", Text: "Rome"}, want: "Rome", found: true},
		{name: "nothing set", slot: Slot{}, found: false},
	}
	for _, tt := range tests {
		s.T().Log(tt.name)
		got, found := tt.slot.ValueString()
		s.Equal(tt.found, found)
		s.Equal(tt.want, got)
	}
}

func (s *CorpusSuite) Test_Intent() {
	tests := []struct {
		name string
		turn Turn
		want string
	}{
		{
			name: "mapped action",
			turn: Turn{Frames: []Frame{{Actions: []Action{{Act: "Offer"}}}}},
			want: "OfferFlight",
		},
		{
			name: "action prefix",
			turn: Turn{Frames: []Frame{{Actions: []Action{{Name: "request_alts"}}}}},
			want: "RequestInfo",
		},
		{
			name: "unknown action falls back to keywords",
			turn: Turn{Text: "Thanks a lot", Frames: []Frame{{Actions: []Action{{Act: "switch_frame"}}}}},
			want: "ThankYou",
		},
		{
			name: "price keyword",
			turn: Turn{Text: "How much is it?"},
			want: "RequestInfo",
		},
		{
			name: "default",
			turn: Turn{Text: "Paris"},
			want: DefaultIntent,
		},
	}
	for _, tt := range tests {
		s.T().Log(tt.name)
		s.Equal(tt.want, Intent(tt.turn, DefaultIntentMap))
	}
}

func (s *CorpusSuite) Test_Locate() {
	tests := []struct {
		name      string
		text      string
		value     string
		wantStart int
		wantEnd   int
		found     bool
	}{
		{name: "exact, any case", text: "Fly to Paris", value: "paris", wantStart: 7, wantEnd: 11, found: true},
		{name: "word sequence", text: "flights to New York please", value: "new   york", wantStart: 11, wantEnd: 18, found: true},
		{name: "airport code to city", text: "going to new york", value: "NYC", wantStart: 9, wantEnd: 16, found: true},
		{name: "close spelling", text: "trip to londn tomorrow", value: "London", wantStart: 8, wantEnd: 12, found: true},
		{name: "multibyte text", text: "über Zürich", value: "zürich", wantStart: 5, wantEnd: 10, found: true},
		{name: "absent", text: "hello there", value: "Berlin", found: false},
		{name: "blank value", text: "hello there", value: "  ", found: false},
	}
	for _, tt := range tests {
		s.T().Log(tt.name)
		start, end, found := Locate(text.NewUtterance(tt.text), tt.value, DefaultAirports)
		s.Equal(tt.found, found)
		if tt.found {
			s.Equal(tt.wantStart, start)
			s.Equal(tt.wantEnd, end)
		}
	}
}

func (s *CorpusSuite) Test_Label() {
	conversations, err := Load(strings.NewReader(frames))
	s.Require().Nil(err)
	turns := UserTurns(conversations)

	var got []Utterance
	for _, t := range turns {
		got = append(got, s.labeller.Label(context.Background(), t))
	}

	s.Equal([]Utterance{
		{
			Intent:   "ProvideInfo",
			Language: "en-us",
			Text:     "Book a trip to Berlin for 2 people",
			Entities: []entity.Entity{
				{Category: entity.Location, Offset: 15, Length: 6},
				{Category: entity.NumPassengers, Offset: 26, Length: 8},
			},
		},
		{
			Intent:   "RequestInfo",
			Language: "en-us",
			Text:     "I'd like to leave on the weekend",
			Entities: []entity.Entity{{Category: "str_date", Offset: 25, Length: 7}},
		},
		{
			Intent:   "Greet",
			Language: "en-us",
			Text:     "hello there",
			Entities: []entity.Entity{},
		},
	}, got)
}

func (s *CorpusSuite) Test_SlotCandidates() {
	u := text.NewUtterance("from NYC to Paris")
	t := Turn{Frames: []Frame{{Info: []byte(`[{"slot": "OR_CITY", "value": "nyc"}, {"slot": "dst_city", "value": "Lisbon"}]`)}}}

	s.Equal([]entity.Candidate{{
		Span:   entity.Span{Category: "or_city", Start: 5, End: 7, Text: "nyc"},
		Source: FrameSource,
	}}, s.labeller.SlotCandidates(u, t))
}

func (s *CorpusSuite) Test_Dedupe() {
	input := []Utterance{
		{Intent: "Greet", Text: "Hello  there"},
		{Intent: "Greet", Text: "hello there"},
		{Intent: "ThankYou", Text: "hello there"},
	}
	got, removed := Dedupe(input)
	s.Equal([]Utterance{input[0], input[2]}, got)
	s.Equal(1, removed)
}
