package corpus

import (
	"context"
	"strings"

	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/annotator"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/text"
)

const FrameSource = "frame"

type Labeller struct {
	annotator *annotator.Annotator
	intents   map[string]string
	airports  map[string]string
}

// NewLabeller uses the default intent and airport tables where nil is passed.
func NewLabeller(a *annotator.Annotator, intents, airports map[string]string) *Labeller {
	if intents == nil {
		intents = DefaultIntentMap
	}
	if airports == nil {
		airports = DefaultAirports
	}
	return &Labeller{
		annotator: a,
		intents:   intents,
		airports:  airports,
	}
}

// Label annotates one user turn. Frame slot values found in the text compete
// with the extracted candidates in the same merge.
func (l *Labeller) Label(ctx context.Context, t Turn) Utterance {
	s := strings.TrimSpace(t.Text)
	u := text.NewUtterance(s)

	candidates := l.SlotCandidates(u, t)
	candidates = append(candidates, annotator.Collect(l.annotator.Candidates(ctx, s))...)

	return Utterance{
		Intent:   Intent(t, l.intents),
		Language: Language,
		Text:     s,
		Entities: l.annotator.Resolve(u.Len(), candidates),
	}
}

// SlotCandidates locates the frame slot values of t in u.
func (l *Labeller) SlotCandidates(u *text.Utterance, t Turn) []entity.Candidate {
	var res []entity.Candidate
	for _, f := range t.Frames {
		for _, slot := range f.SlotList() {
			category := slot.Category()
			value, ok := slot.ValueString()
			if category == "" || !ok {
				continue
			}
			start, end, found := Locate(u, value, l.airports)
			if !found {
				continue
			}
			res = append(res, entity.Candidate{
				Span: entity.Span{
					Category: entity.Category(category),
					Start:    start,
					End:      end,
					Text:     value,
				},
				Source: FrameSource,
			})
		}
	}
	return res
}
