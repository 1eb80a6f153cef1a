package entity

import "strings"

type Category string

const (
	Date          Category = "Date"
	Budget        Category = "Budget"
	Time          Category = "Time"
	Location      Category = "Location"
	AirportCode   Category = "AirportCode"
	NumPassengers Category = "NumPassengers"
	DepartureDate Category = "DepartureDate"
)

// Span is a categorised region of an utterance. Start and End are inclusive rune offsets.
type Span struct {
	Category Category `json:"category"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Text     string   `json:"text"`
}

// Len is the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start + 1
}

// Overlaps reports whether the two closed intervals share at least one rune.
func (s Span) Overlaps(o Span) bool {
	return s.Start <= o.End && o.Start <= s.End
}

// Touches is the looser check used while extractors build up their candidates:
// it is true when either endpoint of [start, end] falls inside s.
func (s Span) Touches(start, end int) bool {
	return (s.Start <= start && start <= s.End) || (s.Start <= end && end <= s.End)
}

func (s Span) Key() Key {
	return Key{Category: s.Category, Start: s.Start, End: s.End}
}

// Key identifies exact duplicates.
type Key struct {
	Category Category
	Start    int
	End      int
}

// Candidate is a span proposed by a named extractor.
type Candidate struct {
	Span
	Source string `json:"source"`
}

// Entity is the final output shape.
type Entity struct {
	Category Category `json:"category"`
	Offset   int      `json:"offset"`
	Length   int      `json:"length"`
}

// EqualFold compares categories ignoring case.
func (c Category) EqualFold(o Category) bool {
	return strings.EqualFold(string(c), string(o))
}

// Spans projects candidates back onto their spans.
func Spans(candidates []Candidate) []Span {
	if len(candidates) == 0 {
		return nil
	}
	res := make([]Span, len(candidates))
	for i, c := range candidates {
		res[i] = c.Span
	}
	return res
}

// TouchesAny reports whether [start, end] touches any of spans.
func TouchesAny(spans []Span, start, end int) bool {
	for _, s := range spans {
		if s.Touches(start, end) {
			return true
		}
	}
	return false
}

// Contains reports whether spans holds an exact (category, start, end) match.
func Contains(spans []Span, key Key) bool {
	for _, s := range spans {
		if s.Key() == key {
			return true
		}
	}
	return false
}
