package testhelpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/cache"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/model"
)

func Span(category entity.Category, start, end int, text string) entity.Span {
	return entity.Span{Category: category, Start: start, End: end, Text: text}
}

func Cand(category entity.Category, start, end int) entity.Candidate {
	return entity.Candidate{Span: entity.Span{Category: category, Start: start, End: end}}
}

func Cands(spans ...entity.Span) []entity.Candidate {
	res := make([]entity.Candidate, len(spans))
	for i, s := range spans {
		res[i] = entity.Candidate{Span: s}
	}
	return res
}

// StubDates is a DateParser returning a fixed set of matches.
type StubDates []string

func (s StubDates) Parse(string, time.Time) ([]string, error) {
	return s, nil
}

// FailingDates is a DateParser that always errors.
type FailingDates struct {
	Err error
}

func (f FailingDates) Parse(string, time.Time) ([]string, error) {
	return nil, f.Err
}

type MockModel struct {
	mock.Mock
}

func (m *MockModel) Annotate(ctx context.Context, text string) (*model.Document, error) {
	args := m.Called(ctx, text)
	doc, _ := args.Get(0).(*model.Document)
	return doc, args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string) (*cache.Entry, error) {
	args := m.Called(key)
	entry, _ := args.Get(0).(*cache.Entry)
	return entry, args.Error(1)
}

func (m *MockCache) Set(key string, entry *cache.Entry) error {
	args := m.Called(key, entry)
	return args.Error(0)
}

func (m *MockCache) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}
