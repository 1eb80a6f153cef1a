package model

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/text"
)

// Prose runs the prose NER model in process. prose does not report character
// offsets or a dependency parse, so entity offsets are recovered by searching
// the text, tokens come from the unicode word segmenter and Head is left empty.
type Prose struct {
	mut *sync.Mutex
}

func NewProse() *Prose {
	return &Prose{mut: &sync.Mutex{}}
}

func (p *Prose) Annotate(ctx context.Context, s string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mut.Lock()
	doc, err := prose.NewDocument(s, prose.WithSegmentation(false))
	p.mut.Unlock()
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}

	u := text.NewUtterance(s)
	res := &Document{}

	cursor := 0
	for _, e := range doc.Entities() {
		start, end, ok := u.Index(e.Text, cursor)
		if !ok {
			start, end, ok = u.Index(e.Text, 0)
		}
		if !ok {
			continue
		}
		res.Entities = append(res.Entities, Entity{
			Label: e.Label,
			Start: start,
			End:   end + 1,
			Text:  e.Text,
		})
		cursor = end + 1
	}

	tokens, err := text.Tokenize(u)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	// prose has no dependency parser, so Head stays empty.
	res.Tokens = make([]Token, len(tokens))
	for i, t := range tokens {
		res.Tokens[i] = Token{
			Text:    t.Text,
			Start:   t.Start,
			End:     t.End,
			Lemma:   strings.ToLower(t.Text),
			LikeNum: t.LikeNum(),
			EntType: entityAt(res.Entities, t.Start),
		}
	}

	return res, nil
}

func entityAt(entities []Entity, offset int) string {
	for _, e := range entities {
		if e.Start <= offset && offset < e.End {
			return e.Label
		}
	}
	return ""
}
