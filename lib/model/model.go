// Package model abstracts the statistical entity recogniser. Offsets in a
// Document are rune offsets, Start inclusive and End exclusive.
package model

import (
	"context"
	"errors"
)

var ErrModelUnavailable = errors.New("entity model unavailable")

type Entity struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type Token struct {
	Text    string `json:"text"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Lemma   string `json:"lemma"`
	Head    string `json:"head"`
	LikeNum bool   `json:"like_num"`
	EntType string `json:"ent_type"`
}

type Document struct {
	Entities []Entity `json:"entities"`
	Tokens   []Token  `json:"tokens"`
}

type Model interface {
	Annotate(ctx context.Context, text string) (*Document, error)
}

// Null stands in when no model is configured. It recognises nothing.
type Null struct{}

func (Null) Annotate(ctx context.Context, _ string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Document{}, nil
}
