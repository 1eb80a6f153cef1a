package text

import (
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/segment"
)

type TokenKind int

const (
	Punct TokenKind = iota
	Number
	Word
)

// Token is a word segment. Start is inclusive and End exclusive, both in runes.
type Token struct {
	Text  string
	Start int
	End   int
	Kind  TokenKind
}

// LikeNum is true for tokens the segmenter classified as numbers.
func (t Token) LikeNum() bool {
	return t.Kind == Number
}

/**
	Tokenize splits the utterance into unicode word segments (UAX#29) and
	records each token's rune offsets. Whitespace is dropped, punctuation is
	kept as single character tokens so that neighbour lookups see it.
**/
func Tokenize(u *Utterance) ([]Token, error) {
	segmenter := segment.NewWordSegmenterDirect([]byte(u.String()))

	var tokens []Token
	position := 0
	for segmenter.Segment() {
		b := segmenter.Bytes()
		n := utf8.RuneCount(b)

		kind := Word
		switch segmenter.Type() {
		case segment.None:
			kind = Punct
		case segment.Number:
			kind = Number
		}

		if kind != Punct || !isWhitespace(b) {
			tokens = append(tokens, Token{
				Text:  string(b),
				Start: position,
				End:   position + n,
				Kind:  kind,
			})
		}
		position += n
	}

	if err := segmenter.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func isWhitespace(b []byte) bool {
	for _, r := range string(b) {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
