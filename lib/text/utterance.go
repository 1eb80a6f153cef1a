package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Utterance wraps a piece of text with the bookkeeping needed to move between
// byte offsets (what regexp and friends report) and rune offsets (what we emit).
type Utterance struct {
	text  string
	runes []rune
	index []int

	lower      string
	lowerIndex []int
}

func NewUtterance(s string) *Utterance {
	u := &Utterance{text: s}
	u.runes, u.index = runeIndex(s)
	u.lower = strings.Map(unicode.ToLower, s)
	_, u.lowerIndex = runeIndex(u.lower)
	return u
}

// runeIndex maps every byte offset of s (and len(s)) onto the rune it belongs to.
func runeIndex(s string) ([]rune, []int) {
	runes := make([]rune, 0, utf8.RuneCountInString(s))
	index := make([]int, len(s)+1)
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		for j := 0; j < w; j++ {
			index[i+j] = len(runes)
		}
		runes = append(runes, r)
		i += w
	}
	index[len(s)] = len(runes)
	return runes, index
}

func (u *Utterance) String() string {
	return u.text
}

// Lower is the text lowercased rune by rune, so rune offsets are shared with String.
func (u *Utterance) Lower() string {
	return u.lower
}

// Len is the length in runes.
func (u *Utterance) Len() int {
	return len(u.runes)
}

func (u *Utterance) RuneAt(i int) (rune, bool) {
	if i < 0 || i >= len(u.runes) {
		return 0, false
	}
	return u.runes[i], true
}

// RuneOffset converts a byte offset into String to a rune offset.
func (u *Utterance) RuneOffset(b int) int {
	return clampIndex(u.index, b)
}

// LowerRuneOffset converts a byte offset into Lower to a rune offset.
func (u *Utterance) LowerRuneOffset(b int) int {
	return clampIndex(u.lowerIndex, b)
}

func clampIndex(index []int, b int) int {
	switch {
	case b < 0:
		return 0
	case b >= len(index):
		return index[len(index)-1]
	}
	return index[b]
}

// Slice returns runes [start, end). Out of range bounds are clamped.
func (u *Utterance) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(u.runes) {
		end = len(u.runes)
	}
	if start >= end {
		return ""
	}
	return string(u.runes[start:end])
}

// Window returns the text around the inclusive span [start, end], radius runes either side.
// The rune at end+radius is not included.
func (u *Utterance) Window(start, end, radius int) string {
	return u.Slice(start-radius, end+radius)
}

// Before returns up to n runes immediately preceding start.
func (u *Utterance) Before(start, n int) string {
	return u.Slice(start-n, start)
}

// IndexFold finds the first case-insensitive occurrence of sub at or after the
// rune offset from. It returns inclusive rune offsets.
func (u *Utterance) IndexFold(sub string, from int) (start, end int, ok bool) {
	return u.indexIn(u.lower, u.lowerIndex, strings.Map(unicode.ToLower, sub), from)
}

// Index is the case-sensitive version of IndexFold.
func (u *Utterance) Index(sub string, from int) (start, end int, ok bool) {
	return u.indexIn(u.text, u.index, sub, from)
}

func (u *Utterance) indexIn(s string, index []int, sub string, from int) (int, int, bool) {
	if sub == "" || from >= len(u.runes) {
		return 0, 0, false
	}
	if from < 0 {
		from = 0
	}
	// first byte belonging to rune `from`
	b := 0
	for b < len(s) && index[b] < from {
		b++
	}
	i := strings.Index(s[b:], sub)
	if i < 0 {
		return 0, 0, false
	}
	i += b
	return index[i], index[i+len(sub)] - 1, true
}
