package text

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var TokenDelimiters = map[byte]struct{}{
	'(':  {},
	')':  {},
	'{':  {},
	'}':  {},
	'[':  {},
	']':  {},
	'"':  {},
	'\'': {},
	':':  {},
	';':  {},
	',':  {},
	'.':  {},
	'?':  {},
	'!':  {},
}

func IsTokenDelimiter(b byte) bool {
	_, ok := TokenDelimiters[b]
	return ok
}

var folder = cases.Fold()

// NormalizeToken strips one enclosing delimiter from either end of token and
// returns its NFKC case folded form.
func NormalizeToken(token string) string {
	if len(token) == 0 {
		return ""
	} else if len(token) == 1 && IsTokenDelimiter(token[0]) {
		return ""
	}

	if IsTokenDelimiter(token[0]) {
		token = token[1:]
	}
	if len(token) > 0 && IsTokenDelimiter(token[len(token)-1]) {
		token = token[:len(token)-1]
	}

	return folder.String(norm.NFKC.String(token))
}

// Fold is the comparison form of a phrase: NFKC, case folded and with runs of
// whitespace collapsed to one space.
func Fold(s string) string {
	return strings.Join(strings.Fields(folder.String(norm.NFKC.String(s))), " ")
}

// Words splits s on whitespace and normalises every word.
func Words(s string) []string {
	fields := strings.Fields(s)
	res := make([]string, 0, len(fields))
	for _, f := range fields {
		if n := NormalizeToken(f); n != "" {
			res = append(res, n)
		}
	}
	return res
}
