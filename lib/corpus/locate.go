package corpus

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/text"
)

// DefaultAirports maps IATA city and airport codes to the city name used in utterances.
var DefaultAirports = map[string]string{
	"LON": "London",
	"NYC": "New York",
	"SFO": "San Francisco",
	"SEA": "Seattle",
	"CHI": "Chicago",
	"BOS": "Boston",
	"ATL": "Atlanta",
	"DFW": "Dallas",
	"DEN": "Denver",
	"MIA": "Miami",
	"LAX": "Los Angeles",
	"PAR": "Paris",
	"BER": "Berlin",
	"ROM": "Rome",
	"AMS": "Amsterdam",
	"BKK": "Bangkok",
	"HKG": "Hong Kong",
	"DEL": "Delhi",
	"DXB": "Dubai",
	"SYD": "Sydney",
}

// minSimilarity is the lowest difflib ratio accepted for a single-word match.
const minSimilarity = 0.8

/**
	Locate finds value in u and returns its inclusive rune offsets. It tries, in order:

	1. a case-insensitive exact match
	2. the words of value separated by any whitespace
	3. the same for the city an IATA code in airports stands for
	4. the single word of u most similar to value, if similar enough
**/
func Locate(u *text.Utterance, value string, airports map[string]string) (start, end int, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" || u.Len() == 0 {
		return 0, 0, false
	}

	if start, end, ok := u.IndexFold(value, 0); ok {
		return start, end, true
	}

	if start, end, ok := wordSequence(u, value); ok {
		return start, end, true
	}

	normValue := text.Fold(value)
	if city, found := airports[strings.ToUpper(value)]; found && strings.ToLower(city) != normValue {
		if start, end, ok := wordSequence(u, city); ok {
			return start, end, true
		}
	}

	if word, found := closestWord(u, normValue); found {
		return u.IndexFold(word, 0)
	}
	return 0, 0, false
}

func wordSequence(u *text.Utterance, value string) (int, int, bool) {
	words := strings.Fields(value)
	if len(words) == 0 {
		return 0, 0, false
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	re, err := regexp.Compile(`(?i)\b` + strings.Join(quoted, `\s+`) + `\b`)
	if err != nil {
		return 0, 0, false
	}
	loc := re.FindStringIndex(u.String())
	if loc == nil {
		return 0, 0, false
	}
	return u.RuneOffset(loc[0]), u.RuneOffset(loc[1]) - 1, true
}

// closestWord returns the normalised word of u with the highest similarity to
// value, ties going to the word that sorts last.
func closestWord(u *text.Utterance, value string) (string, bool) {
	target := runeStrings(value)
	best, bestScore := "", 0.0
	for _, w := range text.Words(u.String()) {
		score := difflib.NewMatcher(target, runeStrings(w)).Ratio()
		if score < minSimilarity {
			continue
		}
		if score > bestScore || (score == bestScore && w > best) {
			best, bestScore = w, score
		}
	}
	return best, best != ""
}

func runeStrings(s string) []string {
	res := make([]string, 0, len(s))
	for _, r := range s {
		res = append(res, string(r))
	}
	return res
}
