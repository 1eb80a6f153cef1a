package corpus

import (
	"strings"

	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
)

const Language = "en-us"

// Utterance is one LUIS training example.
type Utterance struct {
	Intent   string          `json:"intent"`
	Language string          `json:"language"`
	Text     string          `json:"text"`
	Entities []entity.Entity `json:"entities"`
}

// Dedupe keeps the first utterance for each (text, intent) pair. Texts are
// compared lowercased with whitespace collapsed. It also returns how many were removed.
func Dedupe(utterances []Utterance) ([]Utterance, int) {
	type key struct {
		text   string
		intent string
	}
	seen := make(map[key]bool, len(utterances))
	res := make([]Utterance, 0, len(utterances))
	for _, u := range utterances {
		k := key{strings.ToLower(strings.Join(strings.Fields(u.Text), " ")), u.Intent}
		if seen[k] {
			continue
		}
		seen[k] = true
		res = append(res, u)
	}
	return res, len(utterances) - len(res)
}
