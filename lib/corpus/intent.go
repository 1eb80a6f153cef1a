package corpus

import "strings"

var DefaultIntentMap = map[string]string{
	"book":     "BookFlight",
	"inform":   "ProvideInfo",
	"offer":    "OfferFlight",
	"request":  "RequestInfo",
	"confirm":  "ConfirmBooking",
	"greet":    "Greet",
	"thankyou": "ThankYou",
	"select":   "SelectOption",
	"deny":     "DenyRequest",
	"ack":      "Acknowledge",
}

const DefaultIntent = "BookFlight"

// checked in order, substring match on the lowercased text
var intentKeywords = []struct {
	intent   string
	keywords []string
}{
	{"BookFlight", []string{"book", "reserve", "purchase", "buy", "ticket"}},
	{"RequestInfo", []string{"price", "cost", "fare", "quote", "how much", "budget", "$"}},
	{"Greet", []string{"hello", "hi", "good morning", "hey"}},
	{"ThankYou", []string{"thanks", "thank you"}},
}

// Intent maps the first frame action whose kind, or kind prefix before "_",
// is in intents. Turns without a mapped action fall back to keywords.
func Intent(t Turn, intents map[string]string) string {
	for _, f := range t.Frames {
		for _, a := range f.Actions {
			kind := a.Kind()
			if kind == "" {
				continue
			}
			if intent, ok := intents[kind]; ok {
				return intent
			}
			if intent, ok := intents[strings.SplitN(kind, "_", 2)[0]]; ok {
				return intent
			}
		}
	}
	return keywordIntent(t.Text)
}

func keywordIntent(s string) string {
	s = strings.ToLower(s)
	for _, k := range intentKeywords {
		for _, w := range k.keywords {
			if strings.Contains(s, w) {
				return k.intent
			}
		}
	}
	return DefaultIntent
}
