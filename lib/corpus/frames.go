// Package corpus turns a Frames-style dialogue dataset into LUIS training utterances.
package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"
)

type Conversation struct {
	Turns []Turn `json:"turns"`
}

type Turn struct {
	Speaker string  `json:"speaker"`
	Author  string  `json:"author"`
	Text    string  `json:"text"`
	Frames  []Frame `json:"frames"`
}

// IsUser reports whether the turn was written by the user rather than the agent.
func (t Turn) IsUser() bool {
	who := t.Speaker
	if who == "" {
		who = t.Author
	}
	return strings.ToLower(who) == "user"
}

type Action struct {
	Act  string `json:"act"`
	Type string `json:"type"`
	Name string `json:"name"`
}

func (a Action) Kind() string {
	return strings.ToLower(strings.TrimSpace(firstNonEmpty(a.Act, a.Type, a.Name)))
}

// Frame slots may be listed under info, slots or attributes. Anything that is
// not a list there is ignored.
type Frame struct {
	Actions    []Action        `json:"actions"`
	Info       json.RawMessage `json:"info"`
	Slots      json.RawMessage `json:"slots"`
	Attributes json.RawMessage `json:"attributes"`
}

func (f Frame) SlotList() []Slot {
	for _, raw := range []json.RawMessage{f.Info, f.Slots, f.Attributes} {
		if !isArray(raw) {
			continue
		}
		var slots []Slot
		if err := json.Unmarshal(raw, &slots); err != nil {
			return nil
		}
		return slots
	}
	return nil
}

type Slot struct {
	SlotName  string      `json:"slot"`
	Name      string      `json:"name"`
	Key       string      `json:"key"`
	Label     string      `json:"label"`
	Value     interface{} `json:"value"`
	Text      interface{} `json:"text"`
	Values    interface{} `json:"values"`
	ValueText interface{} `json:"valueText"`
}

// Category is the lowercased slot name.
func (s Slot) Category() string {
	return strings.ToLower(firstNonEmpty(s.SlotName, s.Name, s.Key, s.Label))
}

// ValueString returns the first set value field; of a list, its first element.
func (s Slot) ValueString() (string, bool) {
	var v interface{}
	for _, candidate := range []interface{}{s.Value, s.Text, s.Values, s.ValueText} {
		if truthy(candidate) {
			v = candidate
			break
		}
	}
	if l, ok := v.([]interface{}); ok {
		v = l[0]
	}

	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return fmt.Sprint(val), true
	}
}

// Load reads a dataset that is either a list of conversations or an object
// holding one under "conversations". Entries that are not objects are skipped.
func Load(r io.Reader) ([]Conversation, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	trimmed := bytes.TrimSpace(b)
	switch {
	case bytes.HasPrefix(trimmed, []byte("[")):
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
	case bytes.HasPrefix(trimmed, []byte("{")):
		var dataset struct {
			Conversations []json.RawMessage `json:"conversations"`
		}
		if err := json.Unmarshal(trimmed, &dataset); err != nil {
			return nil, err
		}
		items = dataset.Conversations
	default:
		return nil, fmt.Errorf("dataset must be a json list or object")
	}

	res := make([]Conversation, 0, len(items))
	for _, item := range items {
		if !bytes.HasPrefix(bytes.TrimSpace(item), []byte("{")) {
			continue
		}
		var c Conversation
		if err := json.Unmarshal(item, &c); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

// UserTurns returns the user turns with non-blank text, in dataset order.
func UserTurns(conversations []Conversation) []Turn {
	var res []Turn
	for _, c := range conversations {
		for _, t := range c.Turns {
			if !t.IsUser() || strings.TrimSpace(t.Text) == "" {
				continue
			}
			res = append(res, t)
		}
	}
	return res
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0
	case bool:
		return val
	case []interface{}:
		return len(val) > 0
	case map[string]interface{}:
		return len(val) > 0
	}
	return true
}

func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}
