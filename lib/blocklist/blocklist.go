/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package blocklist

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gopkg.in/yaml.v2"
)

// DefaultCategories are never emitted: NER labels that are not travel slots and
// generic nouns that statistical models like to tag.
var DefaultCategories = []string{
	"EVENT", "FAC", "LAW", "PRODUCT", "NORP", "PERCENT", "PERSON", "WORK_OF_ART",
	"Act", "Action", "Agent", "Airline", "Airlines", "Class", "Classes", "Confirmation",
	"Email", "Emails", "Flight", "Flights", "Meal", "Meals", "Name", "Names",
	"Preference", "Preferences", "Seat", "Seats", "Status", "Statuses", "Ticket", "Tickets",
	"Type", "Types", "Value", "Values",
}

type Blocklist struct {
	CaseSensitive   map[string]bool
	CaseInsensitive map[string]bool
}

func Default() *Blocklist {
	b := &Blocklist{
		CaseSensitive:   map[string]bool{},
		CaseInsensitive: make(map[string]bool, len(DefaultCategories)),
	}
	for _, c := range DefaultCategories {
		b.CaseInsensitive[strings.ToLower(c)] = true
	}
	return b
}

// Allowed returns true if term is not blocklisted.
func (blocklist Blocklist) Allowed(term string) bool {
	if _, ok := blocklist.CaseSensitive[term]; ok {
		return false
	}

	if _, ok := blocklist.CaseInsensitive[strings.ToLower(term)]; ok {
		return false
	}

	return true
}

// AllowedCategory is Allowed with case ignored for both lists.
func (blocklist Blocklist) AllowedCategory(c entity.Category) bool {
	if !blocklist.Allowed(string(c)) {
		return false
	}
	for term := range blocklist.CaseSensitive {
		if c.EqualFold(entity.Category(term)) {
			return false
		}
	}
	return true
}

// FilterEntities drops entities whose category is blocklisted.
func (blocklist Blocklist) FilterEntities(entities []entity.Entity) []entity.Entity {
	res := make([]entity.Entity, 0, len(entities))
	for _, e := range entities {
		if blocklist.AllowedCategory(e.Category) {
			res = append(res, e)
		}
	}
	return res
}

// FilterCandidates drops candidates whose category is blocklisted.
func (blocklist Blocklist) FilterCandidates(candidates []entity.Candidate) []entity.Candidate {
	res := make([]entity.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if blocklist.AllowedCategory(c.Category) {
			res = append(res, c)
		}
	}
	return res
}

// Load returns an unmarshalled blocklist from a YAML file at the given path.
func Load(path string) (*Blocklist, error) {

	bytes, err := ioutil.ReadFile(path)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("could not find blocklist at %v", path))
		return nil, err
	}

	type yamlBlocklist struct {
		CaseSensitive   []string `yaml:"case_sensitive"`
		CaseInsensitive []string `yaml:"case_insensitive"`
	}

	yamlBl := yamlBlocklist{}
	if err := yaml.Unmarshal(bytes, &yamlBl); err != nil {
		log.Error().Msg(fmt.Sprintf("could not load blocklist from %v", path))
		return nil, err
	}

	res := Blocklist{
		CaseSensitive:   map[string]bool{},
		CaseInsensitive: map[string]bool{},
	}

	for _, v := range yamlBl.CaseSensitive {
		res.CaseSensitive[v] = true
	}
	for _, v := range yamlBl.CaseInsensitive {
		res.CaseInsensitive[strings.ToLower(v)] = true
	}

	log.Info().Msg(fmt.Sprintf("blocklist set from %v", path))

	return &res, nil
}
