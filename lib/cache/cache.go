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

package cache

import (
	"crypto/sha1"
	"encoding/hex"

	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
)

type Type string

const (
	None          Type = "none"
	Local         Type = "local"
	Redis         Type = "redis"
	Elasticsearch Type = "elasticsearch"
)

// Entry is the value we will store in the cache.
type Entry struct {
	Fingerprint string          `json:"fingerprint"`
	Text        string          `json:"text"`
	Entities    []entity.Entity `json:"entities"`
}

// Client stores annotation results. Get returns nil, nil on a miss.
type Client interface {
	Get(key string) (*Entry, error)
	Set(key string, entry *Entry) error
	Ready() bool
}

// Key addresses the annotation of text under the configuration identified by fingerprint.
func Key(fingerprint, text string) string {
	h := sha1.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
