package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/annotator"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/cache"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/metrics"
)

type controller struct {
	annotator *annotator.Annotator
	// nil when caching is disabled
	cache   cache.Client
	metrics *metrics.Metrics
}

type extractorResult struct {
	Source     string             `json:"source"`
	Error      string             `json:"error,omitempty"`
	Candidates []entity.Candidate `json:"candidates"`
}

// Annotate returns the entities of text, from the cache when possible.
// Cache failures only cost a recomputation.
func (c controller) Annotate(ctx context.Context, text string) []entity.Entity {
	if c.cache == nil {
		return c.annotate(ctx, text)
	}

	key := cache.Key(c.annotator.Fingerprint(), text)
	entry, err := c.cache.Get(key)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("cache lookup failed")
		c.metrics.CacheError()
	case entry != nil:
		c.metrics.CacheHit()
		return entry.Entities
	default:
		c.metrics.CacheMiss()
	}

	entities := c.annotate(ctx, text)
	err = c.cache.Set(key, &cache.Entry{
		Fingerprint: c.annotator.Fingerprint(),
		Text:        text,
		Entities:    entities,
	})
	if err != nil {
		log.Warn().Err(err).Msg("cache write failed")
		c.metrics.CacheError()
	}
	return entities
}

func (c controller) annotate(ctx context.Context, text string) []entity.Entity {
	entities := c.annotator.Annotate(ctx, text)
	c.metrics.Labelled(1)
	return entities
}

// Candidates exposes every extractor's proposals before merging.
func (c controller) Candidates(ctx context.Context, text string) []extractorResult {
	results := c.annotator.Candidates(ctx, text)
	res := make([]extractorResult, len(results))
	for i, r := range results {
		res[i] = extractorResult{
			Source:     r.Source,
			Candidates: r.Candidates,
		}
		if r.Err != nil {
			res[i].Error = r.Err.Error()
		}
		if res[i].Candidates == nil {
			res[i].Candidates = []entity.Candidate{}
		}
	}
	return res
}

func (c controller) Categories() []entity.Ranked {
	return c.annotator.Categories()
}
