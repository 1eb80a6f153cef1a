package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/corpus"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/metrics"
	"golang.org/x/sync/errgroup"
)

type labeller struct {
	labeller *corpus.Labeller
	metrics  *metrics.Metrics
	workers  int
}

// Run labels every user turn of the dataset read from in and writes the
// deduplicated utterances to out, in dataset order.
func (l labeller) Run(ctx context.Context, in io.Reader, out io.Writer) (written, removed int, err error) {
	conversations, err := corpus.Load(in)
	if err != nil {
		return 0, 0, err
	}
	turns := corpus.UserTurns(conversations)
	log.Info().Int("conversations", len(conversations)).Int("turns", len(turns)).Msg("dataset loaded")

	utterances := make([]corpus.Utterance, len(turns))
	g, ctx := errgroup.WithContext(ctx)
	if l.workers > 0 {
		g.SetLimit(l.workers)
	}
	for i, t := range turns {
		i, t := i, t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			utterances[i] = l.labeller.Label(ctx, t)
			l.metrics.Labelled(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	deduped, removed := corpus.Dedupe(utterances)

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(deduped); err != nil {
		return 0, 0, err
	}
	return len(deduped), removed, nil
}
