package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/annotator"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/corpus"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/metrics"
)

// config structure
type labellerConfig struct {
	lib.BaseConfig      `mapstructure:",squash"`
	lib.LabellingConfig `mapstructure:",squash"`
	Input               string
	Output              string
	Workers             int
}

var config labellerConfig

func initConfig() {
	err := lib.InitializeConfig("./config/labeller.yml", map[string]interface{}{
		"log_level": "info",
		"input":     "./data/frames.json",
		"output":    "./data/luis_flight_booking.json",
		"workers":   4,
		"model": map[string]interface{}{
			"type": lib.ModelProse,
		},
	}, &config)
	if err != nil {
		panic(err)
	}
}

func main() {
	initConfig()

	m := metrics.New()
	a, closeModel, err := lib.NewAnnotator(config.LabellingConfig, annotator.WithObserver(m))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build annotator")
	}
	defer closeModel()

	in, err := os.Open(config.Input)
	if err != nil {
		log.Fatal().Err(err).Str("path", config.Input).Send()
	}
	defer in.Close()

	out, err := os.Create(config.Output)
	if err != nil {
		log.Fatal().Err(err).Str("path", config.Output).Send()
	}
	defer out.Close()

	l := labeller{
		labeller: corpus.NewLabeller(a, nil, nil),
		metrics:  m,
		workers:  config.Workers,
	}
	written, removed, err := l.Run(context.Background(), in, out)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	log.Info().Int("written", written).Int("duplicates", removed).Str("path", config.Output).Msg("utterances written")

	summary, err := m.Summary()
	if err != nil {
		log.Warn().Err(err).Msg("could not gather metrics")
		return
	}
	ev := log.Info()
	for k, v := range summary {
		ev = ev.Float64(k, v)
	}
	ev.Msg("labelling metrics")
}
