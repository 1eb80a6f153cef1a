package lib

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/annotator"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/model"
	grpc_model "gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/model/grpc-model"
)

const (
	ModelNone  = "none"
	ModelProse = "prose"
	ModelGrpc  = "grpc"
)

// NewModel builds the configured statistical model. The returned func releases
// any connection it holds.
func NewModel(conf ModelConfig) (model.Model, func(), error) {
	switch conf.Type {
	case "", ModelNone:
		return model.Null{}, func() {}, nil
	case ModelProse:
		return model.NewProse(), func() {}, nil
	case ModelGrpc:
		client, conn, err := grpc_model.Dial(fmt.Sprintf("%s:%d", conf.Host, conf.Port))
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = conn.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown model type %q", conf.Type)
	}
}

// NewAnnotator loads the resource files, connects the model and builds an Annotator.
func NewAnnotator(conf LabellingConfig, opts ...annotator.Option) (*annotator.Annotator, func(), error) {
	cfg := conf.Annotator
	if len(conf.Priorities) > 0 {
		cfg.Priorities = make(map[entity.Category]int, len(conf.Priorities))
		for _, r := range conf.Priorities {
			cfg.Priorities[r.Category] = r.Priority
		}
	}

	if err := conf.Resources.Load(&cfg); err != nil {
		return nil, nil, err
	}

	m, closeModel, err := NewModel(conf.Model)
	if err != nil {
		return nil, nil, err
	}
	cfg.Model = m

	a, err := annotator.New(cfg, opts...)
	if err != nil {
		closeModel()
		return nil, nil, err
	}
	log.Info().Str("model", conf.Model.Type).Str("fingerprint", a.Fingerprint()).Msg("annotator ready")
	return a, closeModel, nil
}
