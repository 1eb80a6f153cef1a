package lib

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/model"
)

func TestNewModel(t *testing.T) {
	m, closeModel, err := NewModel(ModelConfig{})
	require.Nil(t, err)
	defer closeModel()
	assert.Equal(t, model.Null{}, m)

	m, closeModel, err = NewModel(ModelConfig{Type: ModelProse})
	require.Nil(t, err)
	defer closeModel()
	assert.IsType(t, &model.Prose{}, m)

	_, _, err = NewModel(ModelConfig{Type: "transformer"})
	assert.Error(t, err)
}

func TestNewAnnotator(t *testing.T) {
	a, closeModel, err := NewAnnotator(LabellingConfig{
		Priorities: []entity.Ranked{{Category: entity.Location, Priority: 10}},
	})
	require.Nil(t, err)
	defer closeModel()

	assert.Equal(t, []entity.Ranked{{Category: entity.Location, Priority: 10}}, a.Categories())
	assert.Equal(t,
		[]entity.Entity{{Category: entity.Location, Offset: 3, Length: 5}},
		a.Annotate(context.Background(), "to paris"),
	)
}
