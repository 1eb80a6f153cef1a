package lib

import (
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/extractor"
	"gopkg.in/yaml.v2"
)

type config struct {
	LabellingConfig `mapstructure:",squash"`
	Server          struct {
		Port int
	}
	KeyNotInConfigMap string
}

var configFileName string

func TestMain(m *testing.M) {
	configMap := map[string]interface{}{
		"log_level": "info",
		"server": map[string]interface{}{
			"port": 8080,
		},
		"priorities": []map[string]interface{}{
			{"category": "Date", "priority": 100},
			{"category": "Location", "priority": 70},
		},
		"annotator": map[string]interface{}{
			"extractor_timeout": "250ms",
			"gazetteer":         []string{"lisbon"},
			"patterns": []map[string]interface{}{
				{"category": "AirportCode", "pattern": `\b[A-Z]{3}\b`},
			},
		},
		"model": map[string]interface{}{
			"type": "none",
		},
	}

	filename, err := createConfigFile(configMap, ".", "*.yml")
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Remove(filename)
	os.Exit(code)
}

func TestInitializeConfigFromPath(t *testing.T) {
	reset()

	var parsedConfig config
	err := InitializeConfig(configFileName, map[string]interface{}{}, &parsedConfig)

	assert.NoError(t, err)
	assert.Equal(t, 8080, parsedConfig.Server.Port)
	assert.Equal(t, 250*time.Millisecond, parsedConfig.Annotator.ExtractorTimeout)
	assert.Equal(t, []string{"lisbon"}, parsedConfig.Annotator.Gazetteer)
	assert.Equal(t, []extractor.PatternRule{{Category: entity.AirportCode, Pattern: `\b[A-Z]{3}\b`}}, parsedConfig.Annotator.Patterns)
	assert.Equal(t, []entity.Ranked{
		{Category: entity.Date, Priority: 100},
		{Category: entity.Location, Priority: 70},
	}, parsedConfig.Priorities)
	assert.Equal(t, ModelNone, parsedConfig.Model.Type)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	reset()

	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("MODEL_TYPE", ModelProse)
	os.Setenv("KEYNOTINCONFIGMAP", "anewvalue")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("MODEL_TYPE")
		os.Unsetenv("KEYNOTINCONFIGMAP")
	}()

	var parsedConfig config
	err := InitializeConfig(configFileName, map[string]interface{}{}, &parsedConfig)

	assert.NoError(t, err)
	assert.Equal(t, 9090, parsedConfig.Server.Port)
	assert.Equal(t, ModelProse, parsedConfig.Model.Type)

	// If an env var does not exist in the config map, viper will not parse it
	assert.Equal(t, "", parsedConfig.KeyNotInConfigMap)
}

func TestInitializeConfigDefaults(t *testing.T) {
	reset()

	var parsedConfig config
	err := InitializeConfig("missing/config.yml", map[string]interface{}{
		"log_level": "warn",
		"server": map[string]interface{}{
			"port": 1234,
		},
	}, &parsedConfig)

	assert.NoError(t, err)
	assert.Equal(t, 1234, parsedConfig.Server.Port)
}

func TestInitializeConfigBadLogLevel(t *testing.T) {
	reset()

	var parsedConfig config
	err := InitializeConfig("missing/config.yml", map[string]interface{}{"log_level": "loud"}, &parsedConfig)
	assert.Error(t, err)
}

func createConfigFile(configMap map[string]interface{}, path, name string) (fileName string, err error) {
	file, err := ioutil.TempFile(path, name)
	if err != nil {
		return "", err
	}
	configFileName = file.Name()

	data, err := yaml.Marshal(&configMap)
	if err != nil {
		panic(err)
	}

	if err := ioutil.WriteFile(configFileName, data, 0644); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func reset() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}
