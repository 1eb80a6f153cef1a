package annotator

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/blocklist"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/extractor"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/model"
	"gopkg.in/yaml.v2"
)

// Config is read once and never mutated by the Annotator. Nil fields take
// the package defaults.
type Config struct {
	Priorities       map[entity.Category]int `mapstructure:"-"`
	Patterns         []extractor.PatternRule `mapstructure:"patterns"`
	Gazetteer        []string                `mapstructure:"gazetteer"`
	CurrencyCues     []string                `mapstructure:"currency_cues"`
	MonthWords       []string                `mapstructure:"month_words"`
	BudgetCues       []string                `mapstructure:"budget_cues"`
	ExtractorTimeout time.Duration           `mapstructure:"extractor_timeout"`

	Blocklist  *blocklist.Blocklist `mapstructure:"-"`
	Model      model.Model          `mapstructure:"-"`
	DateParser extractor.DateParser `mapstructure:"-"`
}

// Resources names the YAML files that can replace the built in tables.
type Resources struct {
	PatternsFile  string `mapstructure:"patterns_file"`
	BlocklistFile string `mapstructure:"blocklist_file"`
	GazetteerFile string `mapstructure:"gazetteer_file"`
}

// Load fills the tables of c from the resource files. A file that does not
// exist leaves the defaults in place; one that exists but cannot be parsed is an error.
func (r Resources) Load(c *Config) error {
	if r.PatternsFile != "" {
		var patterns struct {
			Patterns []extractor.PatternRule `yaml:"patterns"`
		}
		ok, err := readYaml(r.PatternsFile, &patterns)
		if err != nil {
			return err
		} else if ok {
			c.Patterns = patterns.Patterns
		}
	}

	if r.GazetteerFile != "" {
		var gazetteer struct {
			Locations []string `yaml:"locations"`
		}
		ok, err := readYaml(r.GazetteerFile, &gazetteer)
		if err != nil {
			return err
		} else if ok {
			c.Gazetteer = gazetteer.Locations
		}
	}

	if r.BlocklistFile != "" {
		if _, err := os.Stat(r.BlocklistFile); os.IsNotExist(err) {
			log.Warn().Str("path", r.BlocklistFile).Msg("blocklist not found, default categories blocked")
		} else {
			bl, err := blocklist.Load(r.BlocklistFile)
			if err != nil {
				return err
			}
			c.Blocklist = bl
		}
	}

	return nil
}

func readYaml(path string, target interface{}) (bool, error) {
	b, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		log.Warn().Str("path", path).Msg("resource not found, defaults applied")
		return false, nil
	} else if err != nil {
		return false, err
	}
	if err := yaml.Unmarshal(b, target); err != nil {
		return false, err
	}
	log.Info().Str("path", path).Msg("resource loaded")
	return true, nil
}
