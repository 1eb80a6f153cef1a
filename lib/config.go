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

package lib

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/annotator"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/entity"
)

const configFlag = "config"

type BaseConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// LabellingConfig is embedded by every app that builds an Annotator.
type LabellingConfig struct {
	Annotator  annotator.Config    `mapstructure:"annotator"`
	// Priorities is a list because viper lowercases map keys.
	Priorities []entity.Ranked     `mapstructure:"priorities"`
	Resources  annotator.Resources `mapstructure:"resources"`
	Model      ModelConfig         `mapstructure:"model"`
}

type ModelConfig struct {
	// Type is one of none, prose or grpc.
	Type string
	Host string
	Port int
}

/**
	InitializeConfig loads an app's config.

	The yml file is found at defaultPath unless the --config flag names another one.
	Keys on defaultConfig that are missing from the file are still set.

	Env vars override config keys that viper knows about, uppercased with "." replaced
	by "_": ANNOTATOR_EXTRACTOR_TIMEOUT sets annotator.extractor_timeout.

	targetStruct must be a pointer. log_level is applied to zerolog before returning.
**/
func InitializeConfig(defaultPath string, defaultConfig map[string]interface{}, targetStruct interface{}) error {

	pflag.String(configFlag, defaultPath, "The config file path.")
	pflag.Parse()

	err := viper.BindPFlags(pflag.CommandLine)
	if err != nil {
		return err
	}

	configFile := viper.GetString(configFlag)
	if !filepath.IsAbs(configFile) {
		configFile, err = filepath.Abs(configFile)
		if err != nil {
			return err
		}
	}

	for k, v := range defaultConfig {
		viper.SetDefault(k, v)
	}

	viper.SetConfigName(strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile)))
	viper.AddConfigPath(filepath.Dir(configFile))

	// an env var is only read if viper already knows the key
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		log.Warn().Err(err).Msg("default settings applied")
	} else if err != nil {
		return err
	}

	var bc BaseConfig
	if err := viper.Unmarshal(&bc); err != nil {
		return err
	}

	lvl, err := zerolog.ParseLevel(bc.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)

	return viper.Unmarshal(targetStruct)
}
