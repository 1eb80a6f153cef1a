package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/annotator"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/cache"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/cache/local"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/cache/remote"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/metrics"
)

// config structure
type annotationAPIConfig struct {
	lib.BaseConfig      `mapstructure:",squash"`
	lib.LabellingConfig `mapstructure:",squash"`
	Server              struct {
		HttpPort     int      `mapstructure:"http_port"`
		AllowOrigins []string `mapstructure:"allow_origins"`
	}
	Cache struct {
		Type          cache.Type
		Redis         remote.RedisConfig
		Elasticsearch remote.ElasticsearchConfig
	}
}

var config annotationAPIConfig

func initConfig() {
	err := lib.InitializeConfig("./config/annotation-api.yml", map[string]interface{}{
		"log_level": "info",
		"server": map[string]interface{}{
			"http_port":     8080,
			"allow_origins": []string{"*"},
		},
		"cache": map[string]interface{}{
			"type": cache.None,
		},
		"model": map[string]interface{}{
			"type": lib.ModelProse,
		},
	}, &config)
	if err != nil {
		panic(err)
	}
}

func newCache() (cache.Client, error) {
	switch config.Cache.Type {
	case cache.Local:
		return local.New(), nil
	case cache.Redis:
		return remote.NewRedisClient(config.Cache.Redis), nil
	case cache.Elasticsearch:
		return remote.NewElasticsearchClient(config.Cache.Elasticsearch)
	case cache.None, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", config.Cache.Type)
	}
}

func main() {
	initConfig()
	m := metrics.New()

	a, closeModel, err := lib.NewAnnotator(config.LabellingConfig, annotator.WithObserver(m))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build annotator")
	}

	cacheClient, err := newCache()
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	if cacheClient != nil && !cacheClient.Ready() {
		log.Warn().Str("cache", string(config.Cache.Type)).Msg("cache is not ready, lookups will fail until it is")
	}

	r := gin.New()
	r.Use(
		lib.RequestID(),
		gin.LoggerWithFormatter(lib.JsonLogFormatter),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins: config.Server.AllowOrigins,
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Origin", "Content-Type", "X-Request-Id"},
		}),
	)

	s := server{
		controller: controller{
			annotator: a,
			cache:     cacheClient,
			metrics:   m,
		},
		metrics: m.Handler(),
	}
	s.RegisterRoutes(r)

	go lib.HandleInterrupt(closeModel)

	if err := r.Run(fmt.Sprintf(":%d", config.Server.HttpPort)); err != nil {
		closeModel()
		log.Fatal().Err(err).Send()
	}
}
