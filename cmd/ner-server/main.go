package main

import (
	"fmt"
	"net"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/model"
	grpc_model "gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/model/grpc-model"
	"google.golang.org/grpc"
)

// config structure
type nerServerConfig struct {
	lib.BaseConfig `mapstructure:",squash"`
	Server         struct {
		GrpcPort int `mapstructure:"grpc_port"`
	}
}

var config nerServerConfig

func initConfig() {
	err := lib.InitializeConfig("./config/ner-server.yml", map[string]interface{}{
		"log_level": "info",
		"server": map[string]interface{}{
			"grpc_port": 50051,
		},
	}, &config)
	if err != nil {
		panic(err)
	}
}

func main() {
	initConfig()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.Server.GrpcPort))
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	s := grpc.NewServer()
	grpc_model.Register(s, model.NewProse())

	go lib.HandleInterrupt(s.GracefulStop)

	log.Info().Int("port", config.Server.GrpcPort).Msg("serving entity model")
	if err := s.Serve(lis); err != nil {
		log.Fatal().Err(err).Send()
	}
}
