package lib

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

// HandleInterrupt blocks until SIGINT or SIGTERM, runs cleanup and exits.
func HandleInterrupt(cleanup func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	if cleanup != nil {
		cleanup()
	}
	log.Fatal().Str("signal", sig.String()).Msg("process interrupted")
}
