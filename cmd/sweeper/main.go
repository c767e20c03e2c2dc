package main

import (
	"context"
	"flag"
	"mariachi/config"
	"mariachi/di"
	"mariachi/shared/logger"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	timeout := flag.Duration("timeout", time.Duration(cfg.Sweeper.TimeoutSeconds)*time.Second, "maximum duration of the sweep")
	flag.Parse()

	logger.InitLogger()

	logger.Configure(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := di.InitializeSweeper().Sweep(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Lifecycle sweep failed")
	}

	log.Info().
		Int("finalized", res.Finalized).
		Strs("reservation_ids", res.ReservationIDs).
		Msg("Lifecycle sweep completed")
}
