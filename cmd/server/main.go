package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/drakos74/som-explain/infra/config"
	"github.com/drakos74/som-explain/internal/explain"
	"github.com/drakos74/som-explain/internal/metrics"
	"github.com/drakos74/som-explain/internal/server"
	"github.com/drakos74/som-explain/internal/storage"
	"github.com/drakos74/som-explain/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {

	key := flag.String("config", "explain", "key of the experiment config")
	dir := flag.String("dir", config.Path, "directory of the json configs")
	port := flag.Int("port", 6080, "port to serve the results on")
	debug := flag.Bool("debug", false, "log every request")
	flag.Parse()

	config.Path = *dir
	exp := explain.DefaultExperiment()
	config.MustLoad(*key, &exp)

	ctx, cnl := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cnl()

	results := server.NewResults()
	srv := server.NewServer("som-explain", *port).
		Add(server.Live()).
		Add(results.Routes(*debug)...).
		Handle("/metrics", metrics.Handler())
	if *debug {
		srv.Debug()
	}

	go func() {
		e, err := explain.Prepare(exp)
		if err != nil {
			log.Error().Err(err).Msg("could not prepare experiment")
			return
		}
		e.WithRegistry(json.NewEventRegistry(storage.ResultDir)).
			WithMetrics(metrics.Observer)
		res, err := e.Search(ctx)
		if err != nil {
			log.Error().Err(err).Str("run", e.Run()).Msg("search did not complete")
		}
		if res != nil {
			results.Add(e, res)
		}
	}()

	go func() {
		err := srv.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("could not run server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
}
