package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/drakos74/som-explain/infra/config"
	"github.com/drakos74/som-explain/internal/explain"
	"github.com/drakos74/som-explain/internal/metrics"
	"github.com/drakos74/som-explain/internal/render"
	"github.com/drakos74/som-explain/internal/report"
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
	debug := flag.Bool("debug", false, "enable debug logs")
	dry := flag.Bool("dry", false, "do not store the result")
	flag.Parse()

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	config.Path = *dir
	exp := explain.DefaultExperiment()
	config.MustLoad(*key, &exp)

	ctx, cnl := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cnl()

	shard, registry := stores(*dry)
	if err := run(ctx, exp, shard, registry); err != nil {
		log.Fatal().Err(err).Msg("could not complete experiment")
	}
}

func run(ctx context.Context, exp explain.Experiment, shard storage.Shard, registry storage.Registry) error {
	e, err := explain.Prepare(exp)
	if err != nil {
		return err
	}
	e.WithRegistry(registry).
		WithMetrics(metrics.Observer)

	res, err := e.Search(ctx)
	if res == nil {
		return err
	}
	if err != nil {
		log.Warn().Err(err).Str("run", e.Run()).Msg("search did not complete")
	}

	report.Table(os.Stdout, res.History)
	report.Summary(os.Stdout, res)

	store, err := shard(e.Run())
	if err != nil {
		return fmt.Errorf("could not create storage: %w", err)
	}
	if err := explain.Save(store, res); err != nil {
		return fmt.Errorf("could not save result: %w", err)
	}

	if p := exp.Output.HeatMap; p != "" {
		if err := mkdir(p); err != nil {
			return err
		}
		if err := render.HeatMap(res.Map, res.Occupants, e.Key(), p); err != nil {
			return err
		}
		log.Info().Str("path", p).Msg("saved heat map")
	}

	if p := exp.Output.History; p != "" {
		if err := mkdir(p); err != nil {
			return err
		}
		if err := render.SaveHistory(p, fmt.Sprintf("search %s", e.Run()), report.Series(res.History)...); err != nil {
			return err
		}
		log.Info().Str("path", p).Msg("saved history")
	}

	if exp.Clusters > 0 {
		clusters, err := explain.Clusters(res.Map, exp.Clusters, 100)
		if err != nil {
			return fmt.Errorf("could not cluster map: %w", err)
		}
		report.Clusters(os.Stdout, clusters, res.Occupants)
	}

	if exp.BaselineTrees > 0 {
		benchmark, err := e.Baseline(exp.BaselineTrees)
		if err != nil {
			return fmt.Errorf("could not train baseline: %w", err)
		}
		log.Info().
			Int("trees", benchmark.Trees).
			Float64("c_error", benchmark.CError).
			Float64("som_c_error", res.CError).
			Msg("baseline")
	}
	return nil
}

// stores returns the result storage and the attempt registry,
// a dry run writes nothing to disk.
func stores(dry bool) (storage.Shard, storage.Registry) {
	if dry {
		return storage.VoidShard(), storage.NewVoidRegistry()
	}
	return json.BlobShard(storage.ResultDir), json.NewEventRegistry(storage.ResultDir)
}

func mkdir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for '%s': %w", path, err)
	}
	return nil
}
