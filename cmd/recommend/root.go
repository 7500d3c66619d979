// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/tastemap/internal/config"
	"github.com/tomtom215/tastemap/internal/logging"
	"github.com/tomtom215/tastemap/internal/recommend"
	"github.com/tomtom215/tastemap/internal/render"
	"github.com/tomtom215/tastemap/internal/store"
)

type options struct {
	user        string
	k           int
	query       string
	predict     bool
	restaurants bool
	output      string
	seed        int64
	dataDir     string
	logLevel    string
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Predict restaurant ratings and cluster them on a map",
		Long: `Fits a single-feature least-squares model to a user's reviews, rates
every restaurant, and writes the k-means clustered result as GeoJSON.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.user, "user", "u", "", "user whose ratings are shown")
	f.IntVarP(&opts.k, "clusters", "k", -1, "number of clusters, 0 for none (default from config)")
	f.StringVarP(&opts.query, "query", "q", "", "restrict restaurants to a category")
	f.BoolVarP(&opts.predict, "predict", "p", false, "predict ratings for unreviewed restaurants")
	f.BoolVarP(&opts.restaurants, "restaurants", "r", false, "print restaurant names and exit")
	f.StringVarP(&opts.output, "output", "o", "", "GeoJSON output file (default stdout)")
	f.Int64Var(&opts.seed, "seed", 0, "centroid sampling seed (default from config)")
	f.StringVar(&opts.dataDir, "data", "", "data directory (default DATA_DIR)")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	return cmd
}

func run(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logging.Init(logging.Config{Level: opts.logLevel, Format: "console", Output: stderr})
	logger := logging.WithComponent("cli")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	dir := opts.dataDir
	if dir == "" {
		dir = cfg.Data.Dir
	}

	data, err := store.OpenJSON(dir, logger)
	if err != nil {
		return err
	}
	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger)
	if err != nil {
		return err
	}
	engine.SetDataProvider(data)

	if opts.restaurants {
		names, err := engine.RestaurantNames(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			if _, err := fmt.Fprintln(stdout, name); err != nil {
				return err
			}
		}
		return nil
	}

	if opts.user == "" {
		return fmt.Errorf("--user is required unless --restaurants is set")
	}
	k := opts.k
	if k < 0 {
		k = engine.Config().Limits.DefaultK
	}

	resp, err := engine.Visualize(ctx, recommend.Request{
		User:    opts.user,
		Query:   opts.query,
		K:       k,
		Predict: opts.predict,
		Seed:    opts.seed,
	})
	if err != nil {
		return err
	}

	if opts.output == "" {
		return render.Write(stdout, resp)
	}
	return writeFile(opts.output, resp)
}

func writeFile(path string, resp *recommend.Response) (err error) {
	f, err := os.Create(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render.Write(f, resp)
}
