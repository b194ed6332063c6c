package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chisyliu/trackingAlg-dbscan/internal/adapters/dataset"
	"github.com/chisyliu/trackingAlg-dbscan/internal/adapters/report"
	"github.com/chisyliu/trackingAlg-dbscan/internal/adapters/repository/postgres"
	"github.com/chisyliu/trackingAlg-dbscan/internal/adapters/repository/sqlite"
	"github.com/chisyliu/trackingAlg-dbscan/internal/app/dto"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/cluster"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/run"
	"github.com/chisyliu/trackingAlg-dbscan/pkg/dbscan"
	"github.com/chisyliu/trackingAlg-dbscan/pkg/serialization"
)

type runOptions struct {
	input     string
	layout    string
	eps       float64
	minPts    int
	indexKind string
	parallel  bool
	workers   int
	format    string
	output    string
	codec     string
	compress  string
	storePath string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Cluster a CSV dataset and report the partition",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClustering(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "path to the CSV dataset (required)")
	flags.StringVar(&opts.layout, "layout", "xy", "dataset layout: xy or iris")
	flags.Float64Var(&opts.eps, "eps", 0.3, "neighborhood radius (inclusive)")
	flags.IntVar(&opts.minPts, "min-pts", 3, "minimum self-inclusive neighborhood size for a core point")
	flags.StringVar(&opts.indexKind, "index", "brute", "neighborhood index: brute or grid")
	flags.BoolVar(&opts.parallel, "parallel", false, "precompute neighborhoods with a worker pool")
	flags.IntVar(&opts.workers, "workers", 0, "worker pool size, 0 = GOMAXPROCS")
	flags.StringVar(&opts.format, "format", "text", "report format: text or json")
	flags.StringVarP(&opts.output, "output", "o", "", "write the full run response to this file")
	flags.StringVar(&opts.codec, "codec", "json", "output codec: json or msgpack")
	flags.StringVar(&opts.compress, "compress", "none", "output compression: none, gzip or zstd")
	flags.StringVar(&opts.storePath, "store", "", "record runs: SQLite file path or postgres:// DSN")
	cobra.CheckErr(cmd.MarkFlagRequired("input"))

	return cmd
}

func runClustering(cmd *cobra.Command, opts *runOptions) error {
	ctx := cmd.Context()

	loader, err := dataset.NewCSVLoader(dataset.Layout(opts.layout))
	if err != nil {
		return err
	}
	points, err := loader.LoadFile(opts.input)
	if err != nil {
		return err
	}

	rt, cleanup, err := newRuntime(cmd, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := rt.Run(ctx, &dto.RunRequest{
		DatasetID: opts.input,
		Points:    points,
		Eps:       opts.eps,
		MinPts:    opts.minPts,
		Config: dto.RunConfig{
			Index:     dto.IndexKind(opts.indexKind),
			Parallel:  opts.parallel,
			Workers:   opts.workers,
			RecordRun: opts.storePath != "",
		},
	})
	if err != nil {
		return err
	}

	if err := writeReport(cmd, opts, resp); err != nil {
		return err
	}
	if opts.output != "" {
		if err := exportResponse(opts, resp); err != nil {
			return err
		}
	}
	return nil
}

func newRuntime(cmd *cobra.Command, opts *runOptions) (*dbscan.Runtime, func(), error) {
	if opts.storePath == "" {
		rt := dbscan.NewRuntime()
		return rt, func() { _ = rt.Close() }, nil
	}
	store, err := openStore(cmd.Context(), opts.storePath)
	if err != nil {
		return nil, nil, err
	}
	rt := dbscan.NewRuntimeWithStore(store)
	return rt, func() { _ = rt.Close() }, nil
}

// openStore maps the --store flag to a backend: PostgreSQL for connection
// DSNs, SQLite for plain file paths.
func openStore(ctx context.Context, path string) (run.Store, error) {
	if strings.HasPrefix(path, "postgres://") || strings.HasPrefix(path, "postgresql://") {
		return postgres.Open(ctx, path)
	}
	return sqlite.Open(ctx, path)
}

func writeReport(cmd *cobra.Command, opts *runOptions, resp *dto.RunResponse) error {
	result := &cluster.Result{Clusters: resp.Clusters, Noise: resp.Noise}

	switch opts.format {
	case "json":
		return report.NewJSONReporter(cmd.OutOrStdout(), true).Report(result)
	case "text":
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "run %s: %d points, %d clusters, %d noise (%s)\n",
			resp.RunID, resp.PointCount, resp.ClusterCount, resp.NoiseCount, resp.Duration)
		return report.NewTextReporter(out).Report(result)
	default:
		return fmt.Errorf("unknown report format %q", opts.format)
	}
}

// exportResponse serializes the full response to a file with the configured
// codec and compression.
func exportResponse(opts *runOptions, resp *dto.RunResponse) error {
	var codec serialization.Codec
	switch opts.codec {
	case "msgpack":
		codec = serialization.NewMsgPackCodec()
	case "json":
		codec = serialization.NewJSONCodec()
	default:
		return fmt.Errorf("unknown codec %q", opts.codec)
	}

	var compression serialization.Compression
	switch opts.compress {
	case "none":
		compression = serialization.CompressionNone
	case "gzip":
		compression = serialization.CompressionGzip
	case "zstd":
		compression = serialization.CompressionZstd
	default:
		return fmt.Errorf("unknown compression %q", opts.compress)
	}

	serializer := serialization.NewSerializer(serialization.Config{
		Codec:       codec,
		Compression: compression,
	})
	data, err := serializer.Serialize(resp)
	if err != nil {
		return err
	}
	return os.WriteFile(opts.output, data, 0o644)
}

func newRunsCmd() *cobra.Command {
	var storePath, datasetID string
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded clustering runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), storePath)
			if err != nil {
				return err
			}
			defer func() {
				if c, ok := store.(interface{ Close() error }); ok {
					_ = c.Close()
				}
			}()

			records, err := store.List(cmd.Context(), run.Filter{
				DatasetID: datasetID,
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range records {
				fmt.Fprintf(out, "%s  %s  eps=%g minPts=%d  points=%d clusters=%d noise=%d  %s\n",
					r.ID, r.DatasetID, r.Eps, r.MinPts, r.Points, r.Clusters, r.Noise,
					r.Timestamp.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "SQLite file path or postgres:// DSN (required)")
	cmd.Flags().StringVar(&datasetID, "dataset", "", "only list runs for this dataset")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	cobra.CheckErr(cmd.MarkFlagRequired("store"))

	return cmd
}
