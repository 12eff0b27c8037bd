// stl-bench scores generated 3D meshes against reference models. It
// compares two STL files directly, runs a full catalog-vs-generator
// benchmark, watches a directory for freshly generated meshes, renders
// result charts, and emits procedural reference fixtures.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gabigabogabu/stl-bench/pkg/bench"
	"github.com/gabigabogabu/stl-bench/pkg/catalog"
	"github.com/gabigabogabu/stl-bench/pkg/config"
	"github.com/gabigabogabu/stl-bench/pkg/generate"
	"github.com/gabigabogabu/stl-bench/pkg/geometry"
	"github.com/gabigabogabu/stl-bench/pkg/logging"
	"github.com/gabigabogabu/stl-bench/pkg/report"
	"github.com/gabigabogabu/stl-bench/pkg/sample"
	"github.com/gabigabogabu/stl-bench/pkg/shapes"
	"github.com/gabigabogabu/stl-bench/pkg/similarity"
	"github.com/gabigabogabu/stl-bench/pkg/stl"
	"github.com/gabigabogabu/stl-bench/pkg/watch"
)

const usage = `usage: stl-bench <command> [flags]

commands:
  compare <a.stl> <b.stl>   score two mesh files against each other
  bench                     run the catalog-vs-generator benchmark
  watch <dir>               re-score changed STL files against a reference
  report                    render charts from a results file
  fixtures                  write procedural reference meshes
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "compare":
		err = cmdCompare(os.Args[2:])
	case "bench":
		err = cmdBench(os.Args[2:])
	case "watch":
		err = cmdWatch(os.Args[2:])
	case "report":
		err = cmdReport(os.Args[2:])
	case "fixtures":
		err = cmdFixtures(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logging.Fatal("%s", err)
	}
}

func loadMesh(path string) (*geometry.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mesh, err := stl.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

func cmdCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	samples := fs.Int("samples", similarity.DefaultSamples, "surface samples per mesh")
	seed := fs.Int64("seed", 0, "random seed; 0 means non-deterministic")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Parse(args)
	if *verbose {
		logging.SetVerbose()
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("compare needs exactly two STL files")
	}

	a, err := loadMesh(fs.Arg(0))
	if err != nil {
		return err
	}
	b, err := loadMesh(fs.Arg(1))
	if err != nil {
		return err
	}

	opts := similarity.Options{Samples: *samples}
	if *seed != 0 {
		s := *seed
		opts.NewSource = func() sample.Source { return sample.NewSource(s) }
	}
	metrics := similarity.Compare(a, b, opts)

	out := struct {
		A       string             `json:"a"`
		B       string             `json:"b"`
		Metrics similarity.Metrics `json:"metrics"`
		Score   float64            `json:"score"`
	}{fs.Arg(0), fs.Arg(1), metrics, bench.CompositeScore(metrics)}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func cmdBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Parse(args)
	if *verbose {
		logging.SetVerbose()
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if cfg.Catalog.BaseURL == "" {
		return fmt.Errorf("bench needs catalog.base_url in the config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := &bench.Runner{
		Catalog: catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.CacheDir),
		Generator: generate.NewClient(
			cfg.Generator.BaseURL, cfg.Generator.Model, os.Getenv(cfg.Generator.APIKeyEnv),
		),
		Opts: bench.Options{
			Samples:      cfg.Bench.Samples,
			Seed:         cfg.Bench.Seed,
			MaxTriangles: cfg.Bench.MaxTriangles,
			Limit:        cfg.Catalog.Limit,
		},
	}

	results, err := runner.Run(ctx)
	if len(results) > 0 {
		if saveErr := bench.SaveResults(cfg.Output.Results, results); saveErr != nil {
			logging.Error("%s", saveErr)
		} else {
			logging.Info("wrote %d results to %s", len(results), cfg.Output.Results)
		}
		if cfg.Output.Plot != "" {
			if plotErr := report.ChamferHistogram(results, cfg.Output.Plot); plotErr != nil {
				logging.Error("%s", plotErr)
			}
		}
	}
	return err
}

func cmdWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	refPath := fs.String("ref", "", "reference STL file (required)")
	samples := fs.Int("samples", similarity.DefaultSamples, "surface samples per mesh")
	seed := fs.Int64("seed", 0, "random seed; 0 means non-deterministic")
	fs.Parse(args)
	if *refPath == "" || fs.NArg() != 1 {
		return fmt.Errorf("watch needs -ref and a directory to watch")
	}

	ref, err := loadMesh(*refPath)
	if err != nil {
		return err
	}
	if ref.IsEmpty() {
		return fmt.Errorf("%s decoded to an empty mesh", *refPath)
	}

	w, err := watch.New(ref, *samples, *seed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		w.Close()
	}()

	return w.Watch(fs.Arg(0))
}

func cmdReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	resultsPath := fs.String("results", "results.json", "results file")
	histPath := fs.String("hist", "chamfer.png", "chamfer histogram output")
	barsPath := fs.String("bars", "scores.png", "score bar chart output")
	fs.Parse(args)

	results, err := bench.LoadResults(*resultsPath)
	if err != nil {
		return err
	}
	if err := report.ChamferHistogram(results, *histPath); err != nil {
		return err
	}
	if err := report.ScoreBars(results, *barsPath); err != nil {
		return err
	}
	logging.Info("wrote %s and %s", *histPath, *barsPath)
	return nil
}

func cmdFixtures(args []string) error {
	fs := flag.NewFlagSet("fixtures", flag.ExitOnError)
	outDir := fs.String("out", "fixtures", "output directory")
	cells := fs.Int("cells", shapes.DefaultCells, "marching cubes resolution")
	fs.Parse(args)

	fixtures, err := shapes.Fixtures(*cells)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}
	for _, name := range shapes.Names(fixtures) {
		path := filepath.Join(*outDir, name+".stl")
		if err := os.WriteFile(path, stl.EncodeBinary(fixtures[name]), 0o644); err != nil {
			return err
		}
		logging.Info("wrote %s (%d triangles)", path, fixtures[name].TriangleCount())
	}
	return nil
}
