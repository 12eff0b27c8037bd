// Package bench orchestrates a benchmark run: fetch a reference model,
// ask the generation service for its own rendition, and score the pair
// with the similarity engine. Results are plain records persisted as
// JSON.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gabigabogabu/stl-bench/pkg/catalog"
	"github.com/gabigabogabu/stl-bench/pkg/decimate"
	"github.com/gabigabogabu/stl-bench/pkg/generate"
	"github.com/gabigabogabu/stl-bench/pkg/geometry"
	"github.com/gabigabogabu/stl-bench/pkg/logging"
	"github.com/gabigabogabu/stl-bench/pkg/sample"
	"github.com/gabigabogabu/stl-bench/pkg/similarity"
	"github.com/gabigabogabu/stl-bench/pkg/stl"
)

// Result is the scored outcome of one reference/generated mesh pair.
type Result struct {
	ID           string             `json:"id"`
	Thing        string             `json:"thing"`
	FileURL      string             `json:"fileUrl,omitempty"`
	Metrics      similarity.Metrics `json:"metrics"`
	Score        float64            `json:"score"`
	RefTriangles int                `json:"refTriangles"`
	GenTriangles int                `json:"genTriangles"`
	ElapsedSec   float64            `json:"elapsedSec"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// Options tunes a run.
type Options struct {
	// Samples per mesh for the chamfer scan.
	Samples int
	// Seed makes sampling deterministic when non-zero.
	Seed int64
	// MaxTriangles caps mesh size before scoring; zero disables
	// decimation.
	MaxTriangles int
	// Limit bounds how many catalog entries are scored. Zero means all.
	Limit int
}

// Runner wires the catalog and generation clients to the similarity
// engine.
type Runner struct {
	Catalog   *catalog.Client
	Generator generate.Generator
	Opts      Options
}

// Run scores every catalog entry (up to Opts.Limit). Entries that fail
// to download or generate are logged and skipped; the run keeps going.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	things, err := r.Catalog.ListThings(ctx)
	if err != nil {
		return nil, fmt.Errorf("bench: listing catalog: %w", err)
	}
	if r.Opts.Limit > 0 && len(things) > r.Opts.Limit {
		things = things[:r.Opts.Limit]
	}
	logging.Info("scoring %d models", len(things))

	var results []Result
	for _, thing := range things {
		result, err := r.RunOne(ctx, thing)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			logging.Warn("skipping %q: %s", thing.Name, err)
			continue
		}
		logging.Info("%-24s score=%.3f iou=%.3f chamfer=%.4f",
			thing.Name, result.Score, result.Metrics.BoxIoU, result.Metrics.Chamfer.MeanAB)
		results = append(results, result)
	}
	return results, nil
}

// RunOne scores a single catalog entry.
func (r *Runner) RunOne(ctx context.Context, thing catalog.Thing) (Result, error) {
	start := time.Now()

	data, err := r.Catalog.FetchModel(ctx, thing.FileURL)
	if err != nil {
		return Result{}, err
	}
	ref, err := stl.Decode(data)
	if err != nil {
		return Result{}, fmt.Errorf("bench: decoding reference: %w", err)
	}
	if ref.IsEmpty() {
		return Result{}, fmt.Errorf("bench: reference %q decoded to an empty mesh", thing.Name)
	}

	raw, err := r.Generator.GenerateMesh(ctx, generate.Prompt(thing.Name))
	if err != nil {
		return Result{}, err
	}
	gen := stl.DecodeText(generate.ExtractSolid(raw))

	return r.Score(thing, ref, gen, start), nil
}

// Score compares a decoded pair and assembles the result record. The
// meshes are decimated to the triangle budget first; the quadratic
// chamfer scan does not need more surface than it can sample.
func (r *Runner) Score(thing catalog.Thing, ref, gen *geometry.Mesh, start time.Time) Result {
	ref = decimate.ToBudget(ref, r.Opts.MaxTriangles)
	gen = decimate.ToBudget(gen, r.Opts.MaxTriangles)

	metrics := similarity.Compare(ref, gen, similarity.Options{
		Samples:   r.Opts.Samples,
		NewSource: r.sourceFactory(),
	})

	return Result{
		ID:           uuid.NewString(),
		Thing:        thing.Name,
		FileURL:      thing.FileURL,
		Metrics:      metrics,
		Score:        CompositeScore(metrics),
		RefTriangles: ref.TriangleCount(),
		GenTriangles: gen.TriangleCount(),
		ElapsedSec:   time.Since(start).Seconds(),
		CreatedAt:    time.Now().UTC(),
	}
}

func (r *Runner) sourceFactory() func() sample.Source {
	if r.Opts.Seed == 0 {
		return nil
	}
	seed := r.Opts.Seed
	return func() sample.Source { return sample.NewSource(seed) }
}

// CompositeScore folds a metric bundle into a single value in [0, 1]:
// the average of box IoU, area ratio, volume ratio, and a chamfer term
// that decays from 1 as the mean normalized distance grows.
func CompositeScore(m similarity.Metrics) float64 {
	chamfer := (m.Chamfer.MeanAB + m.Chamfer.MeanBA) / 2
	chamferScore := 1 / (1 + 10*chamfer)
	return (m.BoxIoU + m.AreaRatio + m.VolumeRatio + chamferScore) / 4
}
