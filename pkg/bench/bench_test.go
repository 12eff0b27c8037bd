package bench

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gabigabogabu/stl-bench/pkg/catalog"
	"github.com/gabigabogabu/stl-bench/pkg/geometry"
	"github.com/gabigabogabu/stl-bench/pkg/similarity"
	"github.com/gabigabogabu/stl-bench/pkg/stl"
)

// cube builds an axis-aligned unit cube as 12 outward-wound triangles.
func cube() *geometry.Mesh {
	p := func(x, y, z float64) geometry.Vector3 { return geometry.V3(x, y, z) }
	m := geometry.NewMesh("cube")
	quad := func(a, b, c, d geometry.Vector3) {
		m.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, a, b, c))
		m.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, a, c, d))
	}
	quad(p(0, 0, 0), p(0, 1, 0), p(1, 1, 0), p(1, 0, 0))
	quad(p(0, 0, 1), p(1, 0, 1), p(1, 1, 1), p(0, 1, 1))
	quad(p(0, 0, 0), p(1, 0, 0), p(1, 0, 1), p(0, 0, 1))
	quad(p(0, 1, 0), p(0, 1, 1), p(1, 1, 1), p(1, 1, 0))
	quad(p(0, 0, 0), p(0, 0, 1), p(0, 1, 1), p(0, 1, 0))
	quad(p(1, 0, 0), p(1, 1, 0), p(1, 1, 1), p(1, 0, 1))
	return m
}

// perfectGenerator answers every prompt with the same text STL.
type perfectGenerator struct {
	answer string
}

func (g *perfectGenerator) GenerateMesh(ctx context.Context, prompt string) (string, error) {
	return g.answer, nil
}

func TestRunnerEndToEnd(t *testing.T) {
	reference := stl.EncodeBinary(cube())

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="/cube.stl">cube</a></body></html>`))
	})
	mux.HandleFunc("/cube.stl", func(w http.ResponseWriter, r *http.Request) {
		w.Write(reference)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	runner := &Runner{
		Catalog:   catalog.NewClient(server.URL, ""),
		Generator: &perfectGenerator{answer: stl.EncodeText(cube(), 6)},
		Opts:      Options{Samples: 300, Seed: 17},
	}

	results, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}

	r := results[0]
	if r.Thing != "cube" {
		t.Errorf("Thing = %q, want cube", r.Thing)
	}
	if r.ID == "" {
		t.Error("empty result ID")
	}
	if r.RefTriangles != 12 || r.GenTriangles != 12 {
		t.Errorf("triangle counts = %d/%d, want 12/12", r.RefTriangles, r.GenTriangles)
	}
	// Generator reproduced the reference exactly and sampling is
	// seeded, so the score is perfect.
	if r.Score != 1 {
		t.Errorf("Score = %v, want 1", r.Score)
	}
	if r.Metrics.Chamfer.MaxAB != 0 {
		t.Errorf("Chamfer.MaxAB = %v, want 0", r.Metrics.Chamfer.MaxAB)
	}
}

func TestRunnerSkipsFailingThings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
<a href="/missing.stl">broken</a>
<a href="/cube.stl">cube</a>
</body></html>`))
	})
	mux.HandleFunc("/cube.stl", func(w http.ResponseWriter, r *http.Request) {
		w.Write(stl.EncodeBinary(cube()))
	})
	mux.HandleFunc("/missing.stl", http.NotFound)
	server := httptest.NewServer(mux)
	defer server.Close()

	runner := &Runner{
		Catalog:   catalog.NewClient(server.URL, ""),
		Generator: &perfectGenerator{answer: stl.EncodeText(cube(), 6)},
		Opts:      Options{Samples: 100, Seed: 1},
	}

	results, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1 (broken entry skipped)", len(results))
	}
	if results[0].Thing != "cube" {
		t.Errorf("Thing = %q, want cube", results[0].Thing)
	}
}

func TestRunnerLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
<a href="/a.stl">a</a><a href="/b.stl">b</a><a href="/c.stl">c</a>
</body></html>`))
	})
	mux.HandleFunc("/a.stl", func(w http.ResponseWriter, r *http.Request) {
		w.Write(stl.EncodeBinary(cube()))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	runner := &Runner{
		Catalog:   catalog.NewClient(server.URL, ""),
		Generator: &perfectGenerator{answer: stl.EncodeText(cube(), 6)},
		Opts:      Options{Samples: 50, Seed: 1, Limit: 1},
	}

	results, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("len(results) = %d, want 1 with Limit 1", len(results))
	}
}

func TestCompositeScore(t *testing.T) {
	tests := []struct {
		name string
		m    similarity.Metrics
		want float64
	}{
		{
			name: "perfect match",
			m: similarity.Metrics{
				BoxIoU: 1, AreaRatio: 1, VolumeRatio: 1,
			},
			want: 1,
		},
		{
			name: "total miss still bounded",
			m: similarity.Metrics{
				Chamfer: similarity.ChamferStats{MeanAB: 10, MeanBA: 10},
			},
			want: 0.25 * 1 / 101,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompositeScore(tt.m)
			if diff := got - tt.want; diff > 1e-12 || diff < -1e-12 {
				t.Errorf("CompositeScore() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("CompositeScore() = %v outside [0,1]", got)
			}
		})
	}
}

func TestResultsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	in := []Result{
		{ID: "one", Thing: "cube", Score: 0.75},
		{ID: "two", Thing: "sphere", Score: 0.5},
	}

	if err := SaveResults(path, in); err != nil {
		t.Fatalf("SaveResults: %v", err)
	}
	out, err := LoadResults(path)
	if err != nil {
		t.Fatalf("LoadResults: %v", err)
	}
	if len(out) != 2 || out[0].ID != "one" || out[1].Score != 0.5 {
		t.Errorf("round trip gave %+v", out)
	}
}

func TestLoadResultsMissing(t *testing.T) {
	if _, err := LoadResults(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("LoadResults of missing file did not fail")
	}
}
