package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Bench.Samples != 2000 {
		t.Errorf("Samples = %d, want 2000", cfg.Bench.Samples)
	}
	if cfg.Generator.APIKeyEnv == "" {
		t.Error("APIKeyEnv default is empty")
	}
	if cfg.Output.Results == "" {
		t.Error("Results default is empty")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.toml")
	content := `
[bench]
samples = 500
seed = 42

[catalog]
base_url = "http://models.example/index.html"
limit = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bench.Samples != 500 {
		t.Errorf("Samples = %d, want 500", cfg.Bench.Samples)
	}
	if cfg.Bench.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Bench.Seed)
	}
	if cfg.Catalog.BaseURL != "http://models.example/index.html" {
		t.Errorf("BaseURL = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Limit != 3 {
		t.Errorf("Limit = %d, want 3", cfg.Catalog.Limit)
	}
	// Fields absent from the file keep defaults.
	if cfg.Bench.MaxTriangles != Default().Bench.MaxTriangles {
		t.Errorf("MaxTriangles = %d, want default %d", cfg.Bench.MaxTriangles, Default().Bench.MaxTriangles)
	}
	if cfg.Generator.Model != Default().Generator.Model {
		t.Errorf("Model = %q, want default %q", cfg.Generator.Model, Default().Generator.Model)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load of missing file did not fail")
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[bench\nsamples ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed TOML did not fail")
	}
}
