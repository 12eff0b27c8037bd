// Package config loads the benchmark's TOML configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full configuration for a benchmark run.
type Config struct {
	Bench     Bench     `toml:"bench"`
	Catalog   Catalog   `toml:"catalog"`
	Generator Generator `toml:"generator"`
	Output    Output    `toml:"output"`
}

// Bench configures the comparison itself.
type Bench struct {
	// Samples is the number of surface points drawn per mesh.
	Samples int `toml:"samples"`
	// Seed makes runs deterministic when non-zero.
	Seed int64 `toml:"seed"`
	// MaxTriangles caps mesh size before the chamfer scan; larger
	// meshes are decimated down to it. Zero disables decimation.
	MaxTriangles int `toml:"max_triangles"`
}

// Catalog configures the model catalog client.
type Catalog struct {
	BaseURL  string `toml:"base_url"`
	CacheDir string `toml:"cache_dir"`
	// Limit bounds how many catalog entries a run scores. Zero means all.
	Limit int `toml:"limit"`
}

// Generator configures the text-generation service client.
type Generator struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	// APIKeyEnv names the environment variable holding the API key, so
	// the key itself never lives in the config file.
	APIKeyEnv string `toml:"api_key_env"`
}

// Output configures where results land.
type Output struct {
	Results string `toml:"results"`
	Plot    string `toml:"plot"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Bench: Bench{
			Samples:      2000,
			MaxTriangles: 20000,
		},
		Catalog: Catalog{
			CacheDir: ".cache",
			Limit:    10,
		},
		Generator: Generator{
			BaseURL:   "https://api.openai.com/v1",
			Model:     "gpt-4o",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Output: Output{
			Results: "results.json",
			Plot:    "results.png",
		},
	}
}

// Load reads a TOML file over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
