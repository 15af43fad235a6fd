package config // Shared run configuration for every tool

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"peptide_design_go/reduction"
)

// Config holds the defaults every tool starts from; tool flags override them
type Config struct {
	Seed       string           // optimizer seed peptide
	Iterations int              // optimizer steps
	Scheme     reduction.Scheme // reduction applied before descriptor generation
	Table      string           // descriptor score table path
	Workers    int              // aggregation pool size
	RandSeed   int64            // 0 means time based
	Addr       string           // serve listen address
	LogLevel   string
}

// Default mirrors the reference pipeline: 18xA seed, 1000 steps, RED6
func Default() Config {
	return Config{
		Seed:       "AAAAAAAAAAAAAAAAAA",
		Iterations: 1000,
		Scheme:     reduction.RED6,
		Table:      "unique_set.tsv",
		Workers:    runtime.NumCPU(),
		Addr:       ":8080",
		LogLevel:   "info",
	}
}

// Load reads .env (if present) and the environment. Process environment
// wins over the file, the file wins over the defaults.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		return LoadFrom(".env")
	}
	return LoadFrom()
}

// LoadFrom is Load with explicit dotenv files; missing files are an error
func LoadFrom(files ...string) (Config, error) {
	file := map[string]string{}
	if len(files) > 0 {
		var err error
		if file, err = godotenv.Read(files...); err != nil {
			return Config{}, fmt.Errorf("failed to read env file: %w", err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := file[key]
		return v, ok && v != ""
	}

	cfg := Default()
	var errs []error
	if v, ok := lookup("PEPTIDE_SEED"); ok {
		cfg.Seed = v
	}
	if v, ok := lookup("PEPTIDE_ITERATIONS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PEPTIDE_ITERATIONS: %w", err))
		}
		cfg.Iterations = n
	}
	if v, ok := lookup("PEPTIDE_SCHEME"); ok {
		s, err := reduction.ParseScheme(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PEPTIDE_SCHEME: %w", err))
		}
		cfg.Scheme = s
	}
	if v, ok := lookup("PEPTIDE_TABLE"); ok {
		cfg.Table = v
	}
	if v, ok := lookup("PEPTIDE_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PEPTIDE_WORKERS: %w", err))
		}
		cfg.Workers = n
	}
	if v, ok := lookup("PEPTIDE_RAND_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("PEPTIDE_RAND_SEED: %w", err))
		}
		cfg.RandSeed = n
	}
	if v, ok := lookup("PEPTIDE_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no tool can run with
func (c Config) Validate() error {
	switch {
	case c.Seed == "":
		return errors.New("config: seed peptide is empty")
	case c.Iterations < 0:
		return fmt.Errorf("config: iterations must not be negative, got %d", c.Iterations)
	case c.Workers < 1:
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	case c.Table == "":
		return errors.New("config: table path is empty")
	}
	for i := 0; i < len(c.Seed); i++ {
		if !reduction.Recognized(c.Seed[i]) {
			return fmt.Errorf("config: seed has unrecognized residue %q at %d", c.Seed[i], i)
		}
	}
	return nil
}
