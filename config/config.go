// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/psymetrika/factorboot/bootstrap"
	"github.com/psymetrika/factorboot/construct"
	"github.com/psymetrika/factorboot/pca"
	"github.com/psymetrika/factorboot/survey"
)

var (
	// ErrValidation is wrapped by every field-level validation failure.
	ErrValidation = errors.New("config: invalid study")

	// ErrMissingPath is returned when a required file path is empty.
	ErrMissingPath = errors.New("config: missing file path")
)

// Study is the full YAML-backed run definition. Zero fields fall back to
// the stage defaults.
type Study struct {
	Data      Data      `yaml:"data"`
	Aggregate Aggregate `yaml:"aggregate"`
	PCA       PCA       `yaml:"pca"`
	Bootstrap Bootstrap `yaml:"bootstrap"`
	Ridge     Ridge     `yaml:"ridge"`
}

// Data points at the input files and the row-level cleaning policy.
type Data struct {
	Responses string  `yaml:"responses"`
	Metadata  string  `yaml:"metadata"`
	Impute    string  `yaml:"impute"`
	MinValue  float64 `yaml:"min_value"`
	MaxValue  float64 `yaml:"max_value"`
}

// Aggregate configures construct scoring.
type Aggregate struct {
	Strategy       string  `yaml:"strategy"`
	MinCoverage    float64 `yaml:"min_coverage"`
	MinRespondents int     `yaml:"min_respondents"`
}

// PCA configures the decomposition.
type PCA struct {
	Components int `yaml:"components"`
}

// Bootstrap configures the stability run.
type Bootstrap struct {
	Iterations          int     `yaml:"iterations"`
	Seed                int64   `yaml:"seed"`
	Workers             int     `yaml:"workers"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	LowerPercentile     float64 `yaml:"lower_percentile"`
	UpperPercentile     float64 `yaml:"upper_percentile"`
	Standardization     string  `yaml:"standardization"`
}

// Ridge configures the optional predictive check. Alpha 0 in YAML means
// "use the default", not an unregularized fit.
type Ridge struct {
	Target       string  `yaml:"target"`
	Alpha        float64 `yaml:"alpha"`
	TestFraction float64 `yaml:"test_fraction"`
}

// Load reads and validates a Study from a YAML file.
func Load(path string) (*Study, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads and validates a Study from a reader.
// Errors: ErrValidation (field named), ErrMissingPath, yaml decode errors.
func Parse(r io.Reader) (*Study, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Study
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// validate checks every field that a stage would otherwise reject at run
// time, naming the YAML key.
func (s *Study) validate() error {
	if s.Data.Responses == "" {
		return fmt.Errorf("data.responses: %w", ErrMissingPath)
	}
	if s.Data.Metadata == "" {
		return fmt.Errorf("data.metadata: %w", ErrMissingPath)
	}
	if _, err := survey.ParseStrategy(s.Data.Impute); s.Data.Impute != "" && err != nil {
		return fmt.Errorf("data.impute: %w: %w", ErrValidation, err)
	}
	if s.Data.MinValue > s.Data.MaxValue {
		return fmt.Errorf("data.min_value exceeds data.max_value: %w", ErrValidation)
	}
	if _, err := construct.ParseStrategy(s.Aggregate.Strategy); err != nil {
		return fmt.Errorf("aggregate.strategy: %w: %w", ErrValidation, err)
	}
	if s.Aggregate.MinCoverage < 0 || s.Aggregate.MinCoverage > 1 {
		return fmt.Errorf("aggregate.min_coverage: %w", ErrValidation)
	}
	if s.Aggregate.MinRespondents < 0 {
		return fmt.Errorf("aggregate.min_respondents: %w", ErrValidation)
	}
	if s.PCA.Components < 0 {
		return fmt.Errorf("pca.components: %w", ErrValidation)
	}
	if s.Bootstrap.Iterations < 0 {
		return fmt.Errorf("bootstrap.iterations: %w", ErrValidation)
	}
	if s.Bootstrap.Workers < 0 {
		return fmt.Errorf("bootstrap.workers: %w", ErrValidation)
	}
	if s.Bootstrap.SimilarityThreshold < 0 || s.Bootstrap.SimilarityThreshold > 1 {
		return fmt.Errorf("bootstrap.similarity_threshold: %w", ErrValidation)
	}
	lo, hi := s.Bootstrap.LowerPercentile, s.Bootstrap.UpperPercentile
	if (lo != 0 || hi != 0) && !(lo >= 0 && lo < hi && hi <= 100) {
		return fmt.Errorf("bootstrap percentiles: %w", ErrValidation)
	}
	if _, err := bootstrap.ParseStandardization(s.Bootstrap.Standardization); err != nil {
		return fmt.Errorf("bootstrap.standardization: %w: %w", ErrValidation, err)
	}
	if s.Ridge.Alpha < 0 {
		return fmt.Errorf("ridge.alpha: %w", ErrValidation)
	}
	if s.Ridge.TestFraction < 0 || s.Ridge.TestFraction >= 1 {
		return fmt.Errorf("ridge.test_fraction: %w", ErrValidation)
	}

	return nil
}

// ImputeStrategy resolves the cleaning strategy, defaulting to median.
func (s *Study) ImputeStrategy() survey.Strategy {
	st, err := survey.ParseStrategy(s.Data.Impute)
	if err != nil {
		return survey.StrategyMedian
	}

	return st
}

// ConstructOptions translates the aggregate section. Zero fields are
// omitted so stage defaults apply.
func (s *Study) ConstructOptions() []construct.Option {
	var opts []construct.Option
	if st, err := construct.ParseStrategy(s.Aggregate.Strategy); err == nil && st != construct.Mean {
		opts = append(opts, construct.WithStrategy(st))
	}
	if s.Aggregate.MinCoverage > 0 {
		opts = append(opts, construct.WithMinCoverage(s.Aggregate.MinCoverage))
	}
	if s.Aggregate.MinRespondents > 0 {
		opts = append(opts, construct.WithMinRespondents(s.Aggregate.MinRespondents))
	}

	return opts
}

// PCAOptions translates the pca section for direct decomposition calls.
func (s *Study) PCAOptions() []pca.Option {
	var opts []pca.Option
	if s.PCA.Components > 0 {
		opts = append(opts, pca.WithComponents(s.PCA.Components))
	}

	return opts
}

// BootstrapOptions translates the bootstrap and pca sections. Zero fields
// are omitted so stage defaults apply.
func (s *Study) BootstrapOptions() []bootstrap.Option {
	var opts []bootstrap.Option
	if s.Bootstrap.Iterations > 0 {
		opts = append(opts, bootstrap.WithIterations(s.Bootstrap.Iterations))
	}
	if s.Bootstrap.Seed != 0 {
		opts = append(opts, bootstrap.WithSeed(s.Bootstrap.Seed))
	}
	if s.Bootstrap.Workers > 0 {
		opts = append(opts, bootstrap.WithWorkers(s.Bootstrap.Workers))
	}
	if s.Bootstrap.SimilarityThreshold > 0 {
		opts = append(opts, bootstrap.WithSimilarityThreshold(s.Bootstrap.SimilarityThreshold))
	}
	if s.Bootstrap.LowerPercentile != 0 || s.Bootstrap.UpperPercentile != 0 {
		opts = append(opts, bootstrap.WithPercentiles(s.Bootstrap.LowerPercentile, s.Bootstrap.UpperPercentile))
	}
	if mode, err := bootstrap.ParseStandardization(s.Bootstrap.Standardization); err == nil && mode != bootstrap.Refit {
		opts = append(opts, bootstrap.WithStandardization(mode))
	}
	if s.PCA.Components > 0 {
		opts = append(opts, bootstrap.WithComponents(s.PCA.Components))
	}

	return opts
}

// RidgeAlpha resolves the regularization strength, defaulting to
// ridge.DefaultAlpha semantics at the call site when zero.
func (s *Study) RidgeAlpha(fallback float64) float64 {
	if s.Ridge.Alpha > 0 {
		return s.Ridge.Alpha
	}

	return fallback
}
