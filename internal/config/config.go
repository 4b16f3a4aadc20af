package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the run-defaults file looked up in the working directory.
const DefaultFile = ".turing.yaml"

// RunDefaults are the settings a project may pin instead of repeating flags.
// Nil fields were not set in the file.
type RunDefaults struct {
	MaxSteps       *int    `yaml:"max_steps"`
	Conf           *string `yaml:"conf"`
	AllowStay      *bool   `yaml:"allow_stay"`
	ImplicitReject *bool   `yaml:"implicit_reject"`
}

// LoadRunDefaults reads path. When path is empty it tries DefaultFile and
// returns empty defaults if that file does not exist.
func LoadRunDefaults(path string) (*RunDefaults, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &RunDefaults{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg RunDefaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if cfg.MaxSteps != nil && *cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("invalid config %s: max_steps must not be negative", filepath.Base(path))
	}
	return &cfg, nil
}

// Case is one entry of a verification manifest.
type Case struct {
	Name     string  `yaml:"name"`
	Spec     string  `yaml:"spec"`
	Output   string  `yaml:"output"`
	Input    *string `yaml:"input"`
	MaxSteps int     `yaml:"max_steps"`

	// AllowStay and ImplicitReject override the library defaults when set.
	AllowStay      *bool `yaml:"allow_stay"`
	ImplicitReject *bool `yaml:"implicit_reject"`

	// Outcome, when set, must equal the run's outcome (accepted, rejected, truncated, undecided).
	Outcome string `yaml:"outcome"`
	// State, when set, must appear in the last configuration of the trace.
	State string `yaml:"state"`
}

// Manifest lists the cases run by `turing verify`.
type Manifest struct {
	Conf  string `yaml:"conf"`
	Cases []Case `yaml:"cases"`
}

// LoadManifest reads a verification manifest. Relative spec and output paths
// are resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filepath.Base(path), err)
	}
	if len(m.Cases) == 0 {
		return nil, fmt.Errorf("manifest %s has no cases", filepath.Base(path))
	}

	base := filepath.Dir(path)
	for i := range m.Cases {
		c := &m.Cases[i]
		if c.Spec == "" {
			return nil, fmt.Errorf("manifest case %d: spec is required", i+1)
		}
		if c.Name == "" {
			c.Name = filepath.Base(c.Spec)
		}
		c.Spec = resolve(base, c.Spec)
		if c.Output != "" {
			c.Output = resolve(base, c.Output)
		}
		if c.MaxSteps < 0 {
			return nil, fmt.Errorf("manifest case %q: max_steps must not be negative", c.Name)
		}
	}
	return &m, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
