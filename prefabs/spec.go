package prefabs

import (
	"fmt"

	"github.com/milk9111/wallrunner/locomotion"
	"gopkg.in/yaml.v3"
)

// DefaultTuning is the embedded tuning file.
const DefaultTuning = "tuning.yaml"

// LoadTuning reads a tuning file and validates it. Fields the file leaves out
// keep their defaults.
func LoadTuning(filename string) (locomotion.Config, error) {
	if filename == "" {
		filename = DefaultTuning
	}
	data, err := Load(filename)
	if err != nil {
		return locomotion.Config{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	cfg, err := DecodeTuning(data)
	if err != nil {
		return locomotion.Config{}, fmt.Errorf("prefabs: tuning %s: %w", filename, err)
	}
	return cfg, nil
}

// DecodeTuning overlays YAML onto the default config and validates the result.
func DecodeTuning(data []byte) (locomotion.Config, error) {
	cfg := locomotion.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return locomotion.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return locomotion.Config{}, err
	}
	return cfg, nil
}
