package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Ambient tunables: the weights, confidence bands, and
 *		thresholds spec.md section 4.5 hardcodes are exposed
 *		here as overridable config, loaded from YAML.
 *
 *----------------------------------------------------------------*/

import (
	"os"

	"gopkg.in/yaml.v3"
)

// FingerprintWeights are the similarity-distance component weights
// from spec.md section 4.5. They must sum to 1.0 for the 0-100
// confidence mapping to stay meaningful, but that isn't enforced --
// a misconfigured sum just shifts the scale, which is a config
// mistake the host should catch, not a core invariant.
type FingerprintWeights struct {
	Drift  float64 `yaml:"drift"`
	Slopes float64 `yaml:"slopes"`
	Clock  float64 `yaml:"clock"`
	RSSI   float64 `yaml:"rssi"`
}

// ConfidenceBands are the High/Medium/Low cutoffs from spec.md section
// 4.5; values below Low fall into the implicit "None" band.
type ConfidenceBands struct {
	High   int `yaml:"high"`
	Medium int `yaml:"medium"`
	Low    int `yaml:"low"`
}

type Config struct {
	FingerprintWeights FingerprintWeights `yaml:"fingerprint_weights"`
	ConfidenceBands    ConfidenceBands    `yaml:"confidence_bands"`
	LogLevel           string             `yaml:"log_level"`
}

// DefaultConfig matches spec.md's hardcoded defaults exactly: the
// config layer exists to make them overridable, not to change them.
func DefaultConfig() Config {
	return Config{
		FingerprintWeights: FingerprintWeights{Drift: 0.30, Slopes: 0.25, Clock: 0.20, RSSI: 0.25},
		ConfidenceBands:    ConfidenceBands{High: 90, Medium: 70, Low: 50},
		LogLevel:           "info",
	}
}

// LoadConfig reads a YAML file into a copy of DefaultConfig, so an
// incomplete file only overrides the fields it mentions.
func LoadConfig(path string) (Config, error) {
	var cfg = DefaultConfig()
	var data, readErr = os.ReadFile(path)
	if readErr != nil {
		return cfg, readErr
	}
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return cfg, unmarshalErr
	}
	return cfg, nil
}
