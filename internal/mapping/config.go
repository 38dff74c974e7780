package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/exodus/internal/mods"
	"github.com/vvka-141/exodus/pkg/exodus"
)

// Config is a parsed field-mapping configuration.
type Config struct {
	Mapping []exodus.FieldRule `yaml:"mapping"`
}

// LoadConfig reads and validates a yaml mapping configuration. Every rule
// must name an output field and carry either an xpath list or a known
// special extractor, never both. Validation failures surface before any
// MODS file is touched.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping configuration: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", exodus.ErrInvalidMapping, err)
	}
	if len(cfg.Mapping) == 0 {
		return nil, fmt.Errorf("%w: no mapping rules in %s", exodus.ErrInvalidMapping, path)
	}
	for i, rule := range cfg.Mapping {
		if rule.Name == "" {
			return nil, fmt.Errorf("%w: rule %d has no name", exodus.ErrInvalidMapping, i)
		}
		if len(rule.XPaths) > 0 && rule.Special != "" {
			return nil, fmt.Errorf("%w: rule %q sets both xpaths and special", exodus.ErrInvalidMapping, rule.Name)
		}
		if len(rule.XPaths) == 0 && rule.Special == "" {
			return nil, fmt.Errorf("%w: rule %q sets neither xpaths nor special", exodus.ErrInvalidMapping, rule.Name)
		}
		if rule.Special != "" && !mods.KnownKind(mods.ExtractorKind(rule.Special)) {
			return nil, fmt.Errorf("%w: %q (rule %q)", exodus.ErrUnknownExtractor, rule.Special, rule.Name)
		}
	}
	return &cfg, nil
}
