package experiment

import (
	"fmt"

	"github.com/san-kum/molsim/internal/config"
)

// Source names where a configuration comes from. Preset wins over Path;
// Legacy replaces the cuboids of whatever was loaded.
type Source struct {
	Path   string
	Preset string
	Legacy string
}

func LoadConfig(src Source) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case src.Preset != "":
		cfg = config.GetPreset(src.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", src.Preset, config.ListPresets())
		}
	case src.Path != "":
		loaded, err := config.Load(src.Path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.DefaultConfig()
	}

	if src.Legacy != "" {
		cuboids, err := config.LoadLegacyCuboids(src.Legacy)
		if err != nil {
			return nil, err
		}
		cfg.Cuboids = cuboids
		cfg.Discs = nil
	}
	return cfg, nil
}
