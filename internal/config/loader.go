package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "munchers.yaml"

// Load reads the variant configuration.
// Search order: customPath -> ~/.munchers/configs/munchers.yaml ->
// ./configs/munchers.yaml -> embedded default.
//
// Files are laid over the embedded defaults, so a user file only needs the
// variants it changes or adds. A custom path that cannot be read or parsed
// is an error; the other locations are skipped silently when broken.
func Load(customPath string) (MunchersConfig, error) {
	cfg, err := embedded()
	if err != nil {
		return DefaultConfig(), nil
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := overlay(&cfg, data); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(fileName), filepath.Join("configs", fileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		next := cloneConfig(cfg)
		if err := overlay(&next, data); err == nil {
			return next, nil
		}
	}
	return cfg, nil
}

// LoadVariant loads the configuration and returns one variant.
func LoadVariant(customPath, id string) (VariantConfig, error) {
	cfg, err := Load(customPath)
	if err != nil {
		return VariantConfig{}, err
	}
	return cfg.Variant(id)
}

// Defaults returns the embedded variants without reading any file.
func Defaults() MunchersConfig {
	cfg, err := embedded()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

func embedded() (MunchersConfig, error) {
	var cfg MunchersConfig
	if err := yaml.Unmarshal(defaultMunchersYAML, &cfg); err != nil {
		return MunchersConfig{}, err
	}
	return cfg, nil
}

// overlay decodes data on top of cfg. Variants present in data replace
// the ones with the same key.
func overlay(cfg *MunchersConfig, data []byte) error {
	var file MunchersConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	if cfg.Variants == nil {
		cfg.Variants = make(map[string]VariantConfig, len(file.Variants))
	}
	for id, v := range file.Variants {
		cfg.Variants[id] = v
	}
	return nil
}

func cloneConfig(c MunchersConfig) MunchersConfig {
	out := MunchersConfig{Variants: make(map[string]VariantConfig, len(c.Variants))}
	for id, v := range c.Variants {
		out.Variants[id] = v
	}
	return out
}

// userConfigPath returns the per-user config file, or "" without a home.
func userConfigPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".munchers", "configs", name)
}
