package main

import (
	"github.com/fwojciec/seogen"
	"github.com/ilyakaznacheev/cleanenv"
)

// LoadConfig starts from the default configuration, overlays the YAML file
// at path when given, then SEOGEN_* environment variables.
func LoadConfig(path string) (seogen.Config, error) {
	cfg := seogen.DefaultConfig()

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return seogen.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return seogen.Config{}, err
	}
	return cfg, nil
}
