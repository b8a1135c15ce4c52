// Package catalogfile reads a stage catalog from a YAML, JSON or TOML file.
//
//	materials:
//	  blouse:
//	    stages: [Initial Checking, Cutting, Stitching, Final Checking, Delivery]
//	    production: [Cutting, Stitching]
//
// Material keys use the wire names of catalog.MaterialType. The file is read
// once at start-up; there is no reload.
package catalogfile

import (
	"errors"
	"fmt"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/pkg/errs"

	"github.com/spf13/viper"
)

type pathConfig struct {
	Stages     []string `mapstructure:"stages"`
	Production []string `mapstructure:"production"`
}

type fileConfig struct {
	Materials map[string]pathConfig `mapstructure:"materials"`
}

// Load reads path and builds a validated catalog. Every problem in the file is
// reported in the returned error.
func Load(path string) (*catalog.Catalog, error) {
	if path == "" {
		return nil, errs.NewValueIsRequiredError("catalog file")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var cfg fileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}

	definitions := make(map[catalog.MaterialType]catalog.PathDefinition, len(cfg.Materials))
	var problems []error
	for name, p := range cfg.Materials {
		m, err := catalog.ParseMaterialType(name)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		definitions[m] = catalog.PathDefinition{Stages: p.Stages, Production: p.Production}
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return catalog.New(definitions)
}
