package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Catalog holds CLI flags for the optional country/city catalog
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to the country/city catalog TOML (validation disabled when empty)",
			Category:    "Catalog",
			Sources:     cli.EnvVars("ARGUS_CATALOG"),
			Destination: &x.path,
		},
	}
}

// Configure loads the catalog when a path is set. A nil catalog disables
// code validation on preference writes.
func (x *Catalog) Configure() (*model.Catalog, error) {
	if x.path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", x.path))
	}

	var catalog model.Catalog
	if err := toml.Unmarshal(raw, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog file", goerr.V("path", x.path))
	}

	if len(catalog.Countries) == 0 {
		return nil, goerr.New("catalog has no countries", goerr.V("path", x.path))
	}
	if len(catalog.Cities) == 0 {
		return nil, goerr.New("catalog has no cities", goerr.V("path", x.path))
	}

	return &catalog, nil
}
