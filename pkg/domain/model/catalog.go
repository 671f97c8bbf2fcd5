package model

// Catalog lists the country and city codes the deployment accepts in watch
// preferences. It is optional: without a catalog, any non-empty code is
// accepted and validation is left to the provider.
type Catalog struct {
	Countries []CatalogEntry `toml:"countries"`
	Cities    []CatalogEntry `toml:"cities"`
}

// CatalogEntry is one selectable code with a human-readable name.
type CatalogEntry struct {
	Code string `toml:"code"`
	Name string `toml:"name"`
}

// HasCountry reports whether the code is a known country.
func (c *Catalog) HasCountry(code string) bool {
	return hasCode(c.Countries, code)
}

// HasCity reports whether the code is a known city.
func (c *Catalog) HasCity(code string) bool {
	return hasCode(c.Cities, code)
}

func hasCode(entries []CatalogEntry, code string) bool {
	for _, e := range entries {
		if e.Code == code {
			return true
		}
	}
	return false
}
