package neighborhood

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk YAML layout of a reference table.
type tableFile struct {
	City          string             `yaml:"city"`
	Neighborhoods map[string]Profile `yaml:"neighborhoods"`
}

// LoadFile reads a reference table from a YAML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "neighborhood: read table %s", path)
	}
	return Parse(data)
}

// Parse decodes a YAML reference table:
//
//	city: Buenos Aires
//	neighborhoods:
//	  Palermo: {rent_per_area: 38000, socioeconomic_tier: medium_high, density_tier: high, price_category: premium}
//	  _default: {rent_per_area: 22000, socioeconomic_tier: medium, density_tier: medium, price_category: medium}
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "neighborhood: parse table")
	}
	if len(f.Neighborhoods) == 0 {
		return nil, eris.New("neighborhood: table has no neighborhoods")
	}
	return NewTable(f.City, f.Neighborhoods)
}

// Marshal encodes t in the format Parse reads.
func Marshal(t *Table) ([]byte, error) {
	data, err := yaml.Marshal(tableFile{City: t.City(), Neighborhoods: t.Profiles()})
	if err != nil {
		return nil, eris.Wrap(err, "neighborhood: marshal table")
	}
	return data, nil
}
