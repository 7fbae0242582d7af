package neighborhood

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `
city: Springfield
neighborhoods:
  Downtown:
    rent_per_area: 5000
    socioeconomic_tier: high
    density_tier: high
    price_category: premium
  Old Mill:
    rent_per_area: 1200
    socioeconomic_tier: low
    density_tier: low
    price_category: economic
  _default:
    rent_per_area: 2500
    socioeconomic_tier: medium
    density_tier: medium
    price_category: medium
`

func TestParse(t *testing.T) {
	table, err := Parse([]byte(sampleTable))
	require.NoError(t, err)

	assert.Equal(t, "Springfield", table.City())
	assert.Equal(t, []string{"Downtown", "Old Mill"}, table.Names())

	p, ok := table.Lookup("old mill")
	require.True(t, ok)
	assert.Equal(t, PriceEconomic, p.PriceCategory)

	p, ok = table.Lookup("Shelbyville")
	assert.False(t, ok)
	assert.InDelta(t, 2500, p.RentPerArea, 0.001)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "city: [unclosed"},
		{"empty", "city: Nowhere\n"},
		{"no default", "neighborhoods:\n  A: {rent_per_area: 1, socioeconomic_tier: low, density_tier: low, price_category: economic}\n"},
		{"unknown enum", "neighborhoods:\n  _default: {rent_per_area: 1, socioeconomic_tier: upper, density_tier: low, price_category: economic}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_DefaultTableRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultTable())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "caba.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTable().Profiles(), loaded.Profiles())
	assert.Equal(t, CABA, loaded.City())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read table")
}
