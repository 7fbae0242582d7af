package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/localscope/localscope-cli/internal/analysis"
)

func TestReadRequests(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []analysis.Request
	}{
		{
			name:  "header in any order",
			input: "category,address,radius\nFarmacia,Florida 100,300\n# comment\n,,\nCafetería / Café,\"Av. Corrientes 1000, CABA\",\n",
			want: []analysis.Request{
				{Address: "Florida 100", Category: "Farmacia", Radius: 300},
				{Address: "Av. Corrientes 1000, CABA", Category: "Cafetería / Café"},
			},
		},
		{
			name:  "no header",
			input: "Thames 1500, Bar / Cervecería, 800\nJuramento 2000,Heladería\n",
			want: []analysis.Request{
				{Address: "Thames 1500", Category: "Bar / Cervecería", Radius: 800},
				{Address: "Juramento 2000", Category: "Heladería"},
			},
		},
		{
			name:  "header only",
			input: "Address,Category\n",
			want:  []analysis.Request{},
		},
		{
			name:  "empty",
			input: "",
			want:  []analysis.Request{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadRequests(context.Background(), strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadRequests_Errors(t *testing.T) {
	_, err := ReadRequests(context.Background(), strings.NewReader("address,category,radius\nFlorida 100,Farmacia,lejos\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `row 2: invalid radius "lejos"`)

	_, err = ReadRequests(context.Background(), strings.NewReader("category,radius\nFarmacia,300\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no address column")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ReadRequests(ctx, strings.NewReader("Florida 100,Farmacia\n"))
	assert.Error(t, err)
}

func TestReadRequestsFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("address,category\nFlorida 100,Farmacia\n"), 0o644))
	got, err := ReadRequestsFile(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, []analysis.Request{{Address: "Florida 100", Category: "Farmacia"}}, got)

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, r := range [][]string{{"Address", "Category", "Radius"}, {"Florida 100", "Farmacia", "250"}} {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}
	xlsxPath := filepath.Join(dir, "in.xlsx")
	require.NoError(t, f.Save(xlsxPath))

	got, err = ReadRequestsFile(context.Background(), xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, []analysis.Request{{Address: "Florida 100", Category: "Farmacia", Radius: 250}}, got)

	_, err = ReadRequestsFile(context.Background(), filepath.Join(dir, "in.json"))
	assert.ErrorContains(t, err, "unsupported input format")

	_, err = ReadRequestsFile(context.Background(), filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
