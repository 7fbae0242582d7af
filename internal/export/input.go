// Package export reads batch analysis input and writes batch reports.
package export

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/localscope/localscope-cli/internal/analysis"
)

// Input columns. A header row naming them is optional; without one the
// columns are address, category, radius in that order.
var inputColumns = []string{"address", "category", "radius"}

// ReadRequestsFile reads batch requests from a .csv or .xlsx file.
func ReadRequestsFile(ctx context.Context, path string) ([]analysis.Request, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err := readXLSXRows(path)
		if err != nil {
			return nil, err
		}
		return requestsFromRows(rows)
	case ".csv", ".txt", "":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "export: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		return ReadRequests(ctx, f)
	default:
		return nil, eris.Errorf("export: unsupported input format %q", filepath.Ext(path))
	}
}

// ReadRequests parses CSV batch input.
func ReadRequests(ctx context.Context, r io.Reader) ([]analysis.Request, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "export: context cancelled")
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "export: read csv row")
		}
		rows = append(rows, record)
	}
	return requestsFromRows(rows)
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "export: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("export: xlsx has no sheets")
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// requestsFromRows maps rows to requests, honoring an optional header row.
// Blank rows are skipped.
func requestsFromRows(rows [][]string) ([]analysis.Request, error) {
	index := map[string]int{"address": 0, "category": 1, "radius": 2}
	start := 0
	if len(rows) > 0 && isHeader(rows[0]) {
		index = map[string]int{}
		for i, name := range rows[0] {
			index[strings.ToLower(strings.TrimSpace(name))] = i
		}
		if _, ok := index["address"]; !ok {
			return nil, eris.New("export: header has no address column")
		}
		start = 1
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	reqs := make([]analysis.Request, 0, len(rows)-start)
	for n, row := range rows[start:] {
		addr := field(row, "address")
		if addr == "" && field(row, "category") == "" {
			continue
		}
		req := analysis.Request{Address: addr, Category: field(row, "category")}
		if s := field(row, "radius"); s != "" {
			radius, err := strconv.Atoi(s)
			if err != nil {
				return nil, eris.Errorf("export: row %d: invalid radius %q", n+start+1, s)
			}
			req.Radius = radius
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func isHeader(row []string) bool {
	for _, cell := range row {
		c := strings.ToLower(strings.TrimSpace(cell))
		for _, col := range inputColumns {
			if c == col {
				return true
			}
		}
	}
	return false
}
