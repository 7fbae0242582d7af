package export

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/localscope/localscope-cli/internal/analysis"
	"github.com/localscope/localscope-cli/internal/viability"
)

// Sheet names.
const (
	ResultsSheet     = "Results"
	CompetitorsSheet = "Competitors"
)

// ResultHeaders are the column titles of the results sheet.
var ResultHeaders = []string{
	"Address", "Formatted address", "Category", "Radius (m)", "Neighborhood",
	"Latitude", "Longitude", "Overall score", "Verdict",
	"Competition", "Competition tier", "Transit", "Transit tier",
	"Rent", "Rent tier", "Demographic", "Demographic tier",
	"Rent per m²", "Competitors", "Transit stops", "Insights", "Analysis ID", "Error",
}

var competitorHeaders = []string{"Analysis ID", "Address", "Name", "Rating", "Distance (m)", "Place ID"}

// Outcome is one batch row: the request and either its report or the
// error that stopped it.
type Outcome struct {
	Request analysis.Request
	Report  *analysis.Report
	Err     error
}

// Workbook accumulates batch outcomes into an XLSX file.
type Workbook struct {
	file        *xlsx.File
	results     *xlsx.Sheet
	competitors *xlsx.Sheet
}

// NewWorkbook creates a workbook with header rows in place.
func NewWorkbook() (*Workbook, error) {
	f := xlsx.NewFile()
	results, err := f.AddSheet(ResultsSheet)
	if err != nil {
		return nil, eris.Wrap(err, "export: add results sheet")
	}
	competitors, err := f.AddSheet(CompetitorsSheet)
	if err != nil {
		return nil, eris.Wrap(err, "export: add competitors sheet")
	}
	addStrings(results.AddRow(), ResultHeaders...)
	addStrings(competitors.AddRow(), competitorHeaders...)
	return &Workbook{file: f, results: results, competitors: competitors}, nil
}

// Add appends one outcome. Failed outcomes keep the request columns and
// fill only the Error column.
func (w *Workbook) Add(o Outcome) {
	row := w.results.AddRow()
	r := o.Report
	if r == nil {
		addStrings(row, o.Request.Address, "", o.Request.Category)
		if o.Request.Radius != 0 {
			row.AddCell().SetInt(o.Request.Radius)
		} else {
			row.AddCell()
		}
		for i := 4; i < len(ResultHeaders)-1; i++ {
			row.AddCell()
		}
		addStrings(row, analysis.UserMessage(o.Err))
		return
	}

	res := r.Result
	addStrings(row, r.Address, r.FormattedAddress, r.Category.Label)
	row.AddCell().SetInt(r.RadiusMeters)
	addStrings(row, r.Neighborhood)
	row.AddCell().SetFloat(r.Location.Latitude)
	row.AddCell().SetFloat(r.Location.Longitude)
	row.AddCell().SetInt(res.OverallScore)
	addStrings(row, string(res.Band))
	for _, l := range []viability.LayerScore{res.Competition, res.Transit, res.Rent, res.Demographic} {
		row.AddCell().SetInt(l.Score)
		addStrings(row, string(l.Tier))
	}
	row.AddCell().SetFloat(res.RentPerArea)
	row.AddCell().SetInt(r.CompetitorCount)
	row.AddCell().SetInt(r.TransitCount)
	addStrings(row, joinInsights(res.Insights), r.ID, "")

	for _, c := range r.Competitors {
		cr := w.competitors.AddRow()
		addStrings(cr, r.ID, r.Address, c.Name)
		if c.Rating != nil {
			cr.AddCell().SetFloat(*c.Rating)
		} else {
			cr.AddCell()
		}
		cr.AddCell().SetInt(int(c.DistanceMeters + 0.5))
		addStrings(cr, c.ID)
	}
}

// Save writes the workbook to path.
func (w *Workbook) Save(path string) error {
	if err := w.file.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func addStrings(row *xlsx.Row, values ...string) {
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func joinInsights(in []viability.Insight) string {
	parts := make([]string, len(in))
	for i, x := range in {
		parts[i] = x.Icon + " " + x.Text
	}
	return strings.Join(parts, "\n")
}
