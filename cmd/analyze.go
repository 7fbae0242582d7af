package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/localscope/localscope-cli/internal/analysis"
)

var (
	analyzeCategory string
	analyzeRadius   int
	analyzeJSON     bool
	analyzeMapPath  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <address>",
	Short: "Score a single address",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := initAnalyzer("analyze")
		if err != nil {
			return err
		}

		report, err := a.Analyze(ctx, analysis.Request{
			Address:  strings.Join(args, " "),
			Category: analyzeCategory,
			Radius:   analyzeRadius,
		})
		if err != nil {
			return userError(err)
		}

		if analyzeMapPath != "" {
			if err := writeMap(analyzeMapPath, report); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if analyzeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printReport(out, report)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeCategory, "category", "c", "", "business category (label from `localscope categories` or free text)")
	analyzeCmd.Flags().IntVarP(&analyzeRadius, "radius", "r", 0, "search radius in meters (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full report as JSON")
	analyzeCmd.Flags().StringVar(&analyzeMapPath, "map", "", "write the map layers to this GeoJSON file")
	rootCmd.AddCommand(analyzeCmd)
}

// userError keeps the user-facing message of input and resolution errors
// and wraps anything else.
func userError(err error) error {
	var ie *analysis.InputError
	var re *analysis.ResolutionError
	if errors.As(err, &ie) || errors.As(err, &re) {
		zap.L().Debug("analysis failed", zap.Error(err))
		return eris.New(analysis.UserMessage(err))
	}
	return eris.Wrap(err, "analyze")
}

func writeMap(path string, r *analysis.Report) error {
	data, err := r.Map.MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "encode map")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write map %s", path)
	}
	return nil
}

func printReport(w io.Writer, r *analysis.Report) {
	res := r.Result
	fmt.Fprintf(w, "%s\n", r.FormattedAddress)
	fmt.Fprintf(w, "Neighborhood: %s", r.Neighborhood)
	if !r.NeighborhoodResolved {
		fmt.Fprint(w, " (fallback)")
	}
	fmt.Fprintf(w, "\nCategory:     %s\n", r.Category.Display())
	fmt.Fprintf(w, "Radius:       %d m\n\n", r.RadiusMeters)

	fmt.Fprintf(w, "Overall score: %d/100 (%s)\n\n", res.OverallScore, res.Band)
	layers := []struct {
		name  string
		score int
		tier  string
		why   string
	}{
		{"Competition", res.Competition.Score, string(res.Competition.Tier), res.Competition.Rationale},
		{"Transit", res.Transit.Score, string(res.Transit.Tier), res.Transit.Rationale},
		{"Rent", res.Rent.Score, string(res.Rent.Tier), res.Rent.Rationale},
		{"Demographic", res.Demographic.Score, string(res.Demographic.Tier), res.Demographic.Rationale},
	}
	for _, l := range layers {
		fmt.Fprintf(w, "  %-12s %3d  %-6s %s\n", l.name, l.score, l.tier, l.why)
	}

	fmt.Fprintf(w, "\nCompetitors: %d  Transit stops: %d\n\n", r.CompetitorCount, r.TransitCount)
	for _, in := range res.Insights {
		fmt.Fprintf(w, "%s %s\n", in.Icon, in.Text)
	}
}
