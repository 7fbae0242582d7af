package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/localscope/localscope-cli/internal/httpapi"
	"github.com/localscope/localscope-cli/internal/viability"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [input.json]",
	Short: "Score pre-fetched places without calling Google",
	Long:  "Reads a JSON document with competitors, transit_stops, neighborhood, category and radius (from a file or stdin) and prints the viability result.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("evaluate"); err != nil {
			return err
		}
		eval, err := initEvaluator(cfg)
		if err != nil {
			return err
		}

		var r io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return eris.Wrapf(err, "open %s", args[0])
			}
			defer f.Close() //nolint:errcheck
			r = f
		}

		res, err := evaluateJSON(eval, r)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func evaluateJSON(eval *viability.Evaluator, r io.Reader) (viability.Result, error) {
	var req httpapi.EvaluateRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return viability.Result{}, eris.Wrap(err, "decode evaluate input")
	}
	if req.Radius <= 0 {
		return viability.Result{}, eris.New("evaluate: radius must be positive")
	}
	return eval.Evaluate(viability.Input{
		Competitors:  req.Competitors,
		TransitStops: req.TransitStops,
		Neighborhood: req.Neighborhood,
		Category:     req.Category,
		RadiusMeters: req.Radius,
	}), nil
}
