package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localscope/localscope-cli/internal/neighborhood"
)

var neighborhoodsYAML bool

var neighborhoodsCmd = &cobra.Command{
	Use:   "neighborhoods",
	Short: "List the neighborhood reference table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("neighborhoods"); err != nil {
			return err
		}
		eval, err := initEvaluator(cfg)
		if err != nil {
			return err
		}
		table := eval.Table()
		out := cmd.OutOrStdout()

		if neighborhoodsYAML {
			data, err := neighborhood.Marshal(table)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}

		fmt.Fprintf(out, "%s: %d neighborhoods\n\n", table.City(), table.Len())
		fmt.Fprintf(out, "%-24s %10s  %-12s %-8s %s\n", "NAME", "RENT/M²", "SOCIO", "DENSITY", "PRICE")
		names := append(table.Names(), neighborhood.DefaultKey)
		for _, name := range names {
			p, _ := table.Lookup(name)
			fmt.Fprintf(out, "%-24s %10.0f  %-12s %-8s %s\n", name, p.RentPerArea, p.Socioeconomic, p.Density, p.PriceCategory)
		}
		return nil
	},
}

func init() {
	neighborhoodsCmd.Flags().BoolVar(&neighborhoodsYAML, "yaml", false, "print the table as YAML, in the format accepted by neighborhood.data_path")
	rootCmd.AddCommand(neighborhoodsCmd)
}
