package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localscope/localscope-cli/internal/catalog"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the business categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		grouped := catalog.Grouped()
		for _, g := range catalog.Groups() {
			fmt.Fprintf(out, "%s\n", g)
			for _, c := range grouped[g] {
				fmt.Fprintf(out, "  %s\n", c.Display())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
