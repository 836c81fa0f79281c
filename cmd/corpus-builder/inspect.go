// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-builder/internal/preview"
	"github.com/pdiddy/corpus-builder/internal/tablefile"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <table-file>",
	Short: "Print the schema and first rows of a table file",
	Long: `Inspect reads any supported table file (.xlsx, .arrow, .db, .csv) and prints
its columns with their kinds, followed by the first rows.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("rows")
		width, _ := cmd.Flags().GetInt("width")

		frame, err := tablefile.Read(args[0])
		if err != nil {
			return err
		}
		for _, c := range frame.Schema {
			fmt.Fprintf(os.Stdout, "%s\t%s\n", c.Name, c.Kind)
		}
		fmt.Fprintln(os.Stdout)
		preview.Write(os.Stdout, frame, limit, width)
		return nil
	},
}

func init() {
	inspectCmd.Flags().Int("rows", 10, "number of rows to print (0 for all)")
	inspectCmd.Flags().Int("width", 40, "maximum display width of a cell")

	rootCmd.AddCommand(inspectCmd)
}
