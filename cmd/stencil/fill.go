package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fillOut string

var fillCmd = &cobra.Command{
	Use:   "fill <template-name> <candidate.json>",
	Short: "Fill a registered template with a candidate record",
	Long: `Fill loads a registered template's cleaned copy, validates the
candidate JSON, replicates repeated blocks to match the candidate's
record counts, and writes the populated document.

Examples:
  stencil fill acme-standard jane_doe.json
  stencil fill acme-standard jane_doe.json -o out/jane_doe_cv.docx`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, svc, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		out, err := svc.FillFile(cmd.Context(), args[0], args[1], fillOut)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	fillCmd.Flags().StringVarP(&fillOut, "output", "o", "", "output path (default: derived from candidate name)")
	rootCmd.AddCommand(fillCmd)
}
