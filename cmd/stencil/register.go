package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerName string

var registerCmd = &cobra.Command{
	Use:   "register <template.docx>",
	Short: "Infer a template's schema and index a cleaned copy",
	Long: `Register analyzes a Word template: classifies its section headers,
detects name and contact lines, strips the example content, and stores
the inferred schema alongside a cleaned copy ready for filling.

Examples:
  stencil register cv_template.docx
  stencil register cv_template.docx --name acme-standard`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, svc, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		tmpl, err := svc.Register(cmd.Context(), args[0], registerName)
		if err != nil {
			return err
		}

		fmt.Printf("registered %q (%d sections)\n", tmpl.Name, len(tmpl.Schema.Sections))
		for _, s := range tmpl.Schema.Sections {
			fmt.Printf("  %-16s conf=%.2f  %q\n", s.Type.String(), s.Confidence, s.HeaderText)
		}
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "template name (default: file base name)")
	rootCmd.AddCommand(registerCmd)
}
