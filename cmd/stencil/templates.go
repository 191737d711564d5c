package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/stencil/internal/store"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage registered templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, svc, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		templates, err := svc.Store().List()
		if err != nil {
			return err
		}
		if len(templates) == 0 {
			fmt.Println("no templates registered")
			return nil
		}
		for _, t := range templates {
			fmt.Printf("%-24s %2d sections  registered %s\n",
				t.Name, len(t.Schema.Sections), t.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a template's inferred schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, svc, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		t, err := svc.Store().Get(args[0])
		if err != nil {
			return err
		}
		out := map[string]any{
			"name":         t.Name,
			"source_file":  t.SourceFile,
			"cleaned_path": t.CleanedPath,
			"created_at":   t.CreatedAt,
			"sections":     sectionSummaries(t),
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(out)
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a template from the index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, svc, log, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		t, err := svc.Store().Get(args[0])
		if err != nil {
			return err
		}
		if err := svc.Store().Delete(t.Name); err != nil {
			return err
		}
		if t.CleanedPath != "" {
			if err := os.Remove(t.CleanedPath); err != nil && !os.IsNotExist(err) {
				log.Warn("removing cleaned copy", "path", t.CleanedPath, "err", err)
			}
		}
		fmt.Printf("deleted %q\n", t.Name)
		return nil
	},
}

func sectionSummaries(t *store.Template) []map[string]any {
	out := make([]map[string]any, 0, len(t.Schema.Sections))
	for _, s := range t.Schema.Sections {
		entry := map[string]any{
			"type":       s.Type.String(),
			"header":     s.HeaderText,
			"confidence": s.Confidence,
		}
		if s.RecordMarker {
			entry["record_marker"] = true
		}
		out = append(out, entry)
	}
	return out
}

func init() {
	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd, templatesDeleteCmd)
	rootCmd.AddCommand(templatesCmd)
}
