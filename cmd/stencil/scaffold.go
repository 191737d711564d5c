package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/stencil/internal/docx"
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <output.docx>",
	Short: "Generate a sample CV template document",
	Long: `Scaffold writes a ready-made CV template with every section kind the
engine recognizes: a name line, contact line, summary, a two-column
skills table, numbered project blocks, work experience, education, and
certifications. Useful as a starting point and for exercising the
register flow end to end.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := docx.New()

		name := doc.AddParagraph("")
		name.AddRun("[fill Name here]").SetBold().SetSizeHalfPoints(56)
		doc.AddParagraph("{{email}} | {{phone}} | {{linkedin}}")

		doc.AddHeading("Professional Summary")
		doc.AddParagraph("[FILL HERE]")

		doc.AddHeading("Skills")
		skills := doc.AddTable(3, 2)
		rows := skills.Rows()
		labels := []string{"Cloud", "DevOps", "Languages"}
		for i, row := range rows {
			cells := row.Cells()
			cells[0].SetText(labels[i])
			cells[1].SetText("[FILL HERE]")
		}

		doc.AddHeading("Projects")
		for i := 1; i <= 2; i++ {
			doc.AddParagraph(fmt.Sprintf("Project #%d", i))
			tbl := doc.AddTable(4, 2)
			fields := []string{"Project Name", "Role", "Duration", "Description"}
			for j, row := range tbl.Rows() {
				cells := row.Cells()
				cells[0].SetText(fields[j])
				cells[1].SetText("[FILL HERE]")
			}
		}

		doc.AddHeading("Work Experience")
		doc.AddParagraph("[FILL HERE]")

		doc.AddHeading("Education")
		doc.AddParagraph("[FILL HERE]")

		doc.AddHeading("Certifications")
		doc.AddParagraph("[FILL HERE]")

		if err := doc.Save(args[0]); err != nil {
			return err
		}
		fmt.Println(args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scaffoldCmd)
}
