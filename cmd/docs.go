package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Alex-H307/cafe-system/generator"
	"github.com/Alex-H307/cafe-system/schema"
	"github.com/spf13/cobra"
)

var (
	docsFormat string
	docsOutput string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate documentation from the table catalog",
	Long: `Generate an ERD diagram or field reference from the table catalog.

Supported formats:
  - mermaid: Mermaid ERD diagram
  - markdown: field reference tables

Examples:
  cafe docs --format mermaid --output erd.md
  cafe docs --format markdown
`,
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		models := a.registry.Models()

		var content string
		switch docsFormat {
		case "mermaid":
			content = generateMermaidContent(a.registry, models)
		case "markdown":
			content = generateMarkdownContent(models)
		default:
			fmt.Printf("❌ Unsupported format: %s\n", docsFormat)
			fmt.Println("Supported formats: mermaid, markdown")
			os.Exit(1)
		}

		if docsOutput == "" {
			fmt.Print(content)
			return
		}
		if err := os.WriteFile(docsOutput, []byte(content), 0644); err != nil {
			fmt.Printf("❌ Error writing %s: %v\n", docsOutput, err)
			os.Exit(1)
		}
		fmt.Printf("✅ Documentation saved to: %s\n", docsOutput)
	},
}

func generateMermaidContent(registry *schema.Registry, models []schema.Model) string {
	var content strings.Builder

	content.WriteString("```mermaid\n")
	content.WriteString("erDiagram\n")

	for _, model := range models {
		content.WriteString(fmt.Sprintf("    %s {\n", generator.TableName(model)))
		for _, f := range model.Fields {
			key := ""
			switch f.Key {
			case schema.PrimaryKey:
				key = " PK"
			case schema.ForeignKey:
				key = " FK"
			}
			content.WriteString(fmt.Sprintf("        %s %s%s\n", f.Type, f.Name, key))
		}
		content.WriteString("    }\n")
	}

	for _, model := range models {
		for _, dep := range registry.Dependents(model.ID) {
			content.WriteString(fmt.Sprintf("    %s ||--o{ %s : \"%s\"\n",
				generator.TableName(model),
				generator.TableName(dep.Model),
				dep.Model.Fields[dep.Column].Name,
			))
		}
	}

	content.WriteString("```\n")
	return content.String()
}

func generateMarkdownContent(models []schema.Model) string {
	var content strings.Builder

	content.WriteString("# Tables\n")
	for _, model := range models {
		content.WriteString(fmt.Sprintf("\n## %s (`%s`)\n\n", model.Name, model.Marker()))
		content.WriteString("| Field | Key | Type | Max length | Default | Check | Required |\n")
		content.WriteString("|---|---|---|---|---|---|---|\n")
		for _, f := range model.Fields {
			maxLen := ""
			if f.MaxLength > 0 {
				maxLen = fmt.Sprint(f.MaxLength)
			}
			def := ""
			if f.Default != nil {
				def = *f.Default
			}
			check := ""
			if f.Check != nil {
				check = fmt.Sprintf("%s: %s", f.Check.Kind, f.Check.Arg)
			}
			content.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %t |\n",
				f.Name, f.Key, f.Type, maxLen, def, check, f.Required))
		}
	}
	return content.String()
}

func init() {
	docsCmd.Flags().StringVarP(&docsFormat, "format", "f", "markdown", "Documentation format (mermaid, markdown)")
	docsCmd.Flags().StringVarP(&docsOutput, "output", "o", "", "Output file (default stdout)")
}
