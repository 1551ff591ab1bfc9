package cmd

import (
	"fmt"
	"os"

	"github.com/Alex-H307/cafe-system/introspect"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the store file against the catalog",
	Long: `Check the current state of the store file.

This command will:
- Verify the store decodes
- Count the rows of every table segment
- Report rows with the wrong number of fields and duplicate primary keys
- Report foreign keys that reference missing rows
- Report segments no table owns

Examples:
  cafe check
  cafe check --db backup.txt
`,
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		report, err := introspect.InspectStore(a.registry, a.store)
		if err != nil {
			fmt.Printf("❌ Store check failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("📊 Found %d rows in %d table segments\n", report.TotalRows, len(report.Segments))
		for _, s := range report.Segments {
			status := color.GreenString("ok")
			if len(s.Malformed) > 0 || len(s.DuplicateKey) > 0 {
				status = color.RedString("damaged")
			}
			fmt.Printf("  • %-24s %4d rows  next key %-4d %s\n", s.TableName, s.Rows, report.NextKeys[s.TableID], status)
			for _, pos := range s.Malformed {
				fmt.Printf("      row at position %d has the wrong number of fields\n", pos)
			}
			for _, k := range s.DuplicateKey {
				fmt.Printf("      primary key %s appears more than once\n", k)
			}
		}

		if report.Stray > 0 {
			color.Red("⚠️  %d line(s) precede the first table marker", report.Stray)
		}
		for _, m := range report.Unknown {
			color.Yellow("⚠️  Segment %s belongs to no table in the catalog", m)
		}
		for _, d := range report.Dangling {
			color.Yellow("⚠️  %s %s: %s %s does not exist", d.Table, d.Key, d.Field, d.Value)
		}

		if !report.Healthy() {
			fmt.Println("❌ Store check found problems")
			os.Exit(1)
		}
		fmt.Println("✅ Store check completed successfully")
	},
}
