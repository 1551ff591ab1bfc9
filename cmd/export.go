package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Alex-H307/cafe-system/database"
	"github.com/Alex-H307/cafe-system/generator"
	"github.com/Alex-H307/cafe-system/schema"
	"github.com/Alex-H307/cafe-system/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportDryRun  bool
	exportTimeout time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Mirror every table into PostgreSQL",
	Long: `Mirror every table into the PostgreSQL database at DATABASE_URL.

Existing tables of the same names are dropped and recreated. Optional
fields stored as None become NULL.

Examples:
  cafe export --dry-run          # Print the SQL only
  DATABASE_URL=postgres://... cafe export
`,
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()

		if exportDryRun {
			stmts, err := generator.GenerateSQL(a.registry)
			if err != nil {
				fail(err)
			}
			for _, s := range append(generator.GenerateDropSQL(a.registry), stmts...) {
				fmt.Println(s)
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		pool, err := database.GetPool(ctx)
		if err != nil {
			fail(err)
		}
		defer database.ClosePool()

		counts, err := database.Export(ctx, pool, a.registry, func(m schema.Model) ([]table.Record, error) {
			return a.checker.Table(m).Rows()
		})
		if err != nil {
			fail(err)
		}

		for _, m := range a.registry.Models() {
			fmt.Printf("  • %-24s %d rows\n", generator.TableName(m), counts[m.Name])
		}
		color.Green("✅ Export completed")
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "Preview the SQL that would be executed")
	exportCmd.Flags().DurationVarP(&exportTimeout, "timeout", "t", 30*time.Second, "Timeout for the export")
}
