package cmd

import (
	"fmt"

	"github.com/Alex-H307/cafe-system/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables in the catalog with their row counts",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()

		fmt.Println("📋 Tables:")
		for _, m := range a.registry.Models() {
			n, err := table.New(m, a.store).Len()
			if err != nil {
				fail(err)
			}
			fmt.Printf("  (%d): %s %s\n", m.ID, color.CyanString(m.Name), color.HiBlackString("[%d rows]", n))
		}
	},
}
