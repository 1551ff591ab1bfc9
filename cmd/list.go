package cmd

import (
	"fmt"

	"github.com/Alex-H307/cafe-system/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <table>",
	Short: "Print every row of a table in stored order",
	Long: `Print the field names of a table followed by every row in stored order.

The position column is the ordinal position accepted by --at on amend and
delete. It changes whenever an earlier row is deleted.

Examples:
  cafe list Stocks
  cafe list 6
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		t := a.checker.Table(a.model(args[0]))

		lines, err := t.ListAll()
		if err != nil {
			fail(err)
		}

		color.New(color.Bold).Printf("%s:\n", t.Name())
		color.Cyan("  #  %s", lines[0])
		if lines[1] == table.EmptyListing {
			fmt.Println("     " + lines[1])
			return
		}
		for i, line := range lines[1:] {
			fmt.Printf("%3d  %s\n", i, line)
		}
	},
}
