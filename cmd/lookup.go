package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <table> <field> <value>",
	Short: "Find a row by any field",
	Long: `Find a row whose field equals value. Numeric fields compare as numbers.

Examples:
  cafe lookup Stocks stockName Crisps
  cafe lookup "Customer Details" customerID 3
`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		t := a.checker.Table(a.model(args[0]))

		rec, ok, err := t.Lookup(args[1], args[2])
		if err != nil {
			fail(err)
		}
		if !ok {
			fmt.Printf("⚠️  Record wasn't found. Did you mean to type '%s'?\n", args[2])
			return
		}
		fmt.Println(rec.String())
	},
}
