package cmd

import (
	"fmt"
	"strings"

	"github.com/Alex-H307/cafe-system/audit"
	"github.com/Alex-H307/cafe-system/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historyStock   string
	historyAccount string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the stock transaction history",
	Long: `Show Transaction History rows, newest first.

Examples:
  cafe history                  # Show all history
  cafe history --limit 10       # Show the last 10 changes
  cafe history --stock 3        # Show changes to one stock row
  cafe history --account 0      # Show changes made by one account
`,
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		m := a.model(audit.HistoryTable)
		t := a.checker.Table(m)

		rows, err := t.Rows()
		if err != nil {
			fail(err)
		}

		stockCol, _ := m.FieldIndex("stockID")
		accountCol, _ := m.FieldIndex("accountID")
		var filtered []table.Record
		for i := len(rows) - 1; i >= 0; i-- {
			r := rows[i]
			if historyStock != "" && (stockCol < 0 || stockCol >= len(r) || r[stockCol] != historyStock) {
				continue
			}
			if historyAccount != "" && (accountCol < 0 || accountCol >= len(r) || r[accountCol] != historyAccount) {
				continue
			}
			filtered = append(filtered, r)
			if historyLimit > 0 && len(filtered) == historyLimit {
				break
			}
		}

		if len(filtered) == 0 {
			fmt.Println("📋 No transaction history found")
			return
		}

		fmt.Printf("📋 Transaction history (%d):\n", len(filtered))
		color.Cyan("  %s", strings.Join(m.FieldNames(), " | "))
		for _, r := range filtered {
			fmt.Printf("  %s\n", strings.Join(r, " | "))
		}
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 0, "Limit number of entries shown (0 = all)")
	historyCmd.Flags().StringVar(&historyStock, "stock", "", "Only show changes to this stock ID")
	historyCmd.Flags().StringVar(&historyAccount, "account", "", "Only show changes made by this account ID")
}
