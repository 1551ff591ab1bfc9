package cmd

import (
	"fmt"
	"strconv"

	"github.com/Alex-H307/cafe-system/table"
	"github.com/Alex-H307/cafe-system/validator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	amendAt      bool
	amendRaw     bool
	amendAccount string
)

var amendCmd = &cobra.Command{
	Use:   "amend <table> <key> <field> <value>",
	Short: "Change one field of a row",
	Long: `Change one field of the row whose primary key is <key>.

With --at, <key> is the ordinal position shown by 'cafe list' instead.
Positions shift when earlier rows are deleted; prefer primary keys.

Examples:
  cafe amend Stocks 3 stockValue 25 --account 0
  cafe amend "Customer Details" 0 points 120
  cafe amend "Customer Details" 2 lastName Hopper --at
`,
	Args: cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		m := a.model(args[0])
		key, field, value := args[1], args[2], args[3]

		if !amendRaw {
			col, ok := m.FieldIndex(field)
			if ok {
				checked, err := validator.ValidateValue(m.Fields[col], value)
				if err != nil {
					fail(err)
				}
				value = checked
			}
		}

		if amendAt {
			pos, err := strconv.Atoi(key)
			if err != nil {
				fail(err)
			}
			rows, err := a.checker.Table(m).Rows()
			if err != nil {
				fail(err)
			}
			if pos < 0 || pos >= len(rows) {
				fail(fmt.Errorf("%w: %s has %d rows, got position %d", table.ErrIndexOutOfRange, m.Name, len(rows), pos))
			}
			key = rows[pos].Key()
		}

		recorder := stockRecorder(a, m, amendAccount)

		if err := a.checker.Amend(m, key, field, value); err != nil {
			fail(err)
		}
		color.Green("✅ Amended %s record %s: %s = %s", m.Name, key, field, value)

		if recorder != nil {
			if _, err := recorder.Amended(key, field, value); err != nil {
				fail(err)
			}
			color.HiBlack("📝 Transaction history updated")
		}
	},
}

func init() {
	amendCmd.Flags().BoolVar(&amendAt, "at", false, "Treat <key> as an ordinal position from 'cafe list'")
	amendCmd.Flags().BoolVar(&amendRaw, "raw", false, "Skip field rule checks (foreign keys are still checked)")
	amendCmd.Flags().StringVar(&amendAccount, "account", "", "Account ID to record stock changes against")
}
