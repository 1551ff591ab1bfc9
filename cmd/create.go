package cmd

import (
	"fmt"
	"strings"

	"github.com/Alex-H307/cafe-system/audit"
	"github.com/Alex-H307/cafe-system/schema"
	"github.com/Alex-H307/cafe-system/validator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	createRaw     bool
	createAccount string
)

var createCmd = &cobra.Command{
	Use:   "create <table> <value>...",
	Short: "Create a row; the primary key is assigned automatically",
	Long: `Create a row from one value per field, skipping the primary key.

Values are checked against the field rules (type, length, format, range)
unless --raw is given. An empty value ("") takes the field default, or None
for optional fields. Foreign keys must reference an existing row.

Creating a Stocks row with --account also records it in Transaction History.

Examples:
  cafe create "Customer Details" Ada Lovelace 01234567890 ada@example.com ""
  cafe create Stocks Crisps 40 10 01/02/24 09:30 "" --account 0
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		m := a.model(args[0])
		values := args[1:]

		if !createRaw {
			checked, err := validator.ValidateRecord(m, values)
			if err != nil {
				fail(err)
			}
			values = checked
		}

		recorder := stockRecorder(a, m, createAccount)

		rec, err := a.checker.Create(m, values)
		if err != nil {
			fail(err)
		}
		color.Green("✅ Created %s record %s", m.Name, rec.Key())
		fmt.Println("  ", strings.Join(rec, " "))

		if recorder != nil {
			if _, err := recorder.Created(rec); err != nil {
				fail(err)
			}
			fmt.Println("📝 Transaction history updated")
		}
	},
}

// stockRecorder returns nil when the change is not audited. It fails before
// any write when the account does not exist.
func stockRecorder(a *app, m schema.Model, account string) *audit.Recorder {
	if account == "" || !audit.Tracks(m) {
		return nil
	}
	recorder, err := audit.NewRecorder(a.registry, a.checker, account)
	if err != nil {
		fail(err)
	}
	if err := recorder.Check(); err != nil {
		fail(err)
	}
	return recorder
}

func init() {
	createCmd.Flags().BoolVar(&createRaw, "raw", false, "Skip field rule checks (foreign keys are still checked)")
	createCmd.Flags().StringVar(&createAccount, "account", "", "Account ID to record stock changes against")
}
