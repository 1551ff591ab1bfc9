package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Alex-H307/cafe-system/integrity"
	"github.com/Alex-H307/cafe-system/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	deleteAt  bool
	deleteYes bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <table> <key>",
	Short: "Delete a row and, after confirmation, the rows that reference it",
	Long: `Delete the row whose primary key is <key>.

Rows in other tables that reference it (directly or through other rows) are
listed first and deleted with it only after confirmation. Use --yes to
confirm without a prompt. With --at, <key> is the ordinal position shown by
'cafe list'.

Examples:
  cafe delete "Customer Details" 4
  cafe delete "Staff Details" 1 --yes
  cafe delete Stocks 0 --at
`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		m := a.model(args[0])
		key := args[1]

		if deleteAt {
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

		deps, err := a.checker.Delete(m, key, confirmCascade)
		if errors.Is(err, integrity.ErrCascadeDeclined) {
			fmt.Println("⚠️  Cancelled deletion.")
			return
		}
		if err != nil {
			fail(err)
		}
		color.Green("✅ Successfully deleted %s record %s and %d dependent record(s).", m.Name, key, len(deps))
	},
}

func confirmCascade(deps []integrity.Dependent) bool {
	color.Yellow("⚠️  This deletion will also delete the following records:")
	for _, d := range deps {
		fmt.Printf("  %s(%s): %s\n", strings.Repeat("  ", d.Depth-1), d.Table, d.Record.String())
	}
	if deleteYes {
		return true
	}

	fmt.Print("\nAre you sure you want to delete these records? (Y/N) ")
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteAt, "at", false, "Treat <key> as an ordinal position from 'cafe list'")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Confirm cascading deletes without prompting")
}
