package cmd

import (
	"fmt"
	"os"

	"github.com/Alex-H307/cafe-system/backup"
	"github.com/Alex-H307/cafe-system/utils"
	"github.com/spf13/cobra"
)

var (
	storePath     string
	schemaPath    string
	backupOnStart bool
)

var rootCmd = &cobra.Command{
	Use:   "cafe",
	Short: "Record keeping for the cafe: staff, customers, reservations, stock",
	Long: `cafe manages the business records kept in one obfuscated store file.

Examples:

  cafe tables
  cafe list "Customer Details"
  cafe create "Customer Details" Ada Lovelace 01234567890 ada@example.com 0
  cafe lookup "Customer Details" lastName Lovelace
  cafe delete "Customer Details" 0
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.LoadEnv()
		if storePath == "" {
			storePath = utils.GetStorePath()
		}
		if schemaPath == "" {
			schemaPath = utils.GetSchemaPath()
		}
		if (backupOnStart || utils.GetBackupOnStart()) && cmd != backupCmd {
			if _, err := backup.Copy(storePath, utils.GetBackupPath()); err != nil {
				fmt.Println("⚠️  Startup backup failed:", err)
			}
		}
	},
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "db", "", "Store file (default $CAFE_DB_PATH or db.txt)")
	rootCmd.PersistentFlags().BoolVar(&backupOnStart, "backup-on-start", false, "Copy the store to the backup file before running (default $CAFE_BACKUP_ON_START)")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "YAML catalog (default $CAFE_SCHEMA or the built-in catalog)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(amendCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(docsCmd)
}
