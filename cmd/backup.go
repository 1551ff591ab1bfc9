package cmd

import (
	"fmt"

	"github.com/Alex-H307/cafe-system/backup"
	"github.com/Alex-H307/cafe-system/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	backupPath    string
	backupRestore bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the store file to the backup file and verify it",
	Long: `Copy the store file to the backup file and verify the copy by checksum.

Examples:
  cafe backup                         # db.txt -> db_backup.txt
  cafe backup --to /mnt/usb/db.txt    # custom target
  cafe backup --restore               # db_backup.txt -> db.txt
`,
	Run: func(cmd *cobra.Command, args []string) {
		target := backupPath
		if target == "" {
			target = utils.GetBackupPath()
		}

		var (
			res *backup.Result
			err error
		)
		if backupRestore {
			res, err = backup.Restore(target, storePath)
		} else {
			res, err = backup.Copy(storePath, target)
		}
		if err != nil {
			fail(err)
		}

		color.Green("✅ Copied %s -> %s", res.Source, res.Target)
		fmt.Printf("   %d bytes, xxh3 %016x\n", res.Bytes, res.Checksum)
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupPath, "to", "", "Backup file (default $CAFE_BACKUP_PATH or db_backup.txt)")
	backupCmd.Flags().BoolVar(&backupRestore, "restore", false, "Copy the backup over the store instead")
}
