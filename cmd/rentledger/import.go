// Import command restores data from a backup archive or a legacy JSON
// export.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentledger/rentledger/internal/backup"
)

var (
	importReplace     bool
	importContentType string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore data from a backup file",
	Long: `Import restores data from a backup archive (.zip) or a legacy
JSON export. The format is detected from the file name and content type.

With --replace, all existing data is removed before the import.

Example:
  rentledger import ~/Downloads/rentledger-backup-20260301-120000.zip
  rentledger import old-export.json --replace`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "remove existing data before importing")
	importCmd.Flags().StringVar(&importContentType, "content-type", "", "content type hint for format detection")
}

func runImport(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	svc := env.service()
	src := backup.Source{Path: args[0], ContentType: importContentType}
	if !svc.Import(src, importReplace) {
		return fmt.Errorf("import failed: %s", svc.ImportStatus().Message)
	}

	if flagJSON {
		counts, err := env.store.Counts()
		if err != nil {
			return err
		}
		return printJSON(counts)
	}
	fmt.Println("Import complete")
	return nil
}
