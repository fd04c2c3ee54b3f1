// Export command writes a full backup archive.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup archive of all data",
	Long: `Export writes a ZIP archive containing the database, all stored
documents, and the app settings. The archive is placed in the Downloads
folder when possible, otherwise under the data directory.

Example:
  rentledger export
  rentledger export --json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	svc := env.service()
	path, ok := svc.Export()
	if !ok {
		return fmt.Errorf("export failed: %s", svc.ExportStatus().Message)
	}

	if flagJSON {
		return printJSON(map[string]string{"path": path})
	}
	fmt.Println("Backup written to", path)
	return nil
}
