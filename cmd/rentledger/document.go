// Document commands attach files to entities. The file bytes live in the
// document store under the data directory; the database row carries the
// relative path and metadata.
package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentledger/rentledger/pkg/types"
)

var (
	documentName   string
	documentFile   string
	documentEntity string
	documentRefID  int64
	documentType   string
	documentNotes  string
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage attached documents",
}

var documentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Attach a file to an entity",
	Long: `Add copies a file into the document store and records it against
an entity.

Entity types: OWNER, BUILDING, TENANT, PAYMENT, EXPENSE

Example:
  rentledger document add --file lease.pdf --entity-type TENANT --entity-id 1`,
	Args: cobra.NoArgs,
	RunE: runDocumentAdd,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a document and its stored file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentAddCmd.Flags().StringVar(&documentFile, "file", "", "file to attach (required)")
	documentAddCmd.Flags().StringVar(&documentEntity, "entity-type", "", "entity type the document belongs to (required)")
	documentAddCmd.Flags().Int64Var(&documentRefID, "entity-id", 0, "entity id the document belongs to (required)")
	documentAddCmd.Flags().StringVar(&documentName, "name", "", "display name (default: file name)")
	documentAddCmd.Flags().StringVar(&documentType, "type", "", "document type label")
	documentAddCmd.Flags().StringVar(&documentNotes, "notes", "", "free-form notes")
	_ = documentAddCmd.MarkFlagRequired("file")
	_ = documentAddCmd.MarkFlagRequired("entity-type")
	_ = documentAddCmd.MarkFlagRequired("entity-id")

	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentDeleteCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	kind, err := types.ParseEntityKind(strings.ToUpper(documentEntity))
	if err != nil {
		return err
	}

	f, err := os.Open(documentFile)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	base := filepath.Base(documentFile)
	relPath := filepath.ToSlash(filepath.Join(strings.ToLower(string(kind)), base))
	if err := env.blobs.Save(relPath, f); err != nil {
		return fmt.Errorf("store file: %w", err)
	}

	name := documentName
	if name == "" {
		name = base
	}
	doc := &types.Document{
		DocumentName: name,
		DocumentType: documentType,
		FilePath:     relPath,
		EntityType:   kind,
		EntityID:     documentRefID,
		UploadDate:   nowUTC(),
		FileSize:     info.Size(),
		MimeType:     mime.TypeByExtension(filepath.Ext(base)),
		Notes:        documentNotes,
	}
	id, err := env.store.InsertDocument(doc)
	if err != nil {
		// Roll back the stored file so the blob store does not accumulate
		// rows the database never saw.
		if rmErr := env.blobs.Delete(relPath); rmErr != nil {
			logger.Warn().Err(rmErr).Str("path", relPath).Msg("removing orphaned document file")
		}
		return fmt.Errorf("create document: %w", err)
	}

	if flagJSON {
		saved, err := env.store.GetDocument(id)
		if err != nil {
			return printJSON(map[string]int64{"id": id})
		}
		return printJSON(saved)
	}
	fmt.Printf("Attached document %d (%s)\n", id, relPath)
	return nil
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	documents, err := env.store.ListDocuments()
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	if flagJSON {
		return printJSON(documents)
	}
	if len(documents) == 0 {
		fmt.Println("No documents found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tENTITY\tENTITY ID\tSIZE\tUPLOADED")
	for _, d := range documents {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
			d.ID, truncate(d.DocumentName, 40), d.EntityType, d.EntityID, d.FileSize, formatDate(d.UploadDate))
	}
	w.Flush()
	printLines(sb.String())
	fmt.Printf("Total: %d document(s)\n", len(documents))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	doc, err := env.store.GetDocument(id)
	if err != nil {
		return fmt.Errorf("get document %d: %w", id, err)
	}
	if err := env.store.DeleteDocument(id); err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	if err := env.blobs.Delete(doc.FilePath); err != nil {
		logger.Warn().Err(err).Str("path", doc.FilePath).Msg("removing document file")
	}
	fmt.Printf("Deleted document %d\n", id)
	return nil
}
