// Vendor commands manage service vendors.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentledger/rentledger/pkg/types"
)

var (
	vendorName     string
	vendorCategory string
	vendorPhone    string
	vendorEmail    string
	vendorAddress  string
	vendorNotes    string
)

var vendorCmd = &cobra.Command{
	Use:   "vendor",
	Short: "Manage service vendors",
}

var vendorAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a vendor",
	Long: `Add creates a new service vendor.

Categories: PLUMBING, ELECTRICAL, CLEANING, MAINTENANCE, SECURITY, OTHER

Example:
  rentledger vendor add --name Pipeworks --category PLUMBING`,
	Args: cobra.NoArgs,
	RunE: runVendorAdd,
}

var vendorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all vendors",
	Args:  cobra.NoArgs,
	RunE:  runVendorList,
}

var vendorDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a vendor, detaching its expenses",
	Args:  cobra.ExactArgs(1),
	RunE:  runVendorDelete,
}

func init() {
	vendorAddCmd.Flags().StringVar(&vendorName, "name", "", "vendor name (required)")
	vendorAddCmd.Flags().StringVar(&vendorCategory, "category", "", "service category")
	vendorAddCmd.Flags().StringVar(&vendorPhone, "phone", "", "phone number")
	vendorAddCmd.Flags().StringVar(&vendorEmail, "email", "", "email address")
	vendorAddCmd.Flags().StringVar(&vendorAddress, "address", "", "postal address")
	vendorAddCmd.Flags().StringVar(&vendorNotes, "notes", "", "free-form notes")
	_ = vendorAddCmd.MarkFlagRequired("name")

	vendorCmd.AddCommand(vendorAddCmd)
	vendorCmd.AddCommand(vendorListCmd)
	vendorCmd.AddCommand(vendorDeleteCmd)
}

func runVendorAdd(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	vendor := &types.Vendor{
		Name:     vendorName,
		Category: strings.ToUpper(vendorCategory),
		Phone:    vendorPhone,
		Email:    vendorEmail,
		Address:  vendorAddress,
		Notes:    vendorNotes,
	}
	id, err := env.store.InsertVendor(vendor)
	if err != nil {
		return fmt.Errorf("create vendor: %w", err)
	}

	if flagJSON {
		saved, err := env.store.GetVendor(id)
		if err != nil {
			return printJSON(map[string]int64{"id": id})
		}
		return printJSON(saved)
	}
	fmt.Printf("Created vendor %d\n", id)
	return nil
}

func runVendorList(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	vendors, err := env.store.ListVendors()
	if err != nil {
		return fmt.Errorf("list vendors: %w", err)
	}

	if flagJSON {
		return printJSON(vendors)
	}
	if len(vendors) == 0 {
		fmt.Println("No vendors found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPHONE")
	for _, v := range vendors {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", v.ID, truncate(v.Name, 40), v.Category, v.Phone)
	}
	w.Flush()
	printLines(sb.String())
	fmt.Printf("Total: %d vendor(s)\n", len(vendors))
	return nil
}

func runVendorDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.store.DeleteVendor(id); err != nil {
		return fmt.Errorf("delete vendor %d: %w", id, err)
	}
	fmt.Printf("Deleted vendor %d\n", id)
	return nil
}
