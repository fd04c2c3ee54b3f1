// Tenant commands manage tenants.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentledger/rentledger/pkg/types"
)

var (
	tenantName       string
	tenantEmail      string
	tenantMobile     string
	tenantMobile2    string
	tenantFamily     int64
	tenantBuildingID int64
	tenantStartDate  string
	tenantRent       float64
	tenantDeposit    float64
	tenantNotes      string
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage tenants",
}

var tenantAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a tenant",
	Long: `Add creates a new tenant, optionally attached to a building.

Example:
  rentledger tenant add --name "Ben Okafor" --mobile 555-0101 --building 1 --rent 1200`,
	Args: cobra.NoArgs,
	RunE: runTenantAdd,
}

var tenantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tenants",
	Args:  cobra.NoArgs,
	RunE:  runTenantList,
}

var tenantDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tenant and its payments",
	Args:  cobra.ExactArgs(1),
	RunE:  runTenantDelete,
}

var tenantCheckoutCmd = &cobra.Command{
	Use:   "checkout <id>",
	Short: "Mark a tenant as checked out",
	Args:  cobra.ExactArgs(1),
	RunE:  runTenantCheckout,
}

func init() {
	tenantAddCmd.Flags().StringVar(&tenantName, "name", "", "tenant name (required)")
	tenantAddCmd.Flags().StringVar(&tenantMobile, "mobile", "", "primary mobile number (required)")
	tenantAddCmd.Flags().StringVar(&tenantEmail, "email", "", "email address")
	tenantAddCmd.Flags().StringVar(&tenantMobile2, "mobile2", "", "secondary mobile number")
	tenantAddCmd.Flags().Int64Var(&tenantFamily, "family-members", 0, "number of family members")
	tenantAddCmd.Flags().Int64Var(&tenantBuildingID, "building", 0, "building id (0 = none)")
	tenantAddCmd.Flags().StringVar(&tenantStartDate, "start-date", "", "tenancy start date (YYYY-MM-DD)")
	tenantAddCmd.Flags().Float64Var(&tenantRent, "rent", 0, "monthly rent")
	tenantAddCmd.Flags().Float64Var(&tenantDeposit, "deposit", 0, "security deposit")
	tenantAddCmd.Flags().StringVar(&tenantNotes, "notes", "", "free-form notes")
	_ = tenantAddCmd.MarkFlagRequired("name")
	_ = tenantAddCmd.MarkFlagRequired("mobile")

	tenantCmd.AddCommand(tenantAddCmd)
	tenantCmd.AddCommand(tenantListCmd)
	tenantCmd.AddCommand(tenantDeleteCmd)
	tenantCmd.AddCommand(tenantCheckoutCmd)
}

func runTenantAdd(cmd *cobra.Command, args []string) error {
	startDate, err := parseDate(tenantStartDate)
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	tenant := &types.Tenant{
		Name:            tenantName,
		Email:           tenantEmail,
		Mobile:          tenantMobile,
		Mobile2:         tenantMobile2,
		FamilyMembers:   tenantFamily,
		BuildingID:      tenantBuildingID,
		StartDate:       startDate,
		Rent:            tenantRent,
		SecurityDeposit: tenantDeposit,
		Notes:           tenantNotes,
	}
	id, err := env.store.InsertTenant(tenant)
	if err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}

	if flagJSON {
		saved, err := env.store.GetTenant(id)
		if err != nil {
			return printJSON(map[string]int64{"id": id})
		}
		return printJSON(saved)
	}
	fmt.Printf("Created tenant %d\n", id)
	return nil
}

func runTenantList(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	tenants, err := env.store.ListTenants()
	if err != nil {
		return fmt.Errorf("list tenants: %w", err)
	}

	if flagJSON {
		return printJSON(tenants)
	}
	if len(tenants) == 0 {
		fmt.Println("No tenants found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMOBILE\tBUILDING\tRENT\tCHECKED OUT")
	for _, t := range tenants {
		building := "-"
		if t.BuildingID > 0 {
			building = fmt.Sprintf("%d", t.BuildingID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%t\n",
			t.ID, truncate(t.Name, 40), t.Mobile, building, t.Rent, t.IsCheckedOut)
	}
	w.Flush()
	printLines(sb.String())
	fmt.Printf("Total: %d tenant(s)\n", len(tenants))
	return nil
}

func runTenantDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.store.DeleteTenant(id); err != nil {
		return fmt.Errorf("delete tenant %d: %w", id, err)
	}
	fmt.Printf("Deleted tenant %d\n", id)
	return nil
}

func runTenantCheckout(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	tenant, err := env.store.GetTenant(id)
	if err != nil {
		return fmt.Errorf("get tenant %d: %w", id, err)
	}
	tenant.IsCheckedOut = true
	if tenant.CheckoutDate.IsZero() {
		tenant.CheckoutDate = nowUTC()
	}
	if err := env.store.UpdateTenant(tenant); err != nil {
		return fmt.Errorf("update tenant %d: %w", id, err)
	}
	fmt.Printf("Checked out tenant %d\n", id)
	return nil
}
