// Owner commands manage property owners.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentledger/rentledger/pkg/types"
)

var (
	ownerName    string
	ownerEmail   string
	ownerMobile  string
	ownerMobile2 string
	ownerAddress string
)

var ownerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Manage property owners",
}

var ownerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an owner",
	Long: `Add creates a new property owner.

Example:
  rentledger owner add --name "Asha Rao" --mobile 555-0100`,
	Args: cobra.NoArgs,
	RunE: runOwnerAdd,
}

var ownerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all owners",
	Args:  cobra.NoArgs,
	RunE:  runOwnerList,
}

var ownerDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an owner and its buildings",
	Args:  cobra.ExactArgs(1),
	RunE:  runOwnerDelete,
}

func init() {
	ownerAddCmd.Flags().StringVar(&ownerName, "name", "", "owner name (required)")
	ownerAddCmd.Flags().StringVar(&ownerMobile, "mobile", "", "primary mobile number (required)")
	ownerAddCmd.Flags().StringVar(&ownerEmail, "email", "", "email address")
	ownerAddCmd.Flags().StringVar(&ownerMobile2, "mobile2", "", "secondary mobile number")
	ownerAddCmd.Flags().StringVar(&ownerAddress, "address", "", "postal address")
	_ = ownerAddCmd.MarkFlagRequired("name")
	_ = ownerAddCmd.MarkFlagRequired("mobile")

	ownerCmd.AddCommand(ownerAddCmd)
	ownerCmd.AddCommand(ownerListCmd)
	ownerCmd.AddCommand(ownerDeleteCmd)
}

func runOwnerAdd(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	owner := &types.Owner{
		Name:    ownerName,
		Email:   ownerEmail,
		Mobile:  ownerMobile,
		Mobile2: ownerMobile2,
		Address: ownerAddress,
	}
	id, err := env.store.InsertOwner(owner)
	if err != nil {
		return fmt.Errorf("create owner: %w", err)
	}

	if flagJSON {
		saved, err := env.store.GetOwner(id)
		if err != nil {
			return printJSON(map[string]int64{"id": id})
		}
		return printJSON(saved)
	}
	fmt.Printf("Created owner %d\n", id)
	return nil
}

func runOwnerList(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	owners, err := env.store.ListOwners()
	if err != nil {
		return fmt.Errorf("list owners: %w", err)
	}

	if flagJSON {
		return printJSON(owners)
	}
	if len(owners) == 0 {
		fmt.Println("No owners found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMOBILE\tEMAIL")
	for _, o := range owners {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.ID, truncate(o.Name, 40), o.Mobile, o.Email)
	}
	w.Flush()
	printLines(sb.String())
	fmt.Printf("Total: %d owner(s)\n", len(owners))
	return nil
}

func runOwnerDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.store.DeleteOwner(id); err != nil {
		return fmt.Errorf("delete owner %d: %w", id, err)
	}
	fmt.Printf("Deleted owner %d\n", id)
	return nil
}
