// Building commands manage buildings.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentledger/rentledger/pkg/types"
)

var (
	buildingName    string
	buildingAddress string
	buildingType    string
	buildingNotes   string
	buildingOwnerID int64
)

var buildingCmd = &cobra.Command{
	Use:   "building",
	Short: "Manage buildings",
}

var buildingAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a building",
	Long: `Add creates a new building owned by an existing owner.

Property types: RESIDENTIAL, COMMERCIAL, MIXED, INDUSTRIAL

Example:
  rentledger building add --name "Maple Court" --owner 1 --type RESIDENTIAL`,
	Args: cobra.NoArgs,
	RunE: runBuildingAdd,
}

var buildingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all buildings",
	Args:  cobra.NoArgs,
	RunE:  runBuildingList,
}

var buildingDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a building, detaching its tenants",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuildingDelete,
}

func init() {
	buildingAddCmd.Flags().StringVar(&buildingName, "name", "", "building name (required)")
	buildingAddCmd.Flags().Int64Var(&buildingOwnerID, "owner", 0, "owner id (required)")
	buildingAddCmd.Flags().StringVar(&buildingType, "type", "", "property type")
	buildingAddCmd.Flags().StringVar(&buildingAddress, "address", "", "postal address")
	buildingAddCmd.Flags().StringVar(&buildingNotes, "notes", "", "free-form notes")
	_ = buildingAddCmd.MarkFlagRequired("name")
	_ = buildingAddCmd.MarkFlagRequired("owner")

	buildingCmd.AddCommand(buildingAddCmd)
	buildingCmd.AddCommand(buildingListCmd)
	buildingCmd.AddCommand(buildingDeleteCmd)
}

func runBuildingAdd(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	building := &types.Building{
		Name:         buildingName,
		Address:      buildingAddress,
		PropertyType: strings.ToUpper(buildingType),
		Notes:        buildingNotes,
		OwnerID:      buildingOwnerID,
	}
	id, err := env.store.InsertBuilding(building)
	if err != nil {
		return fmt.Errorf("create building: %w", err)
	}

	if flagJSON {
		saved, err := env.store.GetBuilding(id)
		if err != nil {
			return printJSON(map[string]int64{"id": id})
		}
		return printJSON(saved)
	}
	fmt.Printf("Created building %d\n", id)
	return nil
}

func runBuildingList(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	buildings, err := env.store.ListBuildings()
	if err != nil {
		return fmt.Errorf("list buildings: %w", err)
	}

	if flagJSON {
		return printJSON(buildings)
	}
	if len(buildings) == 0 {
		fmt.Println("No buildings found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tOWNER")
	for _, b := range buildings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", b.ID, truncate(b.Name, 40), b.PropertyType, b.OwnerID)
	}
	w.Flush()
	printLines(sb.String())
	fmt.Printf("Total: %d building(s)\n", len(buildings))
	return nil
}

func runBuildingDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.store.DeleteBuilding(id); err != nil {
		return fmt.Errorf("delete building %d: %w", id, err)
	}
	fmt.Printf("Deleted building %d\n", id)
	return nil
}
