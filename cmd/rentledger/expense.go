// Expense commands record property expenses.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentledger/rentledger/pkg/types"
)

var (
	expenseDescription string
	expenseAmount      float64
	expenseDate        string
	expenseCategory    string
	expenseVendorID    int64
	expenseBuildingID  int64
	expenseMethod      string
	expenseNotes       string
	expenseReceipt     string
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Record property expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Long: `Add records a property expense, optionally linked to a vendor
and a building.

Categories: MAINTENANCE, UTILITIES, TAXES, INSURANCE, REPAIRS, OTHER

Example:
  rentledger expense add --description "burst pipe" --amount 300 --category REPAIRS --vendor 1`,
	Args: cobra.NoArgs,
	RunE: runExpenseAdd,
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all expenses",
	Args:  cobra.NoArgs,
	RunE:  runExpenseList,
}

var expenseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseDelete,
}

func init() {
	expenseAddCmd.Flags().StringVar(&expenseDescription, "description", "", "what the expense was for (required)")
	expenseAddCmd.Flags().Float64Var(&expenseAmount, "amount", 0, "amount spent (required)")
	expenseAddCmd.Flags().StringVar(&expenseDate, "date", "", "expense date (YYYY-MM-DD, default today)")
	expenseAddCmd.Flags().StringVar(&expenseCategory, "category", "", "expense category")
	expenseAddCmd.Flags().Int64Var(&expenseVendorID, "vendor", 0, "vendor id (0 = none)")
	expenseAddCmd.Flags().Int64Var(&expenseBuildingID, "building", 0, "building id (0 = none)")
	expenseAddCmd.Flags().StringVar(&expenseMethod, "method", "", "payment method label")
	expenseAddCmd.Flags().StringVar(&expenseNotes, "notes", "", "free-form notes")
	expenseAddCmd.Flags().StringVar(&expenseReceipt, "receipt", "", "receipt path in the document store")
	_ = expenseAddCmd.MarkFlagRequired("description")
	_ = expenseAddCmd.MarkFlagRequired("amount")

	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseListCmd)
	expenseCmd.AddCommand(expenseDeleteCmd)
}

func runExpenseAdd(cmd *cobra.Command, args []string) error {
	date, err := parseDate(expenseDate)
	if err != nil {
		return err
	}
	if date.IsZero() {
		date = nowUTC()
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	expense := &types.Expense{
		Description:   expenseDescription,
		Amount:        expenseAmount,
		Date:          date,
		Category:      strings.ToUpper(expenseCategory),
		VendorID:      expenseVendorID,
		BuildingID:    expenseBuildingID,
		PaymentMethod: expenseMethod,
		Notes:         expenseNotes,
		ReceiptPath:   expenseReceipt,
	}
	id, err := env.store.InsertExpense(expense)
	if err != nil {
		return fmt.Errorf("record expense: %w", err)
	}

	if flagJSON {
		saved, err := env.store.GetExpense(id)
		if err != nil {
			return printJSON(map[string]int64{"id": id})
		}
		return printJSON(saved)
	}
	fmt.Printf("Recorded expense %d\n", id)
	return nil
}

func runExpenseList(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	expenses, err := env.store.ListExpenses()
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}

	if flagJSON {
		return printJSON(expenses)
	}
	if len(expenses) == 0 {
		fmt.Println("No expenses found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDESCRIPTION\tAMOUNT\tCATEGORY\tDATE")
	for _, e := range expenses {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\n",
			e.ID, truncate(e.Description, 40), e.Amount, e.Category, formatDate(e.Date))
	}
	w.Flush()
	printLines(sb.String())
	fmt.Printf("Total: %d expense(s)\n", len(expenses))
	return nil
}

func runExpenseDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.store.DeleteExpense(id); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	fmt.Printf("Deleted expense %d\n", id)
	return nil
}
