// Payment commands record and inspect rent payments.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentledger/rentledger/pkg/types"
)

var (
	paymentTenantID int64
	paymentAmount   float64
	paymentDate     string
	paymentMonth    string
	paymentMethod   string
	paymentType     string
	paymentPending  float64
	paymentDetails  string
	paymentNotes    string
)

var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Record and inspect rent payments",
}

var paymentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a rent payment",
	Long: `Add records a rent payment for a tenant. The rent month is
normalized to the first day of the month.

Payment types: FULL, PARTIAL (with --pending)

Example:
  rentledger payment add --tenant 1 --amount 1200 --month 2026-03
  rentledger payment add --tenant 1 --amount 600 --month 2026-03 --type PARTIAL --pending 600`,
	Args: cobra.NoArgs,
	RunE: runPaymentAdd,
}

var paymentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all payments",
	Args:  cobra.NoArgs,
	RunE:  runPaymentList,
}

var paymentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a payment",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaymentDelete,
}

func init() {
	paymentAddCmd.Flags().Int64Var(&paymentTenantID, "tenant", 0, "tenant id (required)")
	paymentAddCmd.Flags().Float64Var(&paymentAmount, "amount", 0, "amount paid (required)")
	paymentAddCmd.Flags().StringVar(&paymentMonth, "month", "", "rent month (YYYY-MM, required)")
	paymentAddCmd.Flags().StringVar(&paymentDate, "date", "", "payment date (YYYY-MM-DD, default today)")
	paymentAddCmd.Flags().StringVar(&paymentMethod, "method", "", "payment method label")
	paymentAddCmd.Flags().StringVar(&paymentType, "type", types.PaymentFull, "payment type (FULL or PARTIAL)")
	paymentAddCmd.Flags().Float64Var(&paymentPending, "pending", 0, "pending amount for partial payments")
	paymentAddCmd.Flags().StringVar(&paymentDetails, "details", "", "transaction details")
	paymentAddCmd.Flags().StringVar(&paymentNotes, "notes", "", "free-form notes")
	_ = paymentAddCmd.MarkFlagRequired("tenant")
	_ = paymentAddCmd.MarkFlagRequired("amount")
	_ = paymentAddCmd.MarkFlagRequired("month")

	paymentCmd.AddCommand(paymentAddCmd)
	paymentCmd.AddCommand(paymentListCmd)
	paymentCmd.AddCommand(paymentDeleteCmd)
}

func runPaymentAdd(cmd *cobra.Command, args []string) error {
	month, err := parseMonth(paymentMonth)
	if err != nil {
		return err
	}
	date, err := parseDate(paymentDate)
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

	payment := &types.Payment{
		Date:               date,
		Amount:             paymentAmount,
		PaymentMethod:      paymentMethod,
		TransactionDetails: paymentDetails,
		PaymentType:        strings.ToUpper(paymentType),
		PendingAmount:      paymentPending,
		Notes:              paymentNotes,
		TenantID:           paymentTenantID,
		RentMonth:          month,
	}
	id, err := env.store.InsertPayment(payment)
	if err != nil {
		return fmt.Errorf("record payment: %w", err)
	}

	if flagJSON {
		saved, err := env.store.GetPayment(id)
		if err != nil {
			return printJSON(map[string]int64{"id": id})
		}
		return printJSON(saved)
	}
	fmt.Printf("Recorded payment %d\n", id)
	return nil
}

func runPaymentList(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	payments, err := env.store.ListPayments()
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}

	if flagJSON {
		return printJSON(payments)
	}
	if len(payments) == 0 {
		fmt.Println("No payments found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTENANT\tMONTH\tAMOUNT\tTYPE\tPENDING\tDATE")
	for _, p := range payments {
		month := "-"
		if !p.RentMonth.IsZero() {
			month = p.RentMonth.Format("2006-01")
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%.2f\t%s\t%.2f\t%s\n",
			p.ID, p.TenantID, month, p.Amount, p.PaymentType, p.PendingAmount, formatDate(p.Date))
	}
	w.Flush()
	printLines(sb.String())
	fmt.Printf("Total: %d payment(s)\n", len(payments))
	return nil
}

func runPaymentDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.store.DeletePayment(id); err != nil {
		return fmt.Errorf("delete payment %d: %w", id, err)
	}
	fmt.Printf("Deleted payment %d\n", id)
	return nil
}
