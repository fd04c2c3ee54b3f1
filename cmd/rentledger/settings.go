// Settings commands read and write app settings.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Settings keys accepted on the command line.
const (
	keyCurrency       = "currency"
	keyAppLock        = "app-lock"
	keyPaymentMethods = "payment-methods"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage app settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print settings",
	Long: `Get prints all settings, or one when a key is given.

Keys: currency, app-lock, payment-methods

Example:
  rentledger settings get
  rentledger settings get currency`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Set changes one setting. Payment methods are given as a
comma-separated list.

Example:
  rentledger settings set currency EUR
  rentledger settings set app-lock true
  rentledger settings set payment-methods "Cash,Cheque,Bank Transfer"`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	currency, err := env.settings.Currency()
	if err != nil {
		logger.Warn().Err(err).Msg("reading currency, showing default")
	}
	appLock, err := env.settings.AppLock()
	if err != nil {
		logger.Warn().Err(err).Msg("reading app lock, showing default")
	}
	methods, err := env.settings.PaymentMethods()
	if err != nil {
		logger.Warn().Err(err).Msg("reading payment methods, showing defaults")
	}

	all := map[string]any{
		keyCurrency:       currency,
		keyAppLock:        appLock,
		keyPaymentMethods: methods,
	}

	if len(args) == 1 {
		value, ok := all[args[0]]
		if !ok {
			return fmt.Errorf("unknown setting %q (valid: %s, %s, %s)", args[0], keyCurrency, keyAppLock, keyPaymentMethods)
		}
		if flagJSON {
			return printJSON(map[string]any{args[0]: value})
		}
		fmt.Println(value)
		return nil
	}

	if flagJSON {
		return printJSON(all)
	}
	fmt.Printf("%s: %s\n", keyCurrency, currency)
	fmt.Printf("%s: %t\n", keyAppLock, appLock)
	fmt.Printf("%s: %s\n", keyPaymentMethods, strings.Join(methods, ", "))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	key, value := args[0], args[1]
	switch key {
	case keyCurrency:
		if value == "" {
			return fmt.Errorf("currency cannot be empty")
		}
		return env.settings.SetCurrency(value)
	case keyAppLock:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid app-lock value %q, want true or false", value)
		}
		return env.settings.SetAppLock(enabled)
	case keyPaymentMethods:
		methods := make([]string, 0)
		for _, m := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(m); trimmed != "" {
				methods = append(methods, trimmed)
			}
		}
		if len(methods) == 0 {
			return fmt.Errorf("payment methods cannot be empty")
		}
		return env.settings.SetPaymentMethods(methods)
	default:
		return fmt.Errorf("unknown setting %q (valid: %s, %s, %s)", key, keyCurrency, keyAppLock, keyPaymentMethods)
	}
}
