// Package main provides the rentledger CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rentledger/rentledger/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, types.ErrInvalidID) || errors.Is(err, types.ErrInvalidData) || errors.Is(err, types.ErrNotFound) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}
}
