// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var version = "0.1.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "qirgen",
	Short: "Quantum IR toolchain",
	Long:  `qirgen converts quantum programs between their textual and binary forms and validates them`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbosity := 0
		if verbose {
			verbosity = 1
		}
		commonlog.Configure(verbosity, nil)
	},
	SilenceUsage: true,
}

var log = commonlog.GetLogger("qirgen.cli")

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(checkCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
