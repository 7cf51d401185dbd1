// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qirgen/internal/bitcode"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [flags] file.qbc",
	Short: "Convert the binary form back to textual IR",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringP("output", "o", "", "output path (default: stdout)")
	decodeCmd.Flags().String("name", "", "override the module name")
	decodeCmd.Flags().String("source", "", "override the recorded source path")
}

func runDecode(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	text, err := bitcode.BitcodeToIR(data, overrideFlag(cmd, "name"), overrideFlag(cmd, "source"))
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.Infof("decoded %s into %s", path, output)
	return nil
}
