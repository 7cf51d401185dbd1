// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"qirgen/internal/bitcode"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [flags] file.qir",
	Short: "Convert textual IR to the binary form",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringP("output", "o", "", "output path (default: input with .qbc extension)")
	encodeCmd.Flags().String("name", "", "override the module name")
	encodeCmd.Flags().String("source", "", "override the recorded source path")
}

func runEncode(cmd *cobra.Command, args []string) error {
	path := args[0]

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	data, err := bitcode.IRToBitcode(string(text), overrideFlag(cmd, "name"), overrideFlag(cmd, "source"))
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = replaceExt(path, ".qbc")
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.Infof("encoded %s into %s (%d bytes)", path, output, len(data))
	return nil
}

// overrideFlag maps an unset flag to nil so the stored value survives.
func overrideFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

func replaceExt(path, ext string) string {
	if i := strings.LastIndex(path, "."); i > 0 {
		return path[:i] + ext
	}
	return path + ext
}
