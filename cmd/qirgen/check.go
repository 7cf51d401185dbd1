// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qirgen/grammar"
)

var checkCmd = &cobra.Command{
	Use:   "check file.qir",
	Short: "Parse and validate a textual IR file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	program, err := grammar.ParseString(path, string(source))
	if err != nil {
		grammar.ReportParseError(string(source), err)
		color.Red("Check failed after %s", formatDuration(time.Since(startTime)))
		return err
	}

	model, err := grammar.Lower(program)
	if err != nil {
		color.Red("%v", err)
		color.Red("Check failed after %s", formatDuration(time.Since(startTime)))
		return err
	}

	fmt.Printf("module %q: %d qubits, %d registers, %d functions, %d instructions\n",
		model.Name, len(model.Qubits), len(model.Registers),
		len(model.ExternalFunctions), len(model.Instructions))
	color.Green("Successfully checked %s in %s", path, formatDuration(time.Since(startTime)))
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
