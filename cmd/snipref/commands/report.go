package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"snipref/internal/report"
)

// NewReportCommand creates the report subcommand group for working
// with stored reports.
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Validate and convert stored check reports",
	}

	cmd.AddCommand(newReportValidateCommand())
	cmd.AddCommand(newReportDecodeCommand())

	return cmd
}

// newReportValidateCommand validates a JSON report against the report
// schema.
func newReportValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <report.json>",
		Short: "Validate a JSON report against the report schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read report: %w", err)
			}

			err = report.ValidateJSON(data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cobraCmd.OutOrStdout(), "%s: valid\n", args[0])

			return nil
		},
	}
}

// newReportDecodeCommand converts a binary envelope report to JSON on
// stdout.
func newReportDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <report.bin>",
		Short: "Decode a binary report envelope to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open report: %w", err)
			}

			defer f.Close()

			rep, err := report.DecodeEnvelope(f)
			if err != nil {
				return err
			}

			return report.WriteJSON(rep, cobraCmd.OutOrStdout())
		},
	}
}
