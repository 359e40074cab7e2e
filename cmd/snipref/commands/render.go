package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"snipref/internal/plot"
	"snipref/internal/report"
)

const (
	renderCmdUse      = "render <report-file> [report-file...]"
	renderCmdShort    = "Render check reports as an HTML findings chart"
	renderOutputFlag  = "output"
	renderOutputShort = "o"
	renderOutputUsage = "output HTML file"
)

// ErrNoRenderOutput is returned when the --output flag is not set.
var ErrNoRenderOutput = errors.New("output file is required (use --output)")

// NewRenderCommand creates the render subcommand. It accepts report
// files in JSON or binary envelope form.
func NewRenderCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   renderCmdUse,
		Short: renderCmdShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if outputPath == "" {
				return ErrNoRenderOutput
			}

			return runRender(args, outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, renderOutputFlag, renderOutputShort, "", renderOutputUsage)

	return cmd
}

func runRender(reportPaths []string, outputPath string) error {
	reports := make([]*report.Report, 0, len(reportPaths))

	for _, path := range reportPaths {
		rep, err := loadReport(path)
		if err != nil {
			return err
		}

		reports = append(reports, rep)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	defer f.Close()

	renderErr := plot.Render(f, reports)
	if renderErr != nil {
		return fmt.Errorf("render %s: %w", outputPath, renderErr)
	}

	return nil
}

// loadReport reads a stored report, accepting both the JSON and the
// binary envelope serialization.
func loadReport(path string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	if bytes.HasPrefix(data, []byte(report.EnvelopeMagic)) {
		return report.DecodeEnvelope(bytes.NewReader(data))
	}

	var rep report.Report

	err = json.Unmarshal(data, &rep)
	if err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}

	return &rep, nil
}
