// Package main exports the snipref report JSON schema to a file so
// external consumers can validate stored reports without the CLI.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"snipref/internal/report"
)

const (
	schemaFileName = "report.json"
	schemaDirPerm  = 0o755
	schemaFilePerm = 0o644
)

var outputDir string

func main() {
	flag.StringVar(&outputDir, "o", "docs/schemas", "Output directory for schemas")
	flag.Parse()

	if err := os.MkdirAll(outputDir, schemaDirPerm); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	path := filepath.Join(outputDir, schemaFileName)

	if err := os.WriteFile(path, []byte(report.Schema), schemaFilePerm); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", path)
}
