// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ManuGH/epgtrans/internal/config"
	"gopkg.in/yaml.v3"
)

func runConfigCLI(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage(stderr)
		return 0
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:], stdout, stderr)
	case "dump":
		return runConfigDump(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printConfigUsage(stderr)
		return 2
	}
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  epgtrans config validate [--file|-f config.yaml]")
	fmt.Fprintln(w, "  epgtrans config dump [--file|-f config.yaml]")
}

func configFlags(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var file string
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	return fs, &file
}

func runConfigValidate(args []string, stdout, stderr io.Writer) int {
	fs, file := configFlags("epgtrans config validate", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := resolveConfigPath(*file)
	if _, err := config.NewLoader(path, version).Load(); err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", describePath(path), err)
		return 1
	}

	fmt.Fprintf(stdout, "%s is valid\n", describePath(path))
	return 0
}

// runConfigDump prints the effective configuration (defaults, file and
// environment) as YAML that can be fed back through --config.
func runConfigDump(args []string, stdout, stderr io.Writer) int {
	fs, file := configFlags("epgtrans config dump", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := resolveConfigPath(*file)
	cfg, err := config.NewLoader(path, version).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", describePath(path), err)
		return 1
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(config.ToFileConfig(cfg)); err != nil {
		fmt.Fprintf(stderr, "Failed to encode YAML: %v\n", err)
		return 1
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintf(stderr, "Failed to encode YAML: %v\n", err)
		return 1
	}
	return 0
}

func describePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "built-in defaults"
	}
	return path
}
