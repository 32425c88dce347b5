// Command agenttools serves agent tool integrations over MCP stdio and
// provides local helpers for inspecting parquet files.
package main

import (
	"errors"
	"flag"
	"fmt"
	iofs "io/fs"
	"os"

	"github.com/vegasq/agenttools/engine"
	"github.com/vegasq/agenttools/output"
	"github.com/vegasq/agenttools/query"
	"github.com/vegasq/agenttools/reader"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve                 start the MCP stdio tool server\n")
	fmt.Fprintf(os.Stderr, "  cat <file.parquet>    print rows from a parquet file\n")
	fmt.Fprintf(os.Stderr, "  info <file.parquet>   print schema and row count\n\n")
	fmt.Fprintf(os.Stderr, "Examples:\n")
	fmt.Fprintf(os.Stderr, "  %s serve\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s cat -f csv -limit 10 data.parquet\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s info data.parquet\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		runServe(os.Args[2:])
	case "cat":
		runCat(os.Args[2:])
	case "info":
		runInfo(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func runCat(args []string) {
	fs := flag.NewFlagSet("cat", flag.ExitOnError)
	formatFlag := fs.String("f", "jsonl", "Output format: json, jsonl, csv")
	limitFlag := fs.Int("limit", 0, "Limit number of rows (0 = unlimited)")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing parquet file argument\n")
		os.Exit(1)
	}
	filename := fs.Arg(0)

	eng, err := engine.Open(filename, "src")
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error: file '%s' not found\n", filename)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
	defer eng.Close()

	spec := query.Spec{TableExpr: "src"}
	if *limitFlag > 0 {
		spec.Limit = query.Int(*limitFlag)
	}
	built, err := query.Build(spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := eng.Query(built)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading parquet file: %v\n", err)
		os.Exit(1)
	}

	formatter, err := output.New(*formatFlag, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Supported formats: json, jsonl, csv\n")
		os.Exit(1)
	}
	if err := formatter.Format(result.Columns, result.Rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}

func runInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing parquet file argument\n")
		os.Exit(1)
	}
	filename := fs.Arg(0)

	columns, err := reader.DescribeFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	r, err := reader.NewReader(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	numRows := r.NumRows()
	_ = r.Close()

	rows := make([]map[string]interface{}, 0, len(columns))
	for _, col := range columns {
		rows = append(rows, map[string]interface{}{
			"column":   col.Name,
			"type":     col.Type,
			"optional": col.Optional,
		})
	}

	formatter := output.NewTableFormatter(os.Stdout)
	if err := formatter.Format([]string{"column", "type", "optional"}, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d rows\n", numRows)
}
