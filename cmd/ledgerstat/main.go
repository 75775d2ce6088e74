package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledgerstat/ledgerstat/dataset"
	"github.com/ledgerstat/ledgerstat/output"
	"github.com/ledgerstat/ledgerstat/reader"
	"github.com/ledgerstat/ledgerstat/report"
)

var (
	reportFlag   = flag.String("report", "rows", "Report to run: rows, total, by-group, net, net-outliers, net-group-outliers")
	formatFlag   = flag.String("f", "table", "Output format: table, csv, jsonl")
	groupFlag    = flag.String("group", "country", "Grouping column")
	amountFlag   = flag.String("amount", "amount", "Gross amount column")
	discountFlag = flag.String("discount", "discount", "Discount column")
	multFlag     = flag.Float64("mult", report.DefaultOutlierMultiplier, "Outlier threshold as a multiple of the median amount")
	limitFlag    = flag.Int("limit", 0, "Limit number of result rows (0 = unlimited)")
	typesFlag    = flag.Bool("types", false, "Print inferred column types and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file.csv|file.parquet|glob>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A tool to summarize purchase ledgers.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s purchases.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -report net purchases.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -report net-group-outliers -f csv 'ledgers/*.parquet'\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing ledger file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the ledger, executes the selected report, and writes it out.
func run(path string, w io.Writer) error {
	rows, err := reader.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file %q not found", path)
		}
		return err
	}

	if *typesFlag {
		infos := reader.InspectColumns(rows)
		typeRows := make([]dataset.Row, len(infos))
		for i, info := range infos {
			typeRows[i] = dataset.Row{"column": info.Name, "type": info.Type, "nullable": info.Nullable}
		}
		return formatRows(typeRows, w)
	}

	ds := dataset.New(rows)
	spec := report.Spec{
		GroupColumn:       *groupFlag,
		AmountColumn:      *amountFlag,
		DiscountColumn:    *discountFlag,
		OutlierMultiplier: *multFlag,
	}

	var result dataset.Dataset
	if *reportFlag == "rows" {
		result = ds
	} else {
		result, err = report.Run(report.Kind(*reportFlag), ds, spec)
		if err != nil {
			// List available columns to help the user when one is missing
			if strings.Contains(err.Error(), "not found") && ds.Len() > 0 {
				return fmt.Errorf("%w\navailable columns: %s", err, strings.Join(ds.Columns(), ", "))
			}
			return err
		}
	}

	if *limitFlag > 0 {
		result = result.Head(*limitFlag)
	}

	return formatRows(result.Rows(), w)
}

// formatRows writes rows using the formatter selected by the -f flag.
func formatRows(rows []dataset.Row, w io.Writer) error {
	var formatter output.Formatter
	switch *formatFlag {
	case "table":
		formatter = output.NewTableFormatter(w)
	case "csv":
		formatter = output.NewCSVFormatter(w)
	case "json", "jsonl":
		formatter = output.NewJSONFormatter(w)
	default:
		return fmt.Errorf("unsupported format %q (supported: table, csv, jsonl)", *formatFlag)
	}

	return formatter.Format(rows)
}
