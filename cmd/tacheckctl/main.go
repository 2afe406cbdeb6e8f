// Command tacheckctl is a small demo CLI around the query package: it loads
// the university fixture model (fixtures.Loader), then either runs every
// scenario spec §8 names or one query string the caller supplies, and
// prints each verdict. It is not a product surface — no repo in the
// retrieved pack wires a CLI framework, so this follows the same shape
// original_source/src/main.rs's CLI argument handling takes (load
// components, parse one query from argv, run it, print the verdict), using
// the standard library's flag package rather than a third-party one (see
// DESIGN.md).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tacheck/tacheck/fixtures"
	"github.com/tacheck/tacheck/loader"
	"github.com/tacheck/tacheck/query"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "tacheckctl:", err)
		os.Exit(1)
	}
}

func run(args []string, out *os.File) error {
	fs := flag.NewFlagSet("tacheckctl", flag.ContinueOnError)
	queryText := fs.String("query", "", `a query string, e.g. "consistency: Machine"`)
	listScenarios := fs.Bool("list-scenarios", false, "print spec §8's scenario names and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ld := fixtures.Loader()

	switch {
	case *listScenarios:
		for _, sc := range fixtures.Scenarios() {
			fmt.Fprintf(out, "%-55s %s\n", sc.Name, sc.QueryText)
		}

		return nil
	case *queryText != "":
		return runOne(*queryText, ld, out)
	default:
		for _, sc := range fixtures.Scenarios() {
			if err := runOne(sc.QueryText, ld, out); err != nil {
				return err
			}
		}

		return nil
	}
}

// runOne parses and runs one query against ld, printing its verdict. A
// query-time failure (the negative verdict itself, per spec §7) is printed
// rather than returned: only a malformed query string is a CLI-level error.
func runOne(text string, ld *loader.MapLoader, out *os.File) error {
	q, err := query.Parse(text)
	if err != nil {
		return fmt.Errorf("parse %q: %w", text, err)
	}

	res, err := query.Run(q, ld)
	if err != nil {
		fmt.Fprintf(out, "%-60s FAILS: %v\n", text, err)

		return nil
	}

	fmt.Fprintf(out, "%-60s HOLDS: %s\n", text, res.Detail)

	return nil
}
