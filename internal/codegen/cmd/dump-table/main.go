package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Alia5/safegen/internal/codegen/meta"
	"github.com/Alia5/safegen/internal/codegen/scanner"
)

// dump-table prints a metadata table as the generator sees it: validated,
// with records that have no failure sentinel listed separately. Extra
// arguments restrict the output to the named functions.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <functions.yaml|json|toml> [function...]\n", os.Args[0])
		os.Exit(2)
	}

	res, err := scanner.LoadTable(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load table: %v\n", err)
		os.Exit(1)
	}

	specs, err := selectSpecs(res.Table, os.Args[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	output, err := json.MarshalIndent(struct {
		Functions []meta.FunctionSpec `json:"functions"`
		Modules   []string            `json:"modules"`
		Skipped   []string            `json:"skipped"`
	}{
		Functions: specs,
		Modules:   meta.Modules(specs),
		Skipped:   res.Skipped,
	}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}

func selectSpecs(table *meta.Table, names []string) ([]meta.FunctionSpec, error) {
	if len(names) == 0 {
		return table.Specs(), nil
	}
	out := make([]meta.FunctionSpec, 0, len(names))
	for _, n := range names {
		spec, ok := table.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("function %q is not in the table", n)
		}
		out = append(out, spec)
	}
	return out, nil
}
