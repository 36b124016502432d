// Package demo contains the programs the harness can build and run.
package demo

import (
	"fmt"
	"nullgen/codegen"
	"sort"
)

// Program is a buildable demonstration program.
type Program struct {
	Name        string
	Description string

	// Build emits the body of the program's entry function.
	Build codegen.BuildFunc

	// Whether the program calls into the stub libraries.
	NeedsStubs bool
}

// DefaultProgram is the program run when none is selected.
const DefaultProgram = "bigadd"

var programs = map[string]Program{
	"hello": {
		Name:        "hello",
		Description: "prints a greeting through printf",
		Build:       buildHello,
	},
	"bigadd": {
		Name:        "bigadd",
		Description: "adds 100 and 10 with the arbitrary precision library",
		Build:       buildBigAdd,
		NeedsStubs:  true,
	},
	"badadd": {
		Name:        "badadd",
		Description: "adds a malformed number and fails with its status",
		Build:       buildBadAdd,
		NeedsStubs:  true,
	},
	"interactive": {
		Name:        "interactive",
		Description: "reads two numbers from standard input and adds them",
		Build:       buildInteractive,
		NeedsStubs:  true,
	},
	"ffi": {
		Name:        "ffi",
		Description: "calls every function of the FFI demonstration library",
		Build:       buildFFITour,
		NeedsStubs:  true,
	},
}

// Lookup returns the program called name.
func Lookup(name string) (Program, error) {
	if prog, ok := programs[name]; ok {
		return prog, nil
	}

	return Program{}, fmt.Errorf("unknown program `%s` (expected one of %v)", name, Names())
}

// Names returns the names of all programs in sorted order.
func Names() []string {
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// buildHello prints a single literal.
func buildHello(f *codegen.Frame) error {
	f.PrintLiteral("Hello from nullgen!\n")
	return nil
}
