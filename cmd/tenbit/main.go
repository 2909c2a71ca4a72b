// Command tenbit is the assembler's entry point: `tenbit <base1> <base2> …`
// assembles each named source file independently, exiting non-zero if any
// of them failed (spec.md §6). Argument parsing, console formatting, and
// file I/O are deliberately thin here — all of the system's interesting
// behavior lives in pkg/assemble and the packages it composes.
package main

import (
	"fmt"
	"os"

	"tenbit/pkg/assemble"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: tenbit <base1> [base2 ...]")
		os.Exit(2)
	}

	exitCode := 0
	for _, base := range os.Args[1:] {
		errs := assemble.AssembleFile(base)
		if len(errs) == 0 {
			continue
		}
		exitCode = 1
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
	}

	os.Exit(exitCode)
}
