// medcalc evaluates clinical calculators from the command line.
//
// Usage:
//
//	medcalc list [--json]
//	medcalc describe <id>
//	medcalc run <id> --input key=value ... [--precision n]
//	medcalc check --config <file>
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
