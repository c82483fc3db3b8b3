// Command sqf2tcl converts SQF scripts to TCL.
package main

import (
	"os"

	"github.com/tosworks/sqf2tcl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
