// linr - typed line reader
//
// linr reads input one line at a time, splits each line into a fixed number
// of fields and parses every field into a declared type.
package main

import (
	"os"

	"github.com/ccollicutt/linr/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
