// Command tinysql is the entry point for a restricted-SQL, in-memory
// relational engine with file snapshots: a REPL by default, or a one-shot
// "exec" subcommand for scripting. Snapshot files use the ".pesapal"
// extension by convention.
package main

import (
	"fmt"
	"os"

	"github.com/arjunc/tinysql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
