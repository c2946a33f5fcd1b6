// Command crudgen generates repository and service code for entities.
package main

import (
	"os"

	"github.com/syssam/crudgen/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
