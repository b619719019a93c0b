package main

import (
	"fmt"
	"os"

	"github.com/iliyamo/property-backoffice/internal/commands"
)

func main() {
	if err := commands.RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
