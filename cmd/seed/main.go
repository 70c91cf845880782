package main

import (
	"fmt"
	"os"

	"github.com/San2021331091/Smart-Cart-Backend/cmd/seed/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
