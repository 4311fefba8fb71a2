// Command talentmatch runs the candidate matching service and its
// one-shot CLI commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/talentmatch/talentmatch/cmd"
)

func main() {
	// Pick up a local .env when present; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
