package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/celestiaorg/cadence/cmd/cli/commands"
)

func main() {
	// Values from a .env file feed the environment fallbacks of the flags
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
