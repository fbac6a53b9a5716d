package main

import (
	"fmt"
	"os"

	"facediag/internal/config"
)

func main() {
	cfg := config.Load()

	if err := rootCommand(cfg).Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
