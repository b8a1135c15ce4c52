package main

import (
	"context"
	"fmt"
	"os"

	"tailorshop/cmd"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err = cmd.MigrateDatabase(context.Background(), configs); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database %q is up to date.\n", configs.DBName)
}
