package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rpupo63/zenith-portfolio/cmd"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	cmd.Execute()
}
