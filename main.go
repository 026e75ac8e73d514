package main

import (
	"os"

	"tripcal/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
